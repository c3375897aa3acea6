package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := Default()
	if cfg.Http.Port != def.Http.Port || cfg.Model.Path != def.Model.Path || cfg.Log.Level != "info" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
http:
  port: 8081
  timeout: 5s
  allowed_origins: ["https://example.com"]
  rate_limit:
    requests: 10
    window: 1s
model:
  type: decision_tree
  path: /srv/model.json
  cache_size: 0
log:
  level: debug
  file: /var/log/churn.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Http.Port != 8081 || cfg.Http.Timeout != 5*time.Second {
		t.Fatalf("unexpected http config: %+v", cfg.Http)
	}
	if len(cfg.Http.AllowedOrigins) != 1 || cfg.Http.AllowedOrigins[0] != "https://example.com" {
		t.Fatalf("unexpected origins: %v", cfg.Http.AllowedOrigins)
	}
	if cfg.Http.RateLimit.Requests != 10 || cfg.Http.RateLimit.Window != time.Second {
		t.Fatalf("unexpected rate limit: %+v", cfg.Http.RateLimit)
	}
	if cfg.Model.Type != "decision_tree" || cfg.Model.Path != "/srv/model.json" || cfg.Model.CacheSize != 0 {
		t.Fatalf("unexpected model config: %+v", cfg.Model)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/var/log/churn.log" || cfg.Log.MaxBackups != 3 {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "http:\n  port: 8081\n")
	t.Setenv("CHURN_HTTP_PORT", "9090")
	t.Setenv("CHURN_MODEL_PATH", "/tmp/m.json")
	t.Setenv("CHURN_ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("CHURN_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Http.Port != 9090 || cfg.Model.Path != "/tmp/m.json" || cfg.Log.Level != "warn" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if len(cfg.Http.AllowedOrigins) != 2 || cfg.Http.AllowedOrigins[1] != "https://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.Http.AllowedOrigins)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "model:\n  cache_size: 5\n")
	writeFile(t, filepath.Join(dir, ".env"), "CHURN_MODEL_CACHE_SIZE=42\n")
	t.Setenv("CHURN_MODEL_CACHE_SIZE", "")
	os.Unsetenv("CHURN_MODEL_CACHE_SIZE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model.CacheSize != 42 {
		t.Fatalf("expected cache size from .env, got %d", cfg.Model.CacheSize)
	}
}

func TestLoadMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "log:\n  level: info\n")
	writeFile(t, filepath.Join(dir, ".env"), "CHURN-LOG-LEVEL=debug\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed .env")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad yaml":  "http: [",
		"bad port":  "http:\n  port: 70000\n",
		"no model":  "model:\n  path: \"\"\n",
		"bad cache": "model:\n  cache_size: -1\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		writeFile(t, path, body)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	t.Setenv("CHURN_HTTP_PORT", "eighty")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for non-numeric port override")
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	if err := Watch(ctx, path, func(cfg *Config) { changes <- cfg }, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeFile(t, path, "log:\n  level: debug\n")

	select {
	case cfg := <-changes:
		if cfg.Log.Level != "debug" {
			t.Fatalf("expected debug level, got %q", cfg.Log.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
