// Package config loads service settings from YAML, .env and CHURN_* variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const envPrefix = "CHURN_"

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
		RateLimit      struct {
			Requests int           `yaml:"requests"`
			Window   time.Duration `yaml:"window"`
		} `yaml:"rate_limit"`
	} `yaml:"http"`
	Model struct {
		Type      string `yaml:"type"`
		Path      string `yaml:"path"`
		CacheSize int    `yaml:"cache_size"`
	} `yaml:"model"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.Http.Port = 5000
	cfg.Http.Timeout = 30 * time.Second
	cfg.Http.AllowedOrigins = []string{"*"}
	cfg.Http.MaxBodyBytes = 64 << 10
	cfg.Http.RateLimit.Requests = 0
	cfg.Http.RateLimit.Window = time.Minute
	cfg.Model.Path = filepath.Join("models", "churn_model_pipeline.json")
	cfg.Model.CacheSize = 1024
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 100
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 28
	return cfg
}

// Load applies defaults, the YAML file at path (skipped when it does not
// exist), a .env file beside it, and finally CHURN_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := loadDotEnv(path); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Http.Port < 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.Http.RateLimit.Requests < 0 {
		return errors.New("http.rate_limit.requests must not be negative")
	}
	if c.Http.RateLimit.Requests > 0 && c.Http.RateLimit.Window <= 0 {
		return errors.New("http.rate_limit.window must be positive")
	}
	if strings.TrimSpace(c.Model.Path) == "" {
		return errors.New("model.path is required")
	}
	if c.Model.CacheSize < 0 {
		return errors.New("model.cache_size must not be negative")
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads the first .env found; it never overrides variables that
// are already set.
func loadDotEnv(configPath string) error {
	paths := []string{".env"}
	if configPath != "" {
		if dir := filepath.Dir(configPath); dir != "." {
			paths = append([]string{filepath.Join(dir, ".env")}, paths...)
		}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			return nil
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup("HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sHTTP_PORT: %w", envPrefix, err)
		}
		cfg.Http.Port = port
	}
	if v, ok := lookup("HTTP_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sHTTP_TIMEOUT: %w", envPrefix, err)
		}
		cfg.Http.Timeout = timeout
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok {
		cfg.Http.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("MODEL_TYPE"); ok {
		cfg.Model.Type = v
	}
	if v, ok := lookup("MODEL_PATH"); ok {
		cfg.Model.Path = v
	}
	if v, ok := lookup("MODEL_CACHE_SIZE"); ok {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMODEL_CACHE_SIZE: %w", envPrefix, err)
		}
		cfg.Model.CacheSize = size
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
