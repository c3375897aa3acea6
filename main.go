package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"churnpredict/config"
	qhttp "churnpredict/http"
	"churnpredict/logging"
	"churnpredict/ml"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	logger, level, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync(logger)
	qhttp.SetLogger(logger)

	// 3. Load the model once; it stays read-only for the process lifetime
	provider, err := loadModel(cfg)
	if err != nil {
		logger.Fatal("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}
	qhttp.SetModelProvider(provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, *configPath, func(next *config.Config) {
		if err := logging.SetLevel(level, next.Log.Level); err != nil {
			logger.Warn("ignoring log level change", zap.Error(err))
			return
		}
		logger.Info("log level updated", zap.String("level", level.String()))
	}, func(err error) {
		logger.Warn("config reload failed", zap.Error(err))
	}); err != nil {
		logger.Warn("config watcher disabled", zap.Error(err))
	}

	// 4. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		RateLimit:      cfg.Http.RateLimit.Requests,
		RateWindow:     cfg.Http.RateLimit.Window,
	})
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadModel(cfg *config.Config) (ml.ModelProvider, error) {
	model, err := ml.LoadModel(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Model.CacheSize <= 0 {
		return model, nil
	}
	cached, err := ml.NewCachedModel(model, cfg.Model.CacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
