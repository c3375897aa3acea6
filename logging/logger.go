// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and optional file rotation.
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New returns a JSON logger writing to stdout and, when File is set, to a
// rotating file. The returned level can be changed while the logger is in use.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevel()
	if err := SetLevel(level, cfg.Level); err != nil {
		return nil, level, err
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, level, nil
}

// SetLevel parses name and applies it; an empty name means info.
func SetLevel(level zap.AtomicLevel, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "info"
	}
	parsed, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.SetLevel(parsed)
	return nil
}

// Sync flushes buffered entries, ignoring the error stdout returns when it is
// not a regular file.
func Sync(logger *zap.Logger) error {
	if err := logger.Sync(); err != nil {
		msg := err.Error()
		if strings.Contains(msg, "bad file descriptor") || strings.Contains(msg, "invalid argument") {
			return nil
		}
		return err
	}
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.LevelKey = "level"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
