package http

import (
	"sync"

	"churnpredict/ml"

	"go.uber.org/zap"
)

var (
	stateMu       sync.RWMutex
	modelProvider ml.ModelProvider
	baseLogger    = zap.NewNop()
	metrics       = NewMetrics()
)

// SetModelProvider installs the loaded model. Call it before serving.
func SetModelProvider(provider ml.ModelProvider) {
	stateMu.Lock()
	defer stateMu.Unlock()
	modelProvider = provider
}

func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	baseLogger = logger
}

func SetMetrics(m *Metrics) {
	if m == nil {
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	metrics = m
}

func currentModel() ml.ModelProvider {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return modelProvider
}

func logger() *zap.Logger {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return baseLogger
}

func currentMetrics() *Metrics {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return metrics
}
