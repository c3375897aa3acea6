// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP服务器
type Server struct {
	server *http.Server
	config ServerConfig
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           5000,
		Timeout:        30 * time.Second,
		AllowedOrigins: []string{"*"},
		MaxBodyBytes:   64 << 10,
		RateWindow:     time.Minute,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Port),
			Handler:           NewHandler(config),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       config.Timeout,
			WriteTimeout:      config.Timeout + 5*time.Second,
			IdleTimeout:       120 * time.Second,
		},
		config: config,
	}
}

// NewHandler 注册路由并包装中间件链
func NewHandler(config ServerConfig) http.Handler {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	mux.Handle("GET /metrics", currentMetrics().Handler())

	chain := Chain(
		RecoveryMiddleware,                    // 1. 恢复中间件（最先执行，捕获panic）
		LoggerMiddleware,                      // 2. 日志中间件
		MetricsMiddleware(currentMetrics()),   // 3. 指标中间件
		SecurityHeadersMiddleware,             // 4. 安全头中间件
		CORSMiddleware(config.AllowedOrigins), // 5. CORS中间件
		RateLimitMiddleware(config.RateLimit, config.RateWindow),
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(config.MaxBodyBytes),
	)
	return chain(mux)
}

// Start 启动服务器
func (s *Server) Start() error {
	logger().Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger().Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}
