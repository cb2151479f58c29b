package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// hubCloser 关闭实时推送连接
type hubCloser interface {
	Close(ctx context.Context)
}

// HTTPService HTTP 服务封装
type HTTPService struct {
	name   string
	server *http.Server
	hub    hubCloser
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler, hub hubCloser) *HTTPService {
	return &HTTPService{
		name: "http",
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		hub: hub,
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "http"
	}
	return s.name
}

// Start 启动服务
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务
// websocket 连接已被劫持，Shutdown 不会等待它们，需要单独关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.hub != nil {
		s.hub.Close(ctx)
	}
	return s.server.Shutdown(ctx)
}
