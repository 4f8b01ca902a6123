package growthhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"growthcalc/internal/calculator"
	"growthcalc/internal/growth"
	"growthcalc/internal/logger"
	"growthcalc/internal/refdata"

	"github.com/gin-gonic/gin"
)

// Server 提供 /api/growth HTTP 服务（打分 + 反查 + 批量）。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述 growth HTTP 服务依赖。
type ServerConfig struct {
	Addr            string
	Medical         *calculator.Medical
	CDC             *calculator.CDC
	Catalog         *refdata.Catalog
	DefaultStandard growth.Standard
}

// NewServer 构建 growth HTTP server。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Medical == nil || cfg.CDC == nil {
		return nil, errors.New("growth http server requires both calculators")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8642"
	}
	if cfg.DefaultStandard == "" {
		cfg.DefaultStandard = growth.StandardAuto
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	apiRouter := NewRouter(cfg.Medical, cfg.CDC, cfg.Catalog, cfg.DefaultStandard)
	apiRouter.Register(router.Group("/api/growth"))

	return &Server{addr: cfg.Addr, router: router}, nil
}

// requestLogger 记录接口调用，便于追踪。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s",
			method, path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }
