package app

import (
	"context"
	"fmt"

	"growthcalc/internal/calculator"
	gccfg "growthcalc/internal/config"
	"growthcalc/internal/logger"
	"growthcalc/internal/refdata"
	"growthcalc/internal/store"
	growthhttp "growthcalc/internal/transport/http/growth"

	"golang.org/x/sync/errgroup"
)

// App 负责应用级编排：加载参考表→构建计算器→启动 HTTP 服务。
type App struct {
	cfg     *gccfg.Config
	catalog *refdata.Catalog
	cdc     *calculator.CDC
	medical *calculator.Medical
	server  *growthhttp.Server
	store   store.SeriesStore // nil when serving from the embedded tables
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *gccfg.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// Medical exposes the unified calculator for embedding callers.
func (a *App) Medical() *calculator.Medical { return a.medical }

// CDC exposes the CDC-only calculator for embedding callers.
func (a *App) CDC() *calculator.CDC { return a.cdc }

// Run 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.server == nil {
		return fmt.Errorf("http server not initialized")
	}
	defer a.Close()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Infof("growth api listening on %s (default standard %s)",
			a.server.Addr(), a.cfg.Calculator.DefaultStandard)
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("growth http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

// Close 释放持久化资源。
func (a *App) Close() {
	if a == nil || a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logger.Warnf("closing reference store: %v", err)
	}
}
