package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"growthcalc/internal/calculator"
	gccfg "growthcalc/internal/config"
	"growthcalc/internal/gateway/who"
	"growthcalc/internal/growth"
	"growthcalc/internal/logger"
	"growthcalc/internal/refdata"
	"growthcalc/internal/store"
	"growthcalc/internal/store/sqlite"
	growthhttp "growthcalc/internal/transport/http/growth"
)

// AppBuilder 按依赖顺序组装 App：参考表 → 计算器 → HTTP。
type AppBuilder struct {
	cfg *gccfg.Config

	// 测试可替换的构造钩子。
	catalogFn func(gccfg.DataConfig) (*refdata.Catalog, store.SeriesStore, error)
	serverFn  func(growthhttp.ServerConfig) (*growthhttp.Server, error)
}

type AppBuilderOption func(*AppBuilder)

func NewAppBuilder(cfg *gccfg.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:       cfg,
		catalogFn: buildCatalog,
		serverFn:  growthhttp.NewServer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithCatalogLoader 覆盖参考表加载逻辑（测试用）。
func WithCatalogLoader(fn func(gccfg.DataConfig) (*refdata.Catalog, store.SeriesStore, error)) AppBuilderOption {
	return func(b *AppBuilder) { b.catalogFn = fn }
}

// Build 组装 App。
func (b *AppBuilder) Build(_ context.Context) (*App, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	catalog, seriesStore, err := b.catalogFn(b.cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("loading reference tables: %w", err)
	}

	cdc := calculator.NewCDC(catalog)
	whoBackend := who.NewBackend(catalog)
	medical := calculator.NewMedical(cdc, whoBackend, b.cfg.Calculator.BatchWorkers)

	defaultStd, err := growth.ParseStandard(b.cfg.Calculator.DefaultStandard)
	if err != nil {
		return nil, err
	}
	server, err := b.serverFn(growthhttp.ServerConfig{
		Addr:            b.cfg.App.HTTPAddr,
		Medical:         medical,
		CDC:             cdc,
		Catalog:         catalog,
		DefaultStandard: defaultStd,
	})
	if err != nil {
		return nil, fmt.Errorf("building http server: %w", err)
	}

	return &App{
		cfg:     b.cfg,
		catalog: catalog,
		cdc:     cdc,
		medical: medical,
		server:  server,
		store:   seriesStore,
	}, nil
}

// buildCatalog 解析数据配置：外部 manifest 或内嵌表，可选 sqlite 持久化。
func buildCatalog(dc gccfg.DataConfig) (*refdata.Catalog, store.SeriesStore, error) {
	base, err := loadBaseCatalog(dc)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(dc.DBPath) == "" {
		return base, nil, nil
	}

	seriesStore, err := sqlite.NewSqliteStore(dc.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening reference store: %w", err)
	}
	empty, err := seriesStore.Empty()
	if err != nil {
		seriesStore.Close()
		return nil, nil, err
	}
	if empty || dc.Seed {
		logger.Infof("seeding reference store at %s", dc.DBPath)
		if err := seriesStore.Seed(base); err != nil {
			seriesStore.Close()
			return nil, nil, fmt.Errorf("seeding reference store: %w", err)
		}
	}
	catalog, err := seriesStore.LoadCatalog()
	if err != nil {
		seriesStore.Close()
		return nil, nil, err
	}
	return catalog, seriesStore, nil
}

func loadBaseCatalog(dc gccfg.DataConfig) (*refdata.Catalog, error) {
	path := strings.TrimSpace(dc.ManifestPath)
	if path == "" {
		return refdata.LoadEmbedded()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return refdata.LoadFS(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
