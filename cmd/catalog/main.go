package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCatalog/internal/auth"
	"MiniCatalog/internal/catalog"
	"MiniCatalog/internal/config"
	"MiniCatalog/internal/slot"
	"MiniCatalog/pkg/kit"
)

func main() {
	service := "catalog"
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sl, err := slot.Open(ctx, cfg.Slot.Options())
	if err != nil {
		log.Fatal("open slot failed", zap.String("backend", cfg.Slot.Backend), zap.Error(err))
	}
	log.Info("slot opened", zap.String("backend", cfg.Slot.Backend), zap.String("key", cfg.Slot.Key))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := kit.NewMetrics(reg)

	store := catalog.NewStore(sl, cfg.Slot.Key,
		catalog.WithLogger(log),
		catalog.WithMetrics(metrics),
	)

	s := &catalog.Server{
		Catalog:   catalog.NewController(ctx, store, catalog.WithControllerLogger(log)),
		Store:     store,
		Tokens:    auth.NewTokenMaker(cfg.SessionSecret, cfg.SessionTTL),
		ShareBase: cfg.ShareBase,
		Log:       log,
	}

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		Metrics:        metrics,
		MetricsEnabled: true,
		MetricsToken:   cfg.MetricsToken,
	})

	closeSlot := func() {
		if err := sl.Close(); err != nil {
			log.Warn("close slot", zap.Error(err))
		}
	}

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, closeSlot); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
