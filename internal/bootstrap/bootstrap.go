// Package bootstrap builds the shared runtime pieces commands need from config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmehdipour/credit-insights/internal/breaker"
	"github.com/jmehdipour/credit-insights/internal/chartpng"
	"github.com/jmehdipour/credit-insights/internal/config"
	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/db"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/repository"
	"github.com/jmehdipour/credit-insights/internal/service/insights"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func OpenWarehouse(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	return db.OpenWarehouse(ctx, db.WarehouseOpts{
		Driver:          cfg.Warehouse.Driver,
		DSN:             cfg.Warehouse.DSN,
		MaxOpenConns:    cfg.Warehouse.MaxOpenConns,
		MaxIdleConns:    cfg.Warehouse.MaxIdleConns,
		ConnMaxLifetime: cfg.Warehouse.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Warehouse.ConnMaxIdleTime,
		PingTimeout:     cfg.Warehouse.PingTimeout,
	})
}

// Table loads and prepares the dataset from the configured source.
func Table(ctx context.Context, cfg config.Config) (*dataset.Table, error) {
	var src dataset.Source
	switch cfg.Dataset.Source {
	case config.SourceWarehouse:
		dbx, err := OpenWarehouse(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("warehouse connect: %w", err)
		}
		defer dbx.Close()

		repo, err := repository.NewRecordsRepository(dbx, cfg.Warehouse.Table)
		if err != nil {
			return nil, err
		}
		src = dataset.WarehouseSource{Repo: repo, Label: cfg.Warehouse.Driver + ":" + cfg.Warehouse.Table}
	default:
		src = dataset.FileSource{Path: cfg.Dataset.Path}
	}

	start := time.Now()
	t, err := dataset.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("dataset loaded",
		zap.String("source", t.Source()),
		zap.Int("records", t.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return t, nil
}

// Redis returns nil when redis is disabled.
func Redis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rdb, err := db.NewRedisClient(ctx, db.RedisOpts{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: cfg.Redis.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return rdb, nil
}

// Service builds the insights service; the chart cache is enabled only when
// rds is non-nil and cache.enabled is set.
func Service(cfg config.Config, t *dataset.Table, rds *redis.Client) *insights.Service {
	opts := []insights.Option{
		insights.WithImageSize(chartpng.Options{Width: cfg.Render.Width, Height: cfg.Render.Height}),
	}
	if rds != nil && cfg.Cache.Enabled {
		opts = append(opts, insights.WithCache(
			repository.NewRedisChartCache(rds, cfg.Cache.Prefix),
			breaker.New(cfg.Cache.Breaker.FailThreshold, cfg.Cache.Breaker.OpenFor),
			cfg.Cache.TTL,
		))
	}
	return insights.New(t, opts...)
}
