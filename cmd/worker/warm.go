package worker

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	"github.com/jmehdipour/credit-insights/internal/config"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/model"
	"github.com/jmehdipour/credit-insights/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var warmCmd = &cobra.Command{
	Use:   "warm [chart...]",
	Short: "Pre-render charts into the Redis cache (all charts by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := model.AllChartKinds()
		if len(args) > 0 {
			kinds = kinds[:0:0]
			for _, a := range args {
				k, ok := model.ParseChartKind(a)
				if !ok {
					return fmt.Errorf("unknown chart %q", a)
				}
				kinds = append(kinds, k)
			}
		}

		cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if !cfg.Redis.Enabled || !cfg.Cache.Enabled {
			return errors.New("warm needs redis.enabled and cache.enabled")
		}

		ctx := cmd.Context()
		rds, err := bootstrap.Redis(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = rds.Close() }()

		table, err := bootstrap.Table(ctx, cfg)
		if err != nil {
			return err
		}
		svc := bootstrap.Service(cfg, table, rds)

		start := time.Now()
		results := worker.NewWarmer(svc, cfg.Worker.Concurrency).Run(ctx, kinds)

		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		logger.Log.Info("warm complete",
			zap.Int("charts", len(results)),
			zap.Int("failed", failed),
			zap.Duration("elapsed", time.Since(start)),
		)
		if failed > 0 {
			return fmt.Errorf("%d of %d charts failed to render", failed, len(results))
		}
		return nil
	},
}
