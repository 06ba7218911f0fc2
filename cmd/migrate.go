package cmd

import (
	"fmt"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the warehouse records table (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		stmts, err := migrations.Statements(cfg.Warehouse.Driver, cfg.Warehouse.Table)
		if err != nil {
			return err
		}

		dbx, err := bootstrap.OpenWarehouse(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open warehouse: %w", err)
		}
		defer dbx.Close()

		for i, stmt := range stmts {
			if _, err := dbx.ExecContext(cmd.Context(), stmt); err != nil {
				return fmt.Errorf("exec migration statement %d: %w", i+1, err)
			}
		}

		logger.Log.Info("migration complete",
			zap.String("driver", cfg.Warehouse.Driver),
			zap.String("table", cfg.Warehouse.Table),
			zap.Int("statements", len(stmts)),
		)
		return nil
	},
}
