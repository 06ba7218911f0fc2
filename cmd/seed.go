package cmd

import (
	"fmt"
	"time"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	"github.com/jmehdipour/credit-insights/internal/dataset"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/jmehdipour/credit-insights/internal/repository"
	"github.com/jmehdipour/credit-insights/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the warehouse records with the prepared CSV dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		path := cfg.Dataset.Path
		if seedFile != "" {
			path = seedFile
		}

		// always read the file here; dataset.source may point at the warehouse itself
		table, err := dataset.Load(cmd.Context(), dataset.FileSource{Path: path})
		if err != nil {
			return err
		}

		dbx, err := bootstrap.OpenWarehouse(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open warehouse: %w", err)
		}
		defer dbx.Close()

		repo, err := repository.NewRecordsRepository(dbx, cfg.Warehouse.Table)
		if err != nil {
			return err
		}

		// re-seeding replaces the table; row_no would otherwise repeat
		if err := repo.Truncate(cmd.Context()); err != nil {
			return fmt.Errorf("truncate %s: %w", cfg.Warehouse.Table, err)
		}

		start := time.Now()
		n, err := worker.NewSeeder(repo, cfg.Warehouse.BatchSize, cfg.Worker.Concurrency).
			Run(cmd.Context(), table.Head(table.Len()))
		if err != nil {
			return fmt.Errorf("seed after %d records: %w", n, err)
		}

		total, err := repo.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		logger.Log.Info("seed complete",
			zap.String("file", path),
			zap.Int("inserted", n),
			zap.Int64("table_rows", total),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "CSV(.gz) to import (default dataset.path)")
}
