package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jmehdipour/credit-insights/internal/bootstrap"
	httpSrv "github.com/jmehdipour/credit-insights/internal/http"
	"github.com/jmehdipour/credit-insights/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var printConfig bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		if printConfig {
			out, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		table, err := bootstrap.Table(ctx, cfg)
		if err != nil {
			return err
		}

		redisClient, err := bootstrap.Redis(ctx, cfg)
		if err != nil {
			return err
		}
		if redisClient != nil {
			defer func() { _ = redisClient.Close() }()
		}

		svc := bootstrap.Service(cfg, table, redisClient)
		server := httpSrv.NewServer(cfg, svc, redisClient)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		select {
		case <-ctx.Done():
			logger.Log.Info("signal received, shutting down")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}

		sctx, cancel := context.WithTimeout(context.Background(), httpSrv.ShutdownTimeout(cfg))
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			logger.Log.Warn("shutdown", zap.Error(err))
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&printConfig, "print-config", false, "print the effective config (secrets masked) and exit")
}
