package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/api"
	"github.com/quantive/confluence/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Confluence API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, reg, err := buildApp(cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting Confluence server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("watchlist", len(cfg.Watchlist)),
	)

	server := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		APIKey:      cfg.Server.APIKey,
		MetricsPath: cfg.Metrics.Path,
	}, a, reg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down Confluence server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
