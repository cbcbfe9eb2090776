package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/badgerworks/honeybadger/internal/logger"
	"github.com/badgerworks/honeybadger/internal/store"
	"github.com/badgerworks/honeybadger/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := store.OpenSQL(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	srv := server.New(cfg, st)
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.F("error", err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		logger.Info("Shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", logger.F("error", err))
		}
		close(done)
	}()

	logger.Info("Honey Badger server starting",
		logger.F("addr", cfg.ListenAddr),
		logger.F("env", cfg.Environment))

	if err := srv.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	<-done
	return nil
}
