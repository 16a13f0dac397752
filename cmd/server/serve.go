package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guardstation/internal/db"
	"github.com/guardstation/internal/handler"
	"github.com/guardstation/internal/router"
	"github.com/guardstation/internal/view"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the public site and admin editor",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	gin.SetMode(cfg.GinMode)

	api, err := handler.NewAPI(gdb, logger, handler.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		LoginDelay:    cfg.LoginDelay,
		PublishDelay:  cfg.PublishDelay,
		MaxImageBytes: cfg.MaxImageBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to build handlers: %w", err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, renderer, cfg.SessionSecret, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("database", cfg.DatabasePath),
			zap.String("mode", cfg.GinMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to run server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
