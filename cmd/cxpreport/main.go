package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanguardia-erp/cxp-report/internal/aging"
	"github.com/vanguardia-erp/cxp-report/internal/app"
	"github.com/vanguardia-erp/cxp-report/internal/export"
	"github.com/vanguardia-erp/cxp-report/internal/odoo"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	client, err := odoo.NewClient(odoo.Credentials{
		URL:      cfg.OdooURL,
		Database: cfg.OdooDB,
		Username: cfg.OdooUsername,
		Password: cfg.OdooPassword,
	})
	if err != nil {
		logger.Error("create odoo client", slog.Any("error", err))
		os.Exit(1)
	}

	source := aging.NewOdooSource(client, cfg.OdooCompanyID)
	service := aging.NewService(source, logger)
	handler := aging.NewHandler(logger, service, export.NewXLSX())

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		AgingHandler: handler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
