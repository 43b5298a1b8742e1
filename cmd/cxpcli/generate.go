package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vanguardia-erp/cxp-report/internal/aging"
	"github.com/vanguardia-erp/cxp-report/internal/app"
	"github.com/vanguardia-erp/cxp-report/internal/export"
	"github.com/vanguardia-erp/cxp-report/internal/odoo"
)

var (
	flagCutoff string
	flagOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the aging workbook and write it to disk",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagCutoff, "cutoff", "", "cutoff date (YYYY-MM-DD, defaults to today)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "output path (defaults to Antiguedad_<cutoff>.xlsx)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)

	now := time.Now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if flagCutoff != "" {
		cutoff, err = time.ParseInLocation("2006-01-02", flagCutoff, time.UTC)
		if err != nil {
			return fmt.Errorf("cutoff must be a YYYY-MM-DD date: %w", err)
		}
	}

	client, err := odoo.NewClient(odoo.Credentials{
		URL:      cfg.OdooURL,
		Database: cfg.OdooDB,
		Username: cfg.OdooUsername,
		Password: cfg.OdooPassword,
	})
	if err != nil {
		return fmt.Errorf("create odoo client: %w", err)
	}

	service := aging.NewService(aging.NewOdooSource(client, cfg.OdooCompanyID), logger)
	report, err := service.GenerateReport(cmd.Context(), cutoff)
	if errors.Is(err, aging.ErrNoData) {
		logger.Info("no open payable lines for cutoff", slog.String("cutoff", flagCutoff))
		return nil
	}
	if err != nil {
		return err
	}

	data, err := export.NewXLSX().Workbook(report)
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}

	out := flagOut
	if out == "" {
		out = export.Filename(report)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	logger.Info("workbook written",
		slog.String("path", out),
		slog.Int("rows", len(report.Rows)),
		slog.Int("dropped", len(report.Dropped)))
	return nil
}
