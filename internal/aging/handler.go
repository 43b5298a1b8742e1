package aging

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vanguardia-erp/cxp-report/internal/platform/httpx"
)

// Exporter renders a report into a downloadable spreadsheet.
type Exporter interface {
	Workbook(report Report) ([]byte, error)
}

// Handler exposes the aging report over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	exporter Exporter
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, exporter Exporter) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		exporter: exporter,
		validate: validator.New(),
	}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/cxp-aging", h.preview)
	r.Get("/cxp-aging/xlsx", h.download)
}

type reportQuery struct {
	Cutoff string `validate:"omitempty,datetime=2006-01-02"`
}

type previewRow struct {
	Vendor        string `json:"vendor"`
	Reference     string `json:"reference"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	DaysOverdue   int    `json:"days_overdue"`
	Currency      string `json:"currency"`
	Net           string `json:"net"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	BankNotes     string `json:"bank_notes"`
}

type previewResponse struct {
	RunID   string        `json:"run_id"`
	Cutoff  string        `json:"cutoff"`
	Status  string        `json:"status"`
	Rows    []previewRow  `json:"rows"`
	Dropped []DroppedLine `json:"dropped,omitempty"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	cutoff, ok := h.cutoffParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.GenerateReport(r.Context(), cutoff)
	if errors.Is(err, ErrNoData) {
		httpx.JSON(w, http.StatusOK, previewResponse{
			Cutoff: cutoff.Format(dateLayout),
			Status: "no_data",
			Rows:   []previewRow{},
		})
		return
	}
	if err != nil {
		h.logger.Error("generate aging report", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: could not fetch accounting records", httpx.ErrUpstream))
		return
	}

	rows := make([]previewRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, previewRow{
			Vendor:        row.VendorName,
			Reference:     row.Reference,
			IssueDate:     row.IssueDate,
			DueDate:       row.Maturity.Format(dateLayout),
			DaysOverdue:   row.DaysOverdue,
			Currency:      row.Currency,
			Net:           row.Net.StringFixed(2),
			BankName:      row.BankName,
			AccountNumber: row.AccountNumber,
			BankNotes:     row.BankNotes,
		})
	}
	httpx.JSON(w, http.StatusOK, previewResponse{
		RunID:   report.RunID,
		Cutoff:  report.Cutoff.Format(dateLayout),
		Status:  "ok",
		Rows:    rows,
		Dropped: report.Dropped,
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	cutoff, ok := h.cutoffParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.GenerateReport(r.Context(), cutoff)
	if errors.Is(err, ErrNoData) {
		httpx.RespondError(w, fmt.Errorf("%w: no open payable lines for the selected cutoff", httpx.ErrNotFound))
		return
	}
	if err != nil {
		h.logger.Error("generate aging report", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: could not fetch accounting records", httpx.ErrUpstream))
		return
	}

	data, err := h.exporter.Workbook(report)
	if err != nil {
		h.logger.Error("render aging workbook", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	filename := fmt.Sprintf("Antiguedad_%s.xlsx", cutoff.Format(dateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// cutoffParam parses and validates the cutoff query parameter, defaulting
// to today (UTC).
func (h *Handler) cutoffParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	q := reportQuery{Cutoff: r.URL.Query().Get("cutoff")}
	if err := h.validate.Struct(q); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: cutoff must be a YYYY-MM-DD date", httpx.ErrValidation))
		return time.Time{}, false
	}
	if q.Cutoff == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	cutoff, err := time.ParseInLocation(dateLayout, q.Cutoff, time.UTC)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: cutoff must be a YYYY-MM-DD date", httpx.ErrValidation))
		return time.Time{}, false
	}
	return cutoff, true
}
