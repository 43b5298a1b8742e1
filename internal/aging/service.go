package aging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNoData signals that the ledger query returned zero usable rows. It is
// a notice, not a failure; callers surface it as "no data".
var ErrNoData = errors.New("no open payable lines")

// Service runs the fetch, classify, resolve, sort pipeline for one report.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService builds a report Service on top of a ledger source.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// GenerateReport produces the aging report as of cutoff. Each run is
// request-scoped and keeps no state; an ERP failure aborts the run.
func (s *Service) GenerateReport(ctx context.Context, cutoff time.Time) (Report, error) {
	runID := uuid.NewString()
	log := s.logger.With(slog.String("run_id", runID), slog.String("cutoff", cutoff.Format(dateLayout)))

	lines, dropped, err := s.source.OpenPayables(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch open payables: %w", err)
	}
	if len(lines) == 0 {
		return Report{}, ErrNoData
	}

	kinds, err := s.source.DocumentKinds(ctx, distinctMoveIDs(lines))
	if err != nil {
		return Report{}, fmt.Errorf("fetch document kinds: %w", err)
	}

	classified, droppedDates := Classify(lines, kinds, cutoff)
	dropped = append(dropped, droppedDates...)
	for _, d := range dropped {
		log.Warn("line excluded from report",
			slog.Int64("record_id", d.RecordID),
			slog.String("vendor", d.VendorName),
			slog.String("reference", d.Reference),
			slog.String("reason", d.Reason))
	}
	if len(classified) == 0 {
		return Report{}, ErrNoData
	}

	accounts, err := s.source.BankAccounts(ctx, distinctVendorIDs(classified))
	if err != nil {
		return Report{}, fmt.Errorf("fetch bank accounts: %w", err)
	}

	rows := ResolveBanks(classified, accounts)
	sortRows(rows)

	log.Info("aging report generated",
		slog.Int("rows", len(rows)),
		slog.Int("dropped", len(dropped)))

	return Report{RunID: runID, Cutoff: cutoff, Rows: rows, Dropped: dropped}, nil
}

// sortRows orders rows by vendor name (Spanish collation), most overdue
// first within each vendor, record id as the final tie-break.
func sortRows(rows []ReportRow) {
	col := collate.New(language.Spanish)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].VendorName, rows[j].VendorName); c != 0 {
			return c < 0
		}
		if rows[i].DaysOverdue != rows[j].DaysOverdue {
			return rows[i].DaysOverdue > rows[j].DaysOverdue
		}
		return rows[i].RecordID < rows[j].RecordID
	})
}

func distinctMoveIDs(lines []LedgerLine) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	var ids []int64
	for _, line := range lines {
		if line.MoveID == 0 {
			continue
		}
		if _, ok := seen[line.MoveID]; ok {
			continue
		}
		seen[line.MoveID] = struct{}{}
		ids = append(ids, line.MoveID)
	}
	return ids
}

func distinctVendorIDs(lines []ClassifiedLine) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	var ids []int64
	for _, line := range lines {
		if line.VendorID == 0 {
			continue
		}
		if _, ok := seen[line.VendorID]; ok {
			continue
		}
		seen[line.VendorID] = struct{}{}
		ids = append(ids, line.VendorID)
	}
	return ids
}
