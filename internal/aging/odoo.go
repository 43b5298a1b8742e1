package aging

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vanguardia-erp/cxp-report/internal/odoo"
)

// searchReader is the slice of the Odoo client this source needs.
type searchReader interface {
	SearchRead(ctx context.Context, model string, domain []any, fields []string) ([]map[string]any, error)
}

// OdooSource fetches accounting records from Odoo. All queries are scoped
// to one company; bank accounts additionally include shared accounts that
// belong to no company.
type OdooSource struct {
	erp       searchReader
	companyID int64
}

// NewOdooSource builds a Source backed by the given Odoo client.
func NewOdooSource(client *odoo.Client, companyID int64) *OdooSource {
	return &OdooSource{erp: client, companyID: companyID}
}

// OpenPayables returns posted payable lines with a nonzero residual whose
// parent document is a vendor invoice or credit note. Rows the ERP hands
// back without a usable record id are quarantined rather than dropped
// silently.
func (s *OdooSource) OpenPayables(ctx context.Context) ([]LedgerLine, []DroppedLine, error) {
	domain := []any{
		[]any{"parent_state", "=", "posted"},
		[]any{"company_id", "=", s.companyID},
		[]any{"account_type", "=", "liability_payable"},
		[]any{"amount_residual", "!=", 0},
		[]any{"move_id.move_type", "in", []string{"in_invoice", "in_refund"}},
	}
	fields := []string{"partner_id", "date_maturity", "date", "ref", "amount_residual", "currency_id", "move_id"}

	records, err := s.erp.SearchRead(ctx, "account.move.line", domain, fields)
	if err != nil {
		return nil, nil, fmt.Errorf("search account.move.line: %w", err)
	}

	lines := make([]LedgerLine, 0, len(records))
	var dropped []DroppedLine
	for _, rec := range records {
		line, reason := mapLedgerLine(rec)
		if reason != "" {
			dropped = append(dropped, DroppedLine{
				RecordID:   line.RecordID,
				VendorName: line.VendorName,
				Reference:  line.Reference,
				Reason:     reason,
			})
			continue
		}
		lines = append(lines, line)
	}
	return lines, dropped, nil
}

// DocumentKinds maps parent-document ids to invoice/credit-note.
func (s *OdooSource) DocumentKinds(ctx context.Context, moveIDs []int64) (map[int64]DocKind, error) {
	kinds := make(map[int64]DocKind, len(moveIDs))
	if len(moveIDs) == 0 {
		return kinds, nil
	}

	domain := []any{[]any{"id", "in", moveIDs}}
	records, err := s.erp.SearchRead(ctx, "account.move", domain, []string{"move_type"})
	if err != nil {
		return nil, fmt.Errorf("search account.move: %w", err)
	}

	for _, rec := range records {
		id := odoo.AsFloat(rec["id"])
		if id == 0 {
			continue
		}
		kind := DocKindInvoice
		if odoo.AsString(rec["move_type"]) == "in_refund" {
			kind = DocKindCreditNote
		}
		kinds[int64(id)] = kind
	}
	return kinds, nil
}

// BankAccounts fetches accounts owned by the given vendors, scoped to the
// configured company or to no company at all (shared accounts).
func (s *OdooSource) BankAccounts(ctx context.Context, vendorIDs []int64) ([]BankAccount, error) {
	if len(vendorIDs) == 0 {
		return nil, nil
	}

	domain := []any{
		[]any{"partner_id", "in", vendorIDs},
		"|",
		[]any{"company_id", "=", false},
		[]any{"company_id", "=", s.companyID},
	}
	fields := []string{"partner_id", "bank_id", "acc_number", "x_studio_observacin", "currency_id"}

	records, err := s.erp.SearchRead(ctx, "res.partner.bank", domain, fields)
	if err != nil {
		return nil, fmt.Errorf("search res.partner.bank: %w", err)
	}

	accounts := make([]BankAccount, 0, len(records))
	for _, rec := range records {
		partner, ok := odoo.AsMany2One(rec["partner_id"])
		if !ok {
			continue
		}
		acc := BankAccount{
			RecordID:      int64(odoo.AsFloat(rec["id"])),
			VendorID:      partner.ID,
			BankName:      "Banco",
			AccountNumber: odoo.AsString(rec["acc_number"]),
			Notes:         odoo.AsString(rec["x_studio_observacin"]),
		}
		if bank, ok := odoo.AsMany2One(rec["bank_id"]); ok {
			acc.BankName = bank.Name
		}
		if cur, ok := odoo.AsMany2One(rec["currency_id"]); ok {
			acc.CurrencyLabel = cur.Name
		}
		accounts = append(accounts, acc)
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].RecordID < accounts[j].RecordID })
	return accounts, nil
}

// mapLedgerLine turns one raw search_read row into a typed line. A non
// empty reason means the row must be quarantined.
func mapLedgerLine(rec map[string]any) (LedgerLine, string) {
	line := LedgerLine{
		RecordID:  int64(odoo.AsFloat(rec["id"])),
		Reference: "-",
		IssueDate: odoo.AsString(rec["date"]),
		DueDate:   odoo.AsString(rec["date_maturity"]),
		Residual:  decimal.NewFromFloat(odoo.AsFloat(rec["amount_residual"])),
	}
	if ref := odoo.AsString(rec["ref"]); ref != "" {
		line.Reference = ref
	}

	// Lines without a vendor still belong in the report; they simply get
	// no bank match.
	line.VendorName = "Sin Proveedor"
	if partner, ok := odoo.AsMany2One(rec["partner_id"]); ok {
		line.VendorID = partner.ID
		line.VendorName = partner.Name
	}
	if cur, ok := odoo.AsMany2One(rec["currency_id"]); ok {
		line.Currency = cur.Name
	}
	if move, ok := odoo.AsMany2One(rec["move_id"]); ok {
		line.MoveID = move.ID
	}

	if line.RecordID == 0 {
		return line, "missing record id"
	}
	return line, ""
}
