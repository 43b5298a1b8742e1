package aging

import "context"

// Source supplies the accounting records one report run needs. The ERP
// implementation lives in odoo.go; tests use in-memory stubs.
type Source interface {
	// OpenPayables returns the open payable ledger lines for the configured
	// company, plus diagnostics for raw rows that could not be decoded.
	OpenPayables(ctx context.Context) ([]LedgerLine, []DroppedLine, error)

	// DocumentKinds maps parent-document ids to invoice/credit-note.
	DocumentKinds(ctx context.Context, moveIDs []int64) (map[int64]DocKind, error)

	// BankAccounts returns bank accounts for the given vendors, scoped to
	// the configured company or shared (company-less) accounts, in a
	// deterministic order.
	BankAccounts(ctx context.Context, vendorIDs []int64) ([]BankAccount, error)
}
