package aging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeERP struct {
	records map[string][]map[string]any
	domains map[string][]any
}

func (f *fakeERP) SearchRead(ctx context.Context, model string, domain []any, fields []string) ([]map[string]any, error) {
	if f.domains == nil {
		f.domains = make(map[string][]any)
	}
	f.domains[model] = domain
	return f.records[model], nil
}

func TestOpenPayablesMapsRawRecords(t *testing.T) {
	erp := &fakeERP{records: map[string][]map[string]any{
		"account.move.line": {
			{
				"id":              int64(11),
				"partner_id":      []any{int64(10), "Proveedor Uno"},
				"date":            "2024-01-05",
				"date_maturity":   "2024-02-01",
				"ref":             "FAC-001",
				"amount_residual": 150.75,
				"currency_id":     []any{int64(2), "USD"},
				"move_id":         []any{int64(100), "FAC/2024/001"},
			},
			{
				// Absent optional fields arrive as false.
				"id":              int64(12),
				"partner_id":      false,
				"date":            "2024-01-06",
				"date_maturity":   false,
				"ref":             false,
				"amount_residual": 20.0,
				"currency_id":     false,
				"move_id":         false,
			},
			{
				// No record id at all: quarantined.
				"partner_id":      []any{int64(10), "Proveedor Uno"},
				"date":            "2024-01-07",
				"date_maturity":   "2024-02-01",
				"ref":             "FAC-002",
				"amount_residual": 5.0,
			},
		},
	}}
	source := &OdooSource{erp: erp, companyID: 1}

	lines, dropped, err := source.OpenPayables(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Len(t, dropped, 1)

	require.Equal(t, int64(11), lines[0].RecordID)
	require.Equal(t, int64(10), lines[0].VendorID)
	require.Equal(t, "Proveedor Uno", lines[0].VendorName)
	require.Equal(t, "FAC-001", lines[0].Reference)
	require.Equal(t, "USD", lines[0].Currency)
	require.Equal(t, int64(100), lines[0].MoveID)
	require.Equal(t, "150.75", lines[0].Residual.StringFixed(2))

	require.Equal(t, "Sin Proveedor", lines[1].VendorName)
	require.Equal(t, "-", lines[1].Reference)
	require.Equal(t, "", lines[1].DueDate)
	require.Equal(t, "", lines[1].Currency)

	require.Equal(t, "missing record id", dropped[0].Reason)
	require.Equal(t, "FAC-002", dropped[0].Reference)
}

func TestDocumentKindsMapsRefunds(t *testing.T) {
	erp := &fakeERP{records: map[string][]map[string]any{
		"account.move": {
			{"id": int64(100), "move_type": "in_invoice"},
			{"id": int64(200), "move_type": "in_refund"},
		},
	}}
	source := &OdooSource{erp: erp, companyID: 1}

	kinds, err := source.DocumentKinds(context.Background(), []int64{100, 200})
	require.NoError(t, err)
	require.Equal(t, DocKindInvoice, kinds[100])
	require.Equal(t, DocKindCreditNote, kinds[200])
}

func TestDocumentKindsEmptyInput(t *testing.T) {
	erp := &fakeERP{}
	source := &OdooSource{erp: erp, companyID: 1}

	kinds, err := source.DocumentKinds(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, kinds)
	// No query should have been issued.
	require.NotContains(t, erp.domains, "account.move")
}

func TestBankAccountsScopedToCompanyOrShared(t *testing.T) {
	erp := &fakeERP{records: map[string][]map[string]any{
		"res.partner.bank": {
			{
				"id":                  int64(9),
				"partner_id":          []any{int64(10), "Proveedor Uno"},
				"bank_id":             false,
				"acc_number":          "CR02-999",
				"x_studio_observacin": false,
				"currency_id":         false,
			},
			{
				"id":                  int64(3),
				"partner_id":          []any{int64(10), "Proveedor Uno"},
				"bank_id":             []any{int64(1), "Banco Nacional"},
				"acc_number":          "CR01-123",
				"x_studio_observacin": "cuenta en dólares",
				"currency_id":         []any{int64(2), "USD"},
			},
		},
	}}
	source := &OdooSource{erp: erp, companyID: 1}

	accounts, err := source.BankAccounts(context.Background(), []int64{10})
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// Deterministic order by record id, not response order.
	require.Equal(t, int64(3), accounts[0].RecordID)
	require.Equal(t, "Banco Nacional", accounts[0].BankName)
	require.Equal(t, "cuenta en dólares", accounts[0].Notes)
	require.Equal(t, "USD", accounts[0].CurrencyLabel)

	// Accounts without a linked bank keep the generic display name.
	require.Equal(t, "Banco", accounts[1].BankName)
	require.Equal(t, "", accounts[1].Notes)

	// The domain must include the shared-or-company scope.
	domain := erp.domains["res.partner.bank"]
	require.Contains(t, domain, "|")
}

func TestBankAccountsEmptyVendorList(t *testing.T) {
	source := &OdooSource{erp: &fakeERP{}, companyID: 1}
	accounts, err := source.BankAccounts(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, accounts)
}
