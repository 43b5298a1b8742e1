package aging

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocKind distinguishes the two payable document types.
type DocKind string

const (
	DocKindInvoice    DocKind = "invoice"
	DocKindCreditNote DocKind = "credit-note"
)

// LedgerLine is one open payable line as fetched from the ERP. Dates are
// kept in the ERP's YYYY-MM-DD form; the classifier resolves them.
type LedgerLine struct {
	RecordID   int64
	VendorID   int64
	VendorName string
	Reference  string
	IssueDate  string
	DueDate    string
	Residual   decimal.Decimal
	Currency   string
	MoveID     int64
}

// BucketSet holds the five aging buckets for one line. Exactly one bucket
// carries the line's signed net amount; the others stay zero.
type BucketSet struct {
	Current decimal.Decimal
	B1to30  decimal.Decimal
	B31to60 decimal.Decimal
	B61to90 decimal.Decimal
	Over90  decimal.Decimal
}

// Sum returns the total across all buckets.
func (b BucketSet) Sum() decimal.Decimal {
	return b.Current.Add(b.B1to30).Add(b.B31to60).Add(b.B61to90).Add(b.Over90)
}

// ClassifiedLine is a ledger line with aging results attached.
type ClassifiedLine struct {
	LedgerLine
	Kind        DocKind
	Maturity    time.Time
	Net         decimal.Decimal
	DaysOverdue int
	Buckets     BucketSet
}

// BankAccount is one vendor bank account. NotesCurrency and FieldCurrency
// are filled by the resolver; empty means no currency signal.
type BankAccount struct {
	RecordID      int64
	VendorID      int64
	BankName      string
	AccountNumber string
	Notes         string
	CurrencyLabel string
	NotesCurrency string
	FieldCurrency string
}

// ReportRow is a classified line enriched with its resolved bank account.
type ReportRow struct {
	ClassifiedLine
	BankName      string
	AccountNumber string
	BankNotes     string
}

// DroppedLine records a ledger line excluded from the report, so that bad
// rows stay visible instead of disappearing silently.
type DroppedLine struct {
	RecordID   int64  `json:"record_id"`
	VendorName string `json:"vendor"`
	Reference  string `json:"reference"`
	Reason     string `json:"reason"`
}

// Report is the result of one generation run. Rows come sorted by vendor
// name, then days overdue descending.
type Report struct {
	RunID   string
	Cutoff  time.Time
	Rows    []ReportRow
	Dropped []DroppedLine
}
