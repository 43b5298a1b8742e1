package aging

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Classify resolves due dates, normalizes signs and assigns every line's
// net amount to exactly one aging bucket relative to cutoff. Lines whose
// due date cannot be resolved are returned as diagnostics instead of
// failing the run.
func Classify(lines []LedgerLine, kinds map[int64]DocKind, cutoff time.Time) ([]ClassifiedLine, []DroppedLine) {
	cutoffDay := truncateDay(cutoff)

	classified := make([]ClassifiedLine, 0, len(lines))
	var dropped []DroppedLine

	for _, line := range lines {
		raw := line.DueDate
		if raw == "" {
			raw = line.IssueDate
		}
		maturity, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			dropped = append(dropped, DroppedLine{
				RecordID:   line.RecordID,
				VendorName: line.VendorName,
				Reference:  line.Reference,
				Reason:     fmt.Sprintf("unresolvable due date %q", raw),
			})
			continue
		}

		// Unknown parent documents count as invoices.
		kind, ok := kinds[line.MoveID]
		if !ok {
			kind = DocKindInvoice
		}
		net := line.Residual.Abs()
		if kind == DocKindCreditNote {
			net = net.Neg()
		}

		days := int(cutoffDay.Sub(truncateDay(maturity)).Hours() / 24)

		classified = append(classified, ClassifiedLine{
			LedgerLine:  line,
			Kind:        kind,
			Maturity:    maturity,
			Net:         net,
			DaysOverdue: days,
			Buckets:     assignBucket(net, days),
		})
	}
	return classified, dropped
}

// assignBucket places net into the single bucket matching days overdue.
func assignBucket(net decimal.Decimal, days int) BucketSet {
	var b BucketSet
	switch {
	case days <= 0:
		b.Current = net
	case days <= 30:
		b.B1to30 = net
	case days <= 60:
		b.B31to60 = net
	case days <= 90:
		b.B61to90 = net
	default:
		b.Over90 = net
	}
	return b
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
