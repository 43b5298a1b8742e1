// Package export renders aging reports as styled XLSX workbooks.
package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vanguardia-erp/cxp-report/internal/aging"
)

// SheetName is the single worksheet the report is written to.
const SheetName = "Antigüedad de Saldos"

var headers = []string{
	"Referencia", "Emisión", "Vencimiento", "Días Vencido", "Moneda",
	"Por Vencer", "1-30 Días", "31-60 Días", "61-90 Días", "+90 Días", "Total",
	"Banco", "Cuenta", "Notas",
}

const maxColWidth = 40

// XLSX writes one vendor-grouped worksheet per report.
type XLSX struct{}

// NewXLSX builds the workbook exporter.
func NewXLSX() *XLSX {
	return &XLSX{}
}

// Filename returns the download name for a report generated at cutoff.
func Filename(report aging.Report) string {
	return fmt.Sprintf("Antiguedad_%s.xlsx", report.Cutoff.Format("2006-01-02"))
}

// Workbook renders the report: a styled header row, then per vendor a
// merged banner row, the vendor's lines and a blank separator row.
func (x *XLSX) Workbook(report aging.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	bannerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return nil, fmt.Errorf("banner style: %w", err)
	}
	numFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header row: %w", err)
	}

	row := 2
	currentVendor := ""
	for i, line := range report.Rows {
		if i == 0 || line.VendorName != currentVendor {
			if i > 0 {
				row++ // blank separator between vendor groups
			}
			currentVendor = line.VendorName
			banner := "PROVEEDOR: " + currentVendor
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellValue(SheetName, cell, banner); err != nil {
				return nil, fmt.Errorf("write vendor banner: %w", err)
			}
			if err := f.MergeCell(SheetName, cell, fmt.Sprintf("%s%d", lastCol, row)); err != nil {
				return nil, fmt.Errorf("merge vendor banner: %w", err)
			}
			if err := f.SetCellStyle(SheetName, cell, fmt.Sprintf("%s%d", lastCol, row), bannerStyle); err != nil {
				return nil, fmt.Errorf("style vendor banner: %w", err)
			}
			grow(widths, 0, banner)
			row++
		}

		values := []any{
			line.Reference,
			line.IssueDate,
			line.Maturity.Format("2006-01-02"),
			line.DaysOverdue,
			line.Currency,
			line.Buckets.Current.InexactFloat64(),
			line.Buckets.B1to30.InexactFloat64(),
			line.Buckets.B31to60.InexactFloat64(),
			line.Buckets.B61to90.InexactFloat64(),
			line.Buckets.Over90.InexactFloat64(),
			line.Net.InexactFloat64(),
			line.BankName,
			line.AccountNumber,
			line.BankNotes,
		}
		if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write report row: %w", err)
		}
		// Amount columns F..K carry the #,##0.00 number format.
		first := fmt.Sprintf("F%d", row)
		last := fmt.Sprintf("K%d", row)
		if err := f.SetCellStyle(SheetName, first, last, amountStyle); err != nil {
			return nil, fmt.Errorf("style amounts: %w", err)
		}

		grow(widths, 0, line.Reference)
		grow(widths, 1, line.IssueDate)
		grow(widths, 2, line.Maturity.Format("2006-01-02"))
		grow(widths, 3, fmt.Sprintf("%d", line.DaysOverdue))
		grow(widths, 4, line.Currency)
		growAmount(widths, 5, line.Buckets.Current)
		growAmount(widths, 6, line.Buckets.B1to30)
		growAmount(widths, 7, line.Buckets.B31to60)
		growAmount(widths, 8, line.Buckets.B61to90)
		growAmount(widths, 9, line.Buckets.Over90)
		growAmount(widths, 10, line.Net)
		grow(widths, 11, line.BankName)
		grow(widths, 12, line.AccountNumber)
		grow(widths, 13, line.BankNotes)
		row++
	}

	for i := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width := widths[i] + 2
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width)); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func grow(widths []int, idx int, value string) {
	if n := utf8.RuneCountInString(value); n > widths[idx] {
		widths[idx] = n
	}
}

func growAmount(widths []int, idx int, value decimal.Decimal) {
	grow(widths, idx, value.StringFixed(2))
}
