package aging

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errAny = errors.New("erp unreachable")

type stubExporter struct{ data []byte }

func (s stubExporter) Workbook(report Report) ([]byte, error) { return s.data, nil }

func newTestRouter(source Source) http.Handler {
	logger := testLogger()
	handler := NewHandler(logger, NewService(source, logger), stubExporter{data: []byte("xlsx-bytes")})
	r := chi.NewRouter()
	r.Route("/reports", handler.MountRoutes)
	return r
}

func populatedSource() *memorySource {
	return &memorySource{
		lines: []LedgerLine{
			{RecordID: 1, VendorID: 10, VendorName: "Proveedor Uno", Reference: "FAC-001",
				IssueDate: "2023-12-15", DueDate: "2024-01-01",
				Residual: decimal.NewFromInt(100), Currency: "USD", MoveID: 100},
		},
		kinds: map[int64]DocKind{100: DocKindInvoice},
		accounts: []BankAccount{
			{RecordID: 1, VendorID: 10, BankName: "Banco Nacional", AccountNumber: "CR01-123", Notes: "dólares"},
		},
	}
}

func TestPreviewEndpoint(t *testing.T) {
	router := newTestRouter(populatedSource())

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging?cutoff=2024-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID  string `json:"run_id"`
		Cutoff string `json:"cutoff"`
		Status string `json:"status"`
		Rows   []struct {
			Vendor      string `json:"vendor"`
			DaysOverdue int    `json:"days_overdue"`
			Net         string `json:"net"`
			BankName    string `json:"bank_name"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "2024-02-15", resp.Cutoff)
	require.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Rows, 1)
	require.Equal(t, "Proveedor Uno", resp.Rows[0].Vendor)
	require.Equal(t, 45, resp.Rows[0].DaysOverdue)
	require.Equal(t, "100.00", resp.Rows[0].Net)
	require.Equal(t, "Banco Nacional", resp.Rows[0].BankName)
}

func TestPreviewNoData(t *testing.T) {
	router := newTestRouter(&memorySource{})

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging?cutoff=2024-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "no_data", resp.Status)
}

func TestPreviewRejectsBadCutoff(t *testing.T) {
	router := newTestRouter(populatedSource())

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging?cutoff=15/02/2024", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadEndpoint(t *testing.T) {
	router := newTestRouter(populatedSource())

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging/xlsx?cutoff=2024-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "Antiguedad_2024-02-15.xlsx")
	require.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestDownloadNoData(t *testing.T) {
	router := newTestRouter(&memorySource{})

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging/xlsx?cutoff=2024-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadUpstreamFailure(t *testing.T) {
	router := newTestRouter(&memorySource{err: errAny})

	req := httptest.NewRequest(http.MethodGet, "/reports/cxp-aging/xlsx?cutoff=2024-02-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}
