package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForecastCashflow decodes a forecast response and propagates the days
// query parameter
func TestForecastCashflow(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast/cashflow", r.URL.Path)
		assert.Equal(t, "14", r.URL.Query().Get("days"))

		_ = json.NewEncoder(w).Encode(CashflowForecast{
			Days: []DailyForecast{
				{Date: "2026-09-01", Inflow: 1200.50, Outflow: 300, NetFlow: 900.50},
			},
			Trend:          "upward",
			Recommendation: "maintain current stock levels",
		})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)

	forecast, err := client.ForecastCashflow(context.Background(), 14)
	require.NoError(t, err)
	require.Len(t, forecast.Days, 1)
	assert.Equal(t, "upward", forecast.Trend)
	assert.InDelta(t, 900.50, forecast.Days[0].NetFlow, 0.001)
}

// TestDetectAnomalies posts the since parameter and decodes the anomaly list
func TestDetectAnomalies(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/anomalies/detect", r.URL.Path)
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))

		_ = json.NewEncoder(w).Encode([]Anomaly{
			{ID: "an-1", TransactionRef: "ORD/2026/08/0042", Score: 0.93, Severity: "high"},
		})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)

	anomalies, err := client.DetectAnomalies(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "ORD/2026/08/0042", anomalies[0].TransactionRef)
}

// TestExtractInvoice round-trips the document payload and decodes the
// extracted fields
func TestExtractInvoice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocr/invoice", r.URL.Path)

		var body struct {
			Filename string `json:"filename"`
			Document []byte `json:"document"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "scan.pdf", body.Filename)
		assert.Equal(t, []byte("%PDF-1.4"), body.Document)

		_ = json.NewEncoder(w).Encode(InvoiceExtraction{
			InvoiceNo:    "F-2026-118",
			SupplierName: "Acme Wholesale",
			TotalAmount:  432.90,
			Confidence:   0.87,
		})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)

	extraction, err := client.ExtractInvoice(context.Background(), []byte("%PDF-1.4"), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "F-2026-118", extraction.InvoiceNo)
	assert.InDelta(t, 432.90, extraction.TotalAmount, 0.001)
}

// TestUpstreamError surfaces non-2xx responses as errors
func TestUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)

	_, err := client.ForecastCashflow(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
