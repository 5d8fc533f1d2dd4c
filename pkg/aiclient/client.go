// Package aiclient is a typed HTTP client for the external AI service that
// provides cashflow forecasting, transaction anomaly detection and invoice
// OCR extraction. The models behind these endpoints are opaque; this package
// only owns the request/response contracts.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the collaborator contract consumed by the report and invoice
// services. A fake implementation stands in during tests.
type Client interface {
	ForecastCashflow(ctx context.Context, days int) (*CashflowForecast, error)
	DetectAnomalies(ctx context.Context, since time.Time) ([]Anomaly, error)
	ExtractInvoice(ctx context.Context, document []byte, filename string) (*InvoiceExtraction, error)
}

// DailyForecast is one day of the predicted cash flow
type DailyForecast struct {
	Date    string  `json:"date"`
	Inflow  float64 `json:"inflow"`
	Outflow float64 `json:"outflow"`
	NetFlow float64 `json:"net_flow"`
}

// CashflowForecast is the AI service's cash flow prediction
type CashflowForecast struct {
	Days           []DailyForecast `json:"days"`
	Trend          string          `json:"trend"`
	Recommendation string          `json:"recommendation"`
}

// Anomaly is one suspicious transaction flagged by the detector
type Anomaly struct {
	ID             string    `json:"id"`
	TransactionRef string    `json:"transaction_ref"`
	Score          float64   `json:"score"`
	Severity       string    `json:"severity"`
	Reasons        []string  `json:"reasons"`
	DetectedAt     time.Time `json:"detected_at"`
}

// InvoiceExtraction holds the fields the OCR model read off a scanned invoice
type InvoiceExtraction struct {
	InvoiceNo    string  `json:"invoice_no"`
	InvoiceDate  string  `json:"invoice_date"`
	SupplierName string  `json:"supplier_name"`
	TaxNumber    string  `json:"tax_number"`
	Subtotal     float64 `json:"subtotal"`
	TaxAmount    float64 `json:"tax_amount"`
	TotalAmount  float64 `json:"total_amount"`
	Confidence   float64 `json:"confidence"`
}

// HTTPClient talks to the AI service over its REST API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the AI service at the given base URL
func New(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ForecastCashflow requests a cash flow prediction for the next N days
func (c *HTTPClient) ForecastCashflow(ctx context.Context, days int) (*CashflowForecast, error) {
	endpoint := c.baseURL + "/forecast/cashflow?days=" + strconv.Itoa(days)

	var forecast CashflowForecast
	if err := c.getJSON(ctx, endpoint, &forecast); err != nil {
		return nil, fmt.Errorf("cashflow forecast: %w", err)
	}
	return &forecast, nil
}

// DetectAnomalies requests anomaly detection over transactions since the
// given instant
func (c *HTTPClient) DetectAnomalies(ctx context.Context, since time.Time) ([]Anomaly, error) {
	endpoint := c.baseURL + "/anomalies/detect?since=" + url.QueryEscape(since.Format(time.RFC3339))

	var anomalies []Anomaly
	if err := c.postJSON(ctx, endpoint, nil, &anomalies); err != nil {
		return nil, fmt.Errorf("anomaly detection: %w", err)
	}
	return anomalies, nil
}

// ExtractInvoice submits a scanned document for OCR field extraction
func (c *HTTPClient) ExtractInvoice(ctx context.Context, document []byte, filename string) (*InvoiceExtraction, error) {
	body := map[string]any{
		"filename": filename,
		"document": document, // base64-encoded by encoding/json
	}

	var extraction InvoiceExtraction
	if err := c.postJSON(ctx, c.baseURL+"/ocr/invoice", body, &extraction); err != nil {
		return nil, fmt.Errorf("invoice extraction: %w", err)
	}
	return &extraction, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) postJSON(ctx context.Context, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ai service returned %d: %s", resp.StatusCode, payload)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
