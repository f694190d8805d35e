package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msundar/receipt-processor/internal/points"
)

const targetReceiptJSON = `{
	"retailer": "Target",
	"purchaseDate": "2022-01-01",
	"purchaseTime": "13:01",
	"items": [
		{"shortDescription": "Mountain Dew 12PK", "price": "6.49"},
		{"shortDescription": "Emils Cheese Pizza", "price": "12.25"},
		{"shortDescription": "Knorr Creamy Chicken", "price": "1.26"},
		{"shortDescription": "Doritos Nacho Cheese", "price": "3.35"},
		{"shortDescription": "   Klarbrunn 12-PK 12 FL OZ  ", "price": "12.00"}
	],
	"total": "35.35"
}`

const cornerMarketReceiptJSON = `{
	"retailer": "M&M Corner Market",
	"purchaseDate": "2022-03-20",
	"purchaseTime": "14:33",
	"items": [
		{"shortDescription": "Gatorade", "price": "2.25"},
		{"shortDescription": "Gatorade", "price": "2.25"},
		{"shortDescription": "Gatorade", "price": "2.25"},
		{"shortDescription": "Gatorade", "price": "2.25"}
	],
	"total": "9.00"
}`

func newTestServer(t *testing.T, ruleset points.Ruleset) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	s := New(Config{Port: 8080, Ruleset: ruleset})
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func processReceipt(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/receipts/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func getPoints(t *testing.T, s *Server, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/receipts/"+id+"/points", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, points.RulesetStandard)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Receipt Processor")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, points.RulesetStandard)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestProcessReceipt_ReturnsID(t *testing.T) {
	s := newTestServer(t, points.RulesetStandard)

	w := processReceipt(t, s, targetReceiptJSON)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
}

func TestProcessThenGetPoints(t *testing.T) {
	tests := []struct {
		name    string
		ruleset points.Ruleset
		body    string
		want    int
	}{
		{name: "target receipt standard", ruleset: points.RulesetStandard, body: targetReceiptJSON, want: 28},
		{name: "target receipt extended", ruleset: points.RulesetExtended, body: targetReceiptJSON, want: 28},
		{name: "corner market standard", ruleset: points.RulesetStandard, body: cornerMarketReceiptJSON, want: 109},
		{name: "corner market extended", ruleset: points.RulesetExtended, body: cornerMarketReceiptJSON, want: 149},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.ruleset)

			w := processReceipt(t, s, tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var created map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

			w = getPoints(t, s, created["id"])
			require.Equal(t, http.StatusOK, w.Code)

			var scored map[string]int
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scored))
			assert.Equal(t, tt.want, scored["points"])
		})
	}
}

func TestProcessReceipt_Invalid(t *testing.T) {
	bodies := map[string]string{
		"malformed JSON": `{"retailer": `,
		"empty items": `{"retailer": "Shop", "purchaseDate": "2022-01-01", "purchaseTime": "12:00",
			"items": [], "total": "0.00"}`,
		"bad price": `{"retailer": "Shop", "purchaseDate": "2022-01-01", "purchaseTime": "12:00",
			"items": [{"shortDescription": "Item", "price": "1.0"}], "total": "1.00"}`,
		"bad time": `{"retailer": "Shop", "purchaseDate": "2022-01-01", "purchaseTime": "24:00",
			"items": [{"shortDescription": "Item", "price": "1.00"}], "total": "1.00"}`,
		"bad date": `{"retailer": "Shop", "purchaseDate": "invalid-date", "purchaseTime": "12:00",
			"items": [{"shortDescription": "Item", "price": "1.00"}], "total": "1.00"}`,
		"extra field": `{"retailer": "Shop", "purchaseDate": "2022-01-01", "purchaseTime": "12:00",
			"items": [{"shortDescription": "Item", "price": "1.00"}], "total": "1.00", "tip": "2.00"}`,
	}

	s := newTestServer(t, points.RulesetStandard)
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w := processReceipt(t, s, body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "The receipt is invalid", strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestProcessReceipt_DuplicateExtended(t *testing.T) {
	s := newTestServer(t, points.RulesetExtended)

	w := processReceipt(t, s, targetReceiptJSON)
	require.Equal(t, http.StatusOK, w.Code)

	w = processReceipt(t, s, targetReceiptJSON)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate")
}

func TestProcessReceipt_DuplicateKeyOrderInsensitive(t *testing.T) {
	s := newTestServer(t, points.RulesetExtended)

	w := processReceipt(t, s, cornerMarketReceiptJSON)
	require.Equal(t, http.StatusOK, w.Code)

	// Same content, different key order: still a duplicate.
	reordered := `{
		"total": "9.00",
		"items": [
			{"price": "2.25", "shortDescription": "Gatorade"},
			{"price": "2.25", "shortDescription": "Gatorade"},
			{"price": "2.25", "shortDescription": "Gatorade"},
			{"price": "2.25", "shortDescription": "Gatorade"}
		],
		"purchaseTime": "14:33",
		"purchaseDate": "2022-03-20",
		"retailer": "M&M Corner Market"
	}`
	w = processReceipt(t, s, reordered)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate")
}

func TestProcessReceipt_DuplicateAllowedStandard(t *testing.T) {
	s := newTestServer(t, points.RulesetStandard)

	w := processReceipt(t, s, targetReceiptJSON)
	require.Equal(t, http.StatusOK, w.Code)

	w = processReceipt(t, s, targetReceiptJSON)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPoints_UnknownID(t *testing.T) {
	s := newTestServer(t, points.RulesetStandard)

	w := getPoints(t, s, "f04602ee-2548-4863-80b7-f30683210797")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No receipt found")
}

func TestRateLimit_Enforced(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "2")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "1h")

	s := New(Config{Port: 8080, Ruleset: points.RulesetStandard})
	t.Cleanup(func() { s.rateLimiter.Stop() })

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
