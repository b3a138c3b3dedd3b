package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestNewRegistry_GathersWithoutError(t *testing.T) {
	reg := NewRegistry()

	reg.RecordAnalysis("BUY", 0.12)
	reg.RecordConflict("OVERVALUED_BULLISH")
	reg.RecordCollectorRequest("yahoo", "ok")
	reg.RecordLLMRequest("claude", "ok", 100, 50)
	reg.SetWatchlistSize(3)
	reg.RecordRequest("GET", "/api/v1/analyze/AAPL", 200, 0.05)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"http_requests_total",
		"confluence_analyses_total",
		"confluence_conflicts_total",
		"confluence_collector_requests_total",
		"confluence_llm_tokens_total",
		"confluence_watchlist_symbols",
	} {
		if !names[want] {
			t.Errorf("metric %s not gathered", want)
		}
	}
}

func TestHTTPMiddleware_RecordsRequests(t *testing.T) {
	reg := NewRegistry()

	handler := HTTPMiddleware(reg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}

	metricsRec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(metricsRec,
		httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := metricsRec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",path="/api/health",status="4xx"} 1`) {
		t.Error("request not recorded in http_requests_total")
	}
}

func TestStatusToString(t *testing.T) {
	tests := map[int]string{
		100: "1xx", 200: "2xx", 204: "2xx", 301: "3xx", 404: "4xx", 500: "5xx", 503: "5xx",
	}
	for status, want := range tests {
		if got := statusToString(status); got != want {
			t.Errorf("statusToString(%d) = %s, want %s", status, got, want)
		}
	}
}
