package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecordAndSnapshot(t *testing.T) {
	c := New("test")
	c.Record("leaves", http.StatusOK, 20*time.Millisecond)
	c.Record("leaves", http.StatusUnauthorized, 10*time.Millisecond)
	c.Record("auth", 0, 0)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 3 {
		t.Fatalf("expected 3 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 2 {
		t.Fatalf("expected 2 errors, got %v", snap["errorsTotal"])
	}
	if snap["unauthorizedTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 unauthorized, got %v", snap["unauthorizedTotal"])
	}
}

func TestHandlerExposesSeries(t *testing.T) {
	c := New("test")
	c.Record("employees", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if !strings.Contains(string(body), `test_requests_total{code="200",resource="employees"} 1`) {
		t.Fatalf("missing counter series in:\n%s", body)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.Record("leaves", http.StatusOK, time.Millisecond)
}
