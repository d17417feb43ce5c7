package middleware

import (
	"net/http"
	"strings"
	"time"

	"hrportal/internal/platform/metrics"
)

// Metrics records every request against the collector, labelled by the first
// path segment under /api.
func Metrics(c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			c.Record(routeLabel(r.URL.Path), recorder.status, time.Since(start))
		})
	}
}

func routeLabel(path string) string {
	path = strings.TrimPrefix(strings.Trim(path, "/"), "api/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == "api" {
		return "root"
	}
	return path
}
