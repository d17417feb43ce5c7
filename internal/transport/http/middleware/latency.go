package middleware

import (
	"net/http"
	"time"
)

// Latency delays each request by delay(), giving up early if the client goes away.
func Latency(delay func() time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d := delay(); d > 0 {
				timer := time.NewTimer(d)
				select {
				case <-timer.C:
				case <-r.Context().Done():
					timer.Stop()
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
