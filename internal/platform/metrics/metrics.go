package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks outbound resource calls. Each collector owns its registry
// so several can coexist in one process.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec

	totalRequests   uint64
	errorRequests   uint64
	unauthorized    uint64
	totalDurationMs uint64
}

func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Backend requests by resource and status code.",
		}, []string{"resource", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by resource.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
	}
	c.registry.MustRegister(c.requests, c.latency)
	return c
}

// Record notes one completed call. Status 0 means the backend was unreachable.
func (c *Collector) Record(resource string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(resource, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(resource).Observe(duration.Seconds())

	atomic.AddUint64(&c.totalRequests, 1)
	if status == 0 || status >= 400 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == http.StatusUnauthorized {
		atomic.AddUint64(&c.unauthorized, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	unauthorized := atomic.LoadUint64(&c.unauthorized)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"unauthorizedTotal": unauthorized,
		"avgDurationMs":     avg,
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
