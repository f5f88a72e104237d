package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stackorder"

// PrometheusHooks implements every hook interface by recording Prometheus
// metrics. Create one per registry with NewPrometheusHooks.
type PrometheusHooks struct {
	resolves        *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	resolveElements prometheus.Histogram
	cacheEvents     *prometheus.CounterVec
	cacheBytes      prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them on reg.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	h := &PrometheusHooks{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolves_total",
			Help:      "Order resolutions by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent building and sorting the constraint graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"strategy"}),
		resolveElements: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_elements",
			Help:      "Number of elements per resolution.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes by key type.",
		}, []string{"type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	for _, c := range []prometheus.Collector{
		h.resolves, h.resolveDuration, h.resolveElements,
		h.cacheEvents, h.cacheBytes,
		h.requests, h.requestDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *PrometheusHooks) OnResolveStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnResolveComplete(_ context.Context, strategy string, elements, _ int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	h.resolves.WithLabelValues(strategy, outcome).Inc()
	h.resolveDuration.WithLabelValues(strategy).Observe(d.Seconds())
	h.resolveElements.Observe(float64(elements))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

// OnResponse records the request. path should be a route pattern, not a raw
// URL, to keep label cardinality bounded.
func (h *PrometheusHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	h.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

var (
	_ ResolveHooks = (*PrometheusHooks)(nil)
	_ CacheHooks   = (*PrometheusHooks)(nil)
	_ HTTPHooks    = (*PrometheusHooks)(nil)
)
