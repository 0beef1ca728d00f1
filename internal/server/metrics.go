package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/tldrviz/pkg/observability"
)

const namespace = "tldrviz"

// Metrics is the Prometheus implementation of the observability hooks.
// Each instance owns its registry so tests can create several.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	transforms        *prometheus.CounterVec
	transformDuration *prometheus.HistogramVec
	graphNodes        *prometheus.GaugeVec

	classifyRuns     *prometheus.CounterVec
	classifyDuration *prometheus.HistogramVec
	classifyEntries  prometheus.Histogram
	persists         *prometheus.CounterVec

	cacheEvents *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "runs_total",
			Help:      "View transforms by view and status",
		}, []string{"view", "status"}),
		transformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "duration_seconds",
			Help:      "View transform latency including layout",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"view"}),
		graphNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transform",
			Name:      "last_graph_nodes",
			Help:      "Node count of the last graph built per view",
		}, []string{"view"}),
		classifyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "runs_total",
			Help:      "Classification runs by provider and status",
		}, []string{"provider", "status"}),
		classifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "duration_seconds",
			Help:      "Classification latency including retries",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"provider"}),
		classifyEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "classify",
			Name:      "entries",
			Help:      "Entry points per classification request",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Background classification saves by backend and status",
		}, []string{"backend", "status"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Cache hits, misses and writes by key type",
		}, []string{"type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache by key type",
		}, []string{"type"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.requestDuration,
		m.transforms, m.transformDuration, m.graphNodes,
		m.classifyRuns, m.classifyDuration, m.classifyEntries, m.persists,
		m.cacheEvents, m.cacheBytes,
	)
	return m
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetTransformHooks(m)
	observability.SetClassifyHooks(m)
	observability.SetCacheHooks(m)
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnTransformStart(context.Context, string) {}

func (m *Metrics) OnTransformComplete(_ context.Context, view string, nodes, _ int, d time.Duration, err error) {
	m.transforms.WithLabelValues(view, status(err)).Inc()
	m.transformDuration.WithLabelValues(view).Observe(d.Seconds())
	if err == nil {
		m.graphNodes.WithLabelValues(view).Set(float64(nodes))
	}
}

func (m *Metrics) OnClassifyStart(_ context.Context, _ string, entries int) {
	m.classifyEntries.Observe(float64(entries))
}

func (m *Metrics) OnClassifyComplete(_ context.Context, provider string, _ int, d time.Duration, err error) {
	m.classifyRuns.WithLabelValues(provider, status(err)).Inc()
	m.classifyDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) OnPersist(_ context.Context, backend string, err error) {
	m.persists.WithLabelValues(backend, status(err)).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.TransformHooks = (*Metrics)(nil)
	_ observability.ClassifyHooks  = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
)
