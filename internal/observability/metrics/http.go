package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics carries request-level series plus the archive QA
// signals: per-mode chat traffic, refusals, rate-limit rejections, source
// counts and upstream LLM failures.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	chatRequestsTotal    *prometheus.CounterVec
	chatRefusalsTotal    *prometheus.CounterVec
	chatRateLimitedTotal *prometheus.CounterVec
	chatSources          *prometheus.HistogramVec
	chatDuration         *prometheus.HistogramVec
	llmFailuresTotal     *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archive",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "archive",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "archive",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	chatRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archive",
			Subsystem: "qa",
			Name:      "requests_total",
			Help:      "Total answered chat requests by mode.",
		},
		[]string{"service", "mode"},
	)
	chatRefusalsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archive",
			Subsystem: "qa",
			Name:      "refusals_total",
			Help:      "Total questions declined by the refusal filter.",
		},
		[]string{"service"},
	)
	chatRateLimitedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archive",
			Subsystem: "qa",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected by the rate limiter.",
		},
		[]string{"service"},
	)
	chatSources := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "archive",
			Subsystem: "qa",
			Name:      "used_sources",
			Help:      "Distribution of sources made available per answered request.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8},
		},
		[]string{"service", "mode"},
	)
	chatDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "archive",
			Subsystem: "qa",
			Name:      "duration_seconds",
			Help:      "Chat handling duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "mode"},
	)
	llmFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "archive",
			Subsystem: "llm",
			Name:      "failures_total",
			Help:      "Total upstream LLM failures by kind.",
		},
		[]string{"service", "kind"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		chatRequestsTotal,
		chatRefusalsTotal,
		chatRateLimitedTotal,
		chatSources,
		chatDuration,
		llmFailuresTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		chatRequestsTotal:    chatRequestsTotal,
		chatRefusalsTotal:    chatRefusalsTotal,
		chatRateLimitedTotal: chatRateLimitedTotal,
		chatSources:          chatSources,
		chatDuration:         chatDuration,
		llmFailuresTotal:     llmFailuresTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}/related"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordChat(service, mode string, usedSources int, duration time.Duration) {
	if mode == "" {
		mode = "unknown"
	}
	m.chatRequestsTotal.WithLabelValues(service, mode).Inc()
	m.chatSources.WithLabelValues(service, mode).Observe(float64(usedSources))
	m.chatDuration.WithLabelValues(service, mode).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordRefusal(service string) {
	m.chatRefusalsTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordRateLimited(service string) {
	m.chatRateLimitedTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordLLMFailure(service, kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.llmFailuresTotal.WithLabelValues(service, kind).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
