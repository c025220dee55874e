package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"llamagate/pkg/types"
)

const metricsNamespace = "llamagate"

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status.",
	}, []string{"path", "method", "status"})

	// Chat requests hold the inference lock for the whole generation, so the
	// upper buckets reach several minutes.
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"path", "method", "status"})

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Requests currently being served, including those queued on the model.",
	})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Error responses by operation and error kind.",
	}, []string{"op", "kind"})

	chatAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "chat",
		Name:      "generation_attempts",
		Help:      "Generations needed per successful chat completion.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})

	chatChoicesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "chat",
		Name:      "choices_total",
		Help:      "Returned choices by finish reason and whether they carry a function call.",
	}, []string{"finish_reason", "kind"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, errorsTotal, chatAttempts, chatChoicesTotal)
}

// observeChat records a successful chat completion.
func observeChat(attempts int, resp *types.CreateChatCompletionResponse) {
	chatAttempts.Observe(float64(attempts))
	for _, c := range resp.Choices {
		kind := "text"
		if c.Message.FunctionCall != nil {
			kind = "function_call"
		}
		chatChoicesTotal.WithLabelValues(c.FinishReason, kind).Inc()
	}
}

// MetricsMiddleware instruments requests for Prometheus. Labels are taken
// after the handler ran so the path is the matched chi pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{routeLabel(r), r.Method, strconv.Itoa(status)}
		httpRequestsTotal.WithLabelValues(labels...).Inc()
		httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// routeLabel is the chi route pattern, or the raw path when nothing matched.
func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
