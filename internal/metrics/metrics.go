package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "user_records",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "user_records",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	usersGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "user_records",
			Subsystem: "users",
			Name:      "generated_total",
			Help:      "Total number of synthetic users produced.",
		},
	)

	usersInserted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "user_records",
			Subsystem: "users",
			Name:      "inserts_total",
			Help:      "Total number of user insert attempts.",
		},
		[]string{"result"},
	)

	filesUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "user_records",
			Subsystem: "files",
			Name:      "uploaded_bytes_total",
			Help:      "Total number of bytes accepted by file uploads.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		usersGenerated,
		usersInserted,
		filesUploaded,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordGenerated counts one synthetic user.
func RecordGenerated() {
	usersGenerated.Inc()
}

// RecordInsert counts a user insert attempt by outcome.
func RecordInsert(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	usersInserted.WithLabelValues(result).Inc()
}

// RecordUpload counts accepted upload bytes.
func RecordUpload(size int64) {
	filesUploaded.Add(float64(size))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush lets streaming handlers push through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// canonicalPath collapses path parameters so label cardinality stays bounded.
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 1:
		return "/" + parts[0]
	case parts[0] == "users" && len(parts) == 2 && isNumeric(parts[1]):
		return "/users/:id"
	case parts[0] == "files":
		return "/files/:key"
	default:
		return "/" + parts[0] + "/" + parts[1]
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
