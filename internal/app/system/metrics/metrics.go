// Package metrics exposes Prometheus collectors for the admin app.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mentorhub", Name: "http_request_duration_seconds", Help: "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	RecordWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mentorhub", Name: "record_writes_total", Help: "Record creates, updates and deletes",
	}, []string{"entity", "op"})
	AuthDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mentorhub", Name: "auth_denials_total", Help: "Requests refused by the role guard",
	}, []string{"reason"})
	ValidationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mentorhub", Name: "validation_failures_total", Help: "Form submissions rejected by validation",
	}, []string{"entity"})
	ExportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mentorhub", Name: "export_rows_total", Help: "Rows written to XLSX exports",
	}, []string{"entity"})
	SummaryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mentorhub", Name: "summary_duration_seconds", Help: "Summary aggregation latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"summary"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mentorhub", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

// Record write operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

func init() {
	prometheus.MustRegister(HTTPRequests, RecordWrites, AuthDenials, ValidationFailures, ExportRows, SummaryDuration, DBPing)
}

// ObserveSummary records how long a summary aggregation took since start.
func ObserveSummary(name string, start time.Time) {
	SummaryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// RecordWrite counts one successful write.
func RecordWrite(entity, op string) { RecordWrites.WithLabelValues(entity, op).Inc() }

// Denied counts a refused request by reason ("unauthenticated", "forbidden"
// or "rate_limited").
func Denied(reason string) { AuthDenials.WithLabelValues(reason).Inc() }

// Invalid counts a rejected form for entity.
func Invalid(entity string) { ValidationFailures.WithLabelValues(entity).Inc() }

// Exported counts rows written to an export.
func Exported(entity string, rows int) { ExportRows.WithLabelValues(entity).Add(float64(rows)) }

// Middleware observes request latency labelled by the chi route pattern so
// ObjectIDs in paths do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
