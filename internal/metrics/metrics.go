package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolapi", Name: "evaluations_created_total", Help: "Ledger entries created",
	})
	EvaluationsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolapi", Name: "evaluations_deleted_total", Help: "Ledger entries deleted",
	})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolapi", Name: "handler_errors_total", Help: "Handler errors",
	})
	LedgerSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "schoolapi", Name: "ledger_size", Help: "Evaluation rows currently stored",
	})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schoolapi", Name: "request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schoolapi", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(EvaluationsCreated, EvaluationsDeleted, HandlerErrors, LedgerSize, RequestDuration, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveRequest(route, method string, d time.Duration) {
	RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
