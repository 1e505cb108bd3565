package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database Metrics
var DBQueryDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "db_query_duration_seconds",
	Help:    "Duration of database queries in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"query_type", "repository", "status"})

var DBQueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "db_query_errors_total",
	Help: "Total number of failed database queries.",
}, []string{"query_type", "repository"})

// QueryTimer measures one repository call. Call Fail before Done when the
// query errored so both the histogram status and the error counter reflect it.
type QueryTimer struct {
	timer      *prometheus.Timer
	queryType  string
	repository string
	status     string
}

func NewQueryTimer(repository, queryType string) *QueryTimer {
	q := &QueryTimer{queryType: queryType, repository: repository, status: "success"}
	q.timer = prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		DBQueryDurationSeconds.WithLabelValues(q.queryType, q.repository, q.status).Observe(v)
	}))
	return q
}

func (q *QueryTimer) Fail() {
	q.status = "error"
	DBQueryErrorsTotal.WithLabelValues(q.queryType, q.repository).Inc()
}

func (q *QueryTimer) Done() {
	q.timer.ObserveDuration()
}
