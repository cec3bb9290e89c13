package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/*
Metrics exposed on GET /metrics:

- votes_recorded_total{question_id}: votes that incremented a choice.
- votes_rejected_total{question_id}: vote submissions redisplayed with
  "You didn't select a choice."
- http_request_duration_seconds{route,method,status}: latency per route
  pattern, not per raw path.

The vote counters get one series per published question that has been
voted on, so they grow with the number of questions. Unknown and
unpublished IDs are answered with 404 before any counter is touched.
Only the request histogram has a fixed label set.

Each Metrics owns its registry. Tests can build as many routers as they
like without duplicate-registration panics.
*/

type Metrics struct {
	Registry        *prometheus.Registry
	VotesRecorded   *prometheus.CounterVec
	VotesRejected   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		VotesRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_recorded_total",
				Help:      "Total number of votes that incremented a choice",
			},
			[]string{"question_id"},
		),
		VotesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_rejected_total",
				Help:      "Total number of vote submissions without a valid choice",
			},
			[]string{"question_id"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies by route pattern",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
