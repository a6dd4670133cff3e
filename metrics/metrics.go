// Package metrics exposes Prometheus metrics for report runs.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/NextMind-AI/chat-sentiment/livechat"
	"github.com/NextMind-AI/chat-sentiment/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	PagesFetched prometheus.Counter
	ChatsFetched prometheus.Counter
	ChatsTotal   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers all metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatsentiment_runs_total",
				Help: "Total number of report runs by outcome",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatsentiment_run_duration_seconds",
				Help:    "Duration of report runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		PagesFetched: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatsentiment_archive_pages_total",
				Help: "Total number of archive pages fetched",
			},
		),
		ChatsFetched: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chatsentiment_archive_chats_total",
				Help: "Total number of chat records received from the archive",
			},
		),
		ChatsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatsentiment_report_rows_total",
				Help: "Total number of report rows by customer message presence",
			},
			[]string{"customer_messages"},
		),
		gatherer: gatherer,
	}
}

func (m *Metrics) PageFetched(chats int) {
	m.PagesFetched.Inc()
	m.ChatsFetched.Add(float64(chats))
}

func (m *Metrics) RunFinished(counts report.Counts, duration time.Duration, err error) {
	m.RunsTotal.WithLabelValues(Status(err)).Inc()
	m.RunDuration.Observe(duration.Seconds())
	if err != nil {
		return
	}
	m.ChatsTotal.WithLabelValues("yes").Add(float64(counts.WithMessages))
	m.ChatsTotal.WithLabelValues("no").Add(float64(counts.WithoutMessages))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Status maps a run error to its metric label.
func Status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, livechat.ErrInvalidCredentials),
		errors.Is(err, livechat.ErrInvalidDateFormat),
		errors.Is(err, livechat.ErrInvalidDateRange):
		return "invalid_input"
	case errors.Is(err, livechat.ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, livechat.ErrTransport):
		return "transport"
	case errors.Is(err, livechat.ErrPageLimit):
		return "page_limit"
	default:
		return "error"
	}
}
