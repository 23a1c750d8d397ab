// Package metrics expone métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics usa un registry propio: así se pueden crear varios routers (tests)
// sin colisiones en el registry global.
type Metrics struct {
	registry *prometheus.Registry

	SeriesBuilt        *prometheus.CounterVec
	SeriesBuildLatency *prometheus.HistogramVec
	SeriesNoData       prometheus.Counter
	EntriesSkipped     prometheus.Counter
	EntriesCreated     prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SeriesBuilt: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nicu_progress_series_built_total",
			Help: "Progress series computed, by aggregation level.",
		}, []string{"level"}),
		SeriesBuildLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nicu_progress_series_build_seconds",
			Help:    "Time spent loading entries and building a progress series.",
			Buckets: prometheus.DefBuckets,
		}, []string{"level"}),
		SeriesNoData: f.NewCounter(prometheus.CounterOpts{
			Name: "nicu_progress_series_no_data_total",
			Help: "Progress requests that ended with no usable entries.",
		}),
		EntriesSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "nicu_progress_entries_skipped_total",
			Help: "Entries excluded from a series because of malformed dates.",
		}),
		EntriesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "nicu_progress_entries_created_total",
			Help: "Daily entries recorded.",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nicu_progress_http_requests_total",
			Help: "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}
}

// ObserveBuild registra una construcción de serie.
func (m *Metrics) ObserveBuild(level string, started time.Time, skipped int, noData bool) {
	if m == nil {
		return
	}
	m.SeriesBuilt.WithLabelValues(level).Inc()
	m.SeriesBuildLatency.WithLabelValues(level).Observe(time.Since(started).Seconds())
	if skipped > 0 {
		m.EntriesSkipped.Add(float64(skipped))
	}
	if noData {
		m.SeriesNoData.Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) EntryCreated() {
	if m == nil {
		return
	}
	m.EntriesCreated.Inc()
}
