package folio

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the pipeline counters exported on /metrics. A nil *Metrics
// records nothing.
type Metrics struct {
	postsSelected   *prometheus.GaugeVec
	entriesSkipped  *prometheus.CounterVec
	imagesGenerated *prometheus.CounterVec
	builds          *prometheus.CounterVec
	buildDuration   prometheus.Histogram
}

// NewMetrics registers the pipeline metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		postsSelected: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "folio",
			Name:      "posts_selected",
			Help:      "Published posts selected in the last pipeline run, by locale.",
		}, []string{"locale"}),
		entriesSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "entries_skipped_total",
			Help:      "Entries skipped by a projection for a missing field or a duplicate slug.",
		}, []string{"projection"}),
		imagesGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "og_images_total",
			Help:      "OG card generation attempts by result.",
		}, []string{"result"}),
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "builds_total",
			Help:      "Static builds by result.",
		}, []string{"result"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "build_duration_seconds",
			Help:      "Wall time of static builds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) selected(locale string, n int) {
	if m == nil {
		return
	}
	m.postsSelected.WithLabelValues(locale).Set(float64(n))
}

func (m *Metrics) skipped(err error) {
	var pe *ProjectionError
	if m == nil || !errors.As(err, &pe) {
		return
	}
	m.entriesSkipped.WithLabelValues(pe.Projection).Add(float64(len(pe.Errs)))
}

func (m *Metrics) image(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.imagesGenerated.WithLabelValues(result).Inc()
}

func (m *Metrics) build(seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.builds.WithLabelValues(result).Inc()
	m.buildDuration.Observe(seconds)
}
