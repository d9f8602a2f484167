// Package metrics defines the Prometheus collectors of translation runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the translation collectors. A nil *Metrics records nothing.
type Metrics struct {
	translations *prometheus.CounterVec
	entities     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "descriptor_translations_total",
				Help: "Number of descriptor translations by direction and outcome.",
			},
			[]string{"direction", "outcome"},
		),
		entities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "descriptor_entities_translated_total",
				Help: "Number of descriptor entities translated by direction and kind.",
			},
			[]string{"direction", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "descriptor_translation_duration_seconds",
				Help:    "Time taken by one descriptor translation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"direction"},
		),
	}

	for _, c := range []prometheus.Collector{m.translations, m.entities, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveRun records the outcome and duration of one translation.
func (m *Metrics) ObserveRun(direction string, started time.Time, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	m.translations.WithLabelValues(direction, outcome).Inc()
	m.duration.WithLabelValues(direction).Observe(time.Since(started).Seconds())
}

// AddEntities records n translated entities of the given kind.
func (m *Metrics) AddEntities(direction, kind string, n int) {
	if m == nil || n == 0 {
		return
	}

	m.entities.WithLabelValues(direction, kind).Add(float64(n))
}
