package costing

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics: maliyet hesaplarına ait prometheus metrikleri. nil Metrics güvenle kullanılabilir.
type Metrics struct {
	calculations *prometheus.CounterVec
	missingLines *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodcost_calculations_total",
				Help: "Cost calculations by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		missingLines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodcost_unpriced_lines_total",
				Help: "Lines reported without a usable price",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodcost_calculation_duration_seconds",
				Help:    "Time spent resolving a cost calculation",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(m.calculations, m.missingLines, m.duration)
	return m
}

func outcome(err error, missing int) string {
	var cycle *CircularReferenceError
	var depth *DepthExceededError
	switch {
	case err == nil && missing > 0:
		return "incomplete"
	case err == nil:
		return "ok"
	case errors.As(err, &cycle):
		return "circular_reference"
	case errors.As(err, &depth):
		return "depth_exceeded"
	case errors.Is(err, ErrMissingOutletContext):
		return "missing_outlet"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (m *Metrics) observe(kind string, start time.Time, err error, missing int) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(kind, outcome(err, missing)).Inc()
	if missing > 0 {
		m.missingLines.WithLabelValues(kind).Add(float64(missing))
	}
	m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
