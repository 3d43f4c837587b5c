// Package metrics exports lifecycle counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"evenza/internal/ports/output"
)

var _ output.Metrics = (*Prometheus)(nil)

type Prometheus struct {
	reservationOps *prometheus.CounterVec
	eventOps       *prometheus.CounterVec
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		reservationOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evenza",
				Name:      "reservation_operations_total",
				Help:      "Reservation lifecycle operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		eventOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "evenza",
				Name:      "event_operations_total",
				Help:      "Event lifecycle operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
}

func (p *Prometheus) ObserveReservation(op, outcome string) {
	p.reservationOps.WithLabelValues(op, outcome).Inc()
}

func (p *Prometheus) ObserveEvent(op, outcome string) {
	p.eventOps.WithLabelValues(op, outcome).Inc()
}
