package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus_CountsByOperationAndOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveReservation("confirm", "ok")
	m.ObserveReservation("confirm", "ok")
	m.ObserveReservation("confirm", "capacity_reached")
	m.ObserveEvent("publish", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationOps.WithLabelValues("confirm", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservationOps.WithLabelValues("confirm", "capacity_reached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventOps.WithLabelValues("publish", "ok")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.reservationOps)+testutil.CollectAndCount(m.eventOps))
}
