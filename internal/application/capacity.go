package application

import (
	"context"
	"fmt"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

// CapacityOracle derives seat usage from live reservation state. It keeps no
// counter of its own, so a canceled confirmation frees its seat immediately.
type CapacityOracle struct {
	reservations output.ReservationRepository
}

func NewCapacityOracle(reservationRepo output.ReservationRepository) *CapacityOracle {
	return &CapacityOracle{reservations: reservationRepo}
}

// ConfirmedCount returns the number of CONFIRMED reservations for eventID.
func (o *CapacityOracle) ConfirmedCount(ctx context.Context, eventID string) (int, error) {
	n, err := o.reservations.Count(ctx, entities.ReservationFilter{
		EventID:  eventID,
		Statuses: []domain.ReservationStatus{domain.ReservationConfirmed},
	})
	if err != nil {
		return 0, fmt.Errorf("count confirmed: %w", err)
	}
	return n, nil
}

// AvailableSpots is max(0, capacity - confirmed). A capacity below the
// confirmed count yields 0.
func (o *CapacityOracle) AvailableSpots(ctx context.Context, event *entities.Event) (int, error) {
	n, err := o.ConfirmedCount(ctx, event.ID)
	if err != nil {
		return 0, err
	}
	return max(0, event.Capacity-n), nil
}

// HasRoom reports whether one more reservation may be confirmed.
func (o *CapacityOracle) HasRoom(ctx context.Context, event *entities.Event) (bool, error) {
	n, err := o.ConfirmedCount(ctx, event.ID)
	if err != nil {
		return false, err
	}
	return n < event.Capacity, nil
}
