package output

import (
	"context"

	"evenza/internal/domain/entities"
)

// ReservationNotifier is told about every successful reservation change.
// Implementations handle their own delivery failures.
type ReservationNotifier interface {
	ReservationChanged(ctx context.Context, event entities.Event, reservation entities.Reservation)
}

// Metrics records lifecycle operations. outcome is "ok" or an error code.
type Metrics interface {
	ObserveReservation(op, outcome string)
	ObserveEvent(op, outcome string)
}
