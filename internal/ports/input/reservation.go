package input

import (
	"context"

	"evenza/internal/domain/entities"
)

type ReservationUseCase interface {
	CreateReservation(ctx context.Context, eventID, userID string) (*entities.Reservation, error)
	ConfirmReservation(ctx context.Context, id string) (*entities.Reservation, error)
	RefuseReservation(ctx context.Context, id string) (*entities.Reservation, error)
	// CancelReservation checks ownership when ownerID is not empty.
	CancelReservation(ctx context.Context, id, ownerID string) (*entities.Reservation, error)
	GetReservation(ctx context.Context, id string) (*entities.Reservation, error)
	ListReservations(ctx context.Context, filter entities.ReservationFilter) ([]entities.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Reservation, error)
	ListByEvent(ctx context.Context, eventID string) ([]entities.Reservation, error)
	ListAll(ctx context.Context) ([]entities.Reservation, error)
	ResolveEvents(ctx context.Context, reservations []entities.Reservation) ([]entities.ReservationView, error)
}
