package input

import (
	"context"

	"evenza/internal/domain/entities"
)

type AdminUseCase interface {
	Stats(ctx context.Context) (*entities.AdminStats, error)
}

type TicketUseCase interface {
	// IssueTicket renders the ticket of a confirmed reservation for requester.
	IssueTicket(ctx context.Context, reservationID string, requester entities.User, locale string) ([]byte, error)
	ContentType() string
}
