package output

import (
	"context"

	"evenza/internal/domain/entities"
)

// Ticket is everything printed on a reservation ticket.
type Ticket struct {
	Reservation entities.Reservation
	Event       entities.Event
	Participant entities.User
	Locale      string
}

// TicketRenderer turns a ticket into an opaque document.
type TicketRenderer interface {
	Render(ctx context.Context, ticket Ticket) ([]byte, error)
	ContentType() string
}
