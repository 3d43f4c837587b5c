package application

import (
	"context"
	"fmt"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

// TicketService hands out tickets. A ticket implies a confirmed
// reservation: the renderer is never called for any other status.
type TicketService struct {
	reservationRepo output.ReservationRepository
	eventRepo       output.EventRepository
	renderer        output.TicketRenderer
}

func NewTicketService(
	reservationRepo output.ReservationRepository,
	eventRepo output.EventRepository,
	renderer output.TicketRenderer,
) *TicketService {
	return &TicketService{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		renderer:        renderer,
	}
}

func (s *TicketService) IssueTicket(ctx context.Context, reservationID string, requester entities.User, locale string) ([]byte, error) {
	r, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && !r.OwnedBy(requester.ID) {
		return nil, domain.ErrReservationNotOwned
	}
	if r.Status != domain.ReservationConfirmed {
		return nil, domain.ErrTicketUnavailable
	}
	event, err := s.eventRepo.FindByID(ctx, r.EventID)
	if err != nil {
		return nil, err
	}
	participant := entities.User{ID: r.UserID}
	if r.OwnedBy(requester.ID) {
		participant = requester
	}
	doc, err := s.renderer.Render(ctx, output.Ticket{
		Reservation: *r,
		Event:       *event,
		Participant: participant,
		Locale:      locale,
	})
	if err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return doc, nil
}

func (s *TicketService) ContentType() string {
	return s.renderer.ContentType()
}
