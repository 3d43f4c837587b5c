package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

type stubRenderer struct {
	calls []output.Ticket
}

func (s *stubRenderer) Render(_ context.Context, t output.Ticket) ([]byte, error) {
	s.calls = append(s.calls, t)
	return []byte("ticket:" + t.Reservation.ID), nil
}

func (s *stubRenderer) ContentType() string { return "text/plain" }

func TestIssueTicket(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	renderer := &stubRenderer{}
	tickets := NewTicketService(e.resRepo, e.eventRepo, renderer)

	ev := e.publishedEvent(t, 5)
	confirmed := e.reservation(t, ev.ID, "alice", domain.ReservationConfirmed)
	pending := e.reservation(t, ev.ID, "bob", domain.ReservationPending)

	alice := entities.User{ID: "alice", Email: "alice@example.com", Role: entities.RoleParticipant}
	bob := entities.User{ID: "bob", Role: entities.RoleParticipant}
	admin := entities.User{ID: "root", Role: entities.RoleAdmin}

	doc, err := tickets.IssueTicket(ctx, confirmed.ID, alice, "fr")
	require.NoError(t, err)
	assert.Equal(t, "ticket:"+confirmed.ID, string(doc))
	require.Len(t, renderer.calls, 1)
	assert.Equal(t, "alice@example.com", renderer.calls[0].Participant.DisplayName())
	assert.Equal(t, ev.Title, renderer.calls[0].Event.Title)
	assert.Equal(t, "fr", renderer.calls[0].Locale)

	_, err = tickets.IssueTicket(ctx, confirmed.ID, bob, "fr")
	assert.ErrorIs(t, err, domain.ErrReservationNotOwned)

	_, err = tickets.IssueTicket(ctx, pending.ID, bob, "fr")
	assert.ErrorIs(t, err, domain.ErrTicketUnavailable)
	assert.True(t, domain.IsInvalidState(err))

	_, err = tickets.IssueTicket(ctx, confirmed.ID, admin, "en")
	require.NoError(t, err)
	assert.Equal(t, "alice", renderer.calls[1].Participant.ID)

	_, err = tickets.IssueTicket(ctx, "missing", admin, "en")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	assert.Len(t, renderer.calls, 2, "renderer only runs for confirmed reservations")
	assert.Equal(t, "text/plain", tickets.ContentType())
}
