package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	in := eventInput(30)
	in.Title = "  Concert  "
	ev, err := e.events.CreateEvent(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Concert", ev.Title)
	assert.Equal(t, domain.EventDraft, ev.Status)
	assert.Equal(t, 30, ev.Capacity)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, ev.CreatedAt, ev.UpdatedAt)

	in = eventInput(30)
	in.Status = domain.EventPublished
	ev, err = e.events.CreateEvent(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPublished, ev.Status)
}

func TestCreateEvent_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	tests := []struct {
		name  string
		patch func(*entities.CreateEventInput)
	}{
		{"zero capacity", func(in *entities.CreateEventInput) { in.Capacity = 0 }},
		{"negative capacity", func(in *entities.CreateEventInput) { in.Capacity = -3 }},
		{"capacity above column range", func(in *entities.CreateEventInput) { in.Capacity = entities.MaxCapacity + 1 }},
		{"capacity wrapping to one as int32", func(in *entities.CreateEventInput) { in.Capacity = 1<<32 + 1 }},
		{"blank title", func(in *entities.CreateEventInput) { in.Title = "   " }},
		{"empty description", func(in *entities.CreateEventInput) { in.Description = "" }},
		{"empty location", func(in *entities.CreateEventInput) { in.Location = "" }},
		{"missing date", func(in *entities.CreateEventInput) { in.Date = time.Time{} }},
		{"unknown status", func(in *entities.CreateEventInput) { in.Status = "ARCHIVED" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := eventInput(10)
			tt.patch(&in)
			_, err := e.events.CreateEvent(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidEvent)
			assert.True(t, domain.IsValidation(err))
		})
	}

	all, err := e.events.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPublishAndCancelEvent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	ev, err := e.events.CreateEvent(ctx, eventInput(10))
	require.NoError(t, err)

	published, err := e.events.PublishEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPublished, published.Status)

	again, err := e.events.PublishEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, published.UpdatedAt, again.UpdatedAt, "publishing twice is a no-op")

	canceled, err := e.events.CancelEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventCanceled, canceled.Status)

	_, err = e.events.CancelEvent(ctx, ev.ID)
	assert.ErrorIs(t, err, domain.ErrEventAlreadyCanceled)
	_, err = e.events.PublishEvent(ctx, ev.ID)
	assert.ErrorIs(t, err, domain.ErrEventCanceledCannotPublish)
	assert.True(t, domain.IsInvalidState(err))

	_, err = e.reservations.CreateReservation(ctx, ev.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrEventNotReservable)

	_, err = e.events.PublishEvent(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCancelDraftEvent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ev, err := e.events.CreateEvent(ctx, eventInput(10))
	require.NoError(t, err)

	canceled, err := e.events.CancelEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventCanceled, canceled.Status)
}

func TestCreateEvent_MaxCapacity(t *testing.T) {
	ev, err := newEnv(t).events.CreateEvent(context.Background(), eventInput(entities.MaxCapacity))
	require.NoError(t, err)
	assert.Equal(t, entities.MaxCapacity, ev.Capacity)
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ev := e.publishedEvent(t, 3)
	e.reservation(t, ev.ID, "u1", domain.ReservationConfirmed)
	e.reservation(t, ev.ID, "u2", domain.ReservationConfirmed)

	title := "Concert (date changed)"
	date := ev.Date.Add(48 * time.Hour)
	updated, err := e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Title: &title, Date: &date})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.Date.Equal(date))
	assert.Equal(t, ev.Description, updated.Description)
	assert.Equal(t, domain.EventPublished, updated.Status)

	two := 2
	_, err = e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Capacity: &two})
	require.NoError(t, err, "capacity may drop to the confirmed count")

	one := 1
	_, err = e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Capacity: &one})
	assert.ErrorIs(t, err, domain.ErrCannotReduceCapacity)
	assert.True(t, domain.IsConflict(err))

	zero := 0
	_, err = e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Capacity: &zero})
	assert.True(t, domain.IsValidation(err))

	huge := entities.MaxCapacity + 1
	_, err = e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Capacity: &huge})
	assert.True(t, domain.IsValidation(err))

	blank := " "
	_, err = e.events.UpdateEvent(ctx, ev.ID, entities.UpdateEventInput{Location: &blank})
	assert.True(t, domain.IsValidation(err))

	got, err := e.events.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Capacity)
}

func TestEventQueries(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	draft, err := e.events.CreateEvent(ctx, eventInput(4))
	require.NoError(t, err)
	later := eventInput(4)
	later.Date = later.Date.AddDate(0, 1, 0)
	pubLater, err := e.events.CreateEvent(ctx, later)
	require.NoError(t, err)
	_, err = e.events.PublishEvent(ctx, pubLater.ID)
	require.NoError(t, err)
	pubSooner := e.publishedEvent(t, 4)

	published, err := e.events.ListPublishedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, pubSooner.ID, published[0].ID, "ordered by date")
	assert.Equal(t, pubLater.ID, published[1].ID)

	drafts, err := e.events.ListEvents(ctx, domain.EventDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	_, err = e.events.ListEvents(ctx, "ARCHIVED")
	assert.True(t, domain.IsValidation(err))

	_, err = e.events.GetPublishedEvent(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = e.events.PublishedAvailability(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	a, err := e.events.Availability(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, a.AvailableSpots)
	assert.Zero(t, a.ConfirmedCount)

	assert.False(t, IsReservable(draft))
	assert.True(t, IsReservable(pubSooner))
}
