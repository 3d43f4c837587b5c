package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/infrastructure/lock"
	"evenza/internal/infrastructure/memory"
	"evenza/internal/ports/output"
)

// fakeClock advances one second per reading so creation order is stable.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []entities.Reservation
}

func (n *recordingNotifier) ReservationChanged(_ context.Context, _ entities.Event, r entities.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, r)
}

func (n *recordingNotifier) statuses() []domain.ReservationStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.ReservationStatus, len(n.changes))
	for i, r := range n.changes {
		out[i] = r.Status
	}
	return out
}

type recordingMetrics struct {
	mu   sync.Mutex
	seen []string
}

func (m *recordingMetrics) ObserveReservation(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, "reservation:"+op+":"+outcome)
}

func (m *recordingMetrics) ObserveEvent(op, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, "event:"+op+":"+outcome)
}

type env struct {
	events       *EventService
	reservations *ReservationService
	admin        *AdminService
	eventRepo    *memory.EventStore
	resRepo      *memory.ReservationStore
	clock        *fakeClock
	notifier     *recordingNotifier
	metrics      *recordingMetrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithLocker(t, lock.NewKeyedMutex())
}

// expiredLocker grants every caller at once, as a distributed lease does
// after its holder outlived the TTL.
type expiredLocker struct{}

func (expiredLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

func newEnvWithLocker(t *testing.T, locker output.Locker) *env {
	t.Helper()
	var seq atomic.Int64
	e := &env{
		eventRepo: memory.NewEventStore(),
		resRepo:   memory.NewReservationStore(),
		clock:     &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)},
		notifier:  &recordingNotifier{},
		metrics:   &recordingMetrics{},
	}
	opts := []Option{
		WithClock(e.clock.Now),
		WithIDGenerator(func() string { return fmt.Sprintf("id-%04d", seq.Add(1)) }),
		WithNotifier(e.notifier),
		WithMetrics(e.metrics),
	}
	e.events = NewEventService(e.eventRepo, e.resRepo, locker, opts...)
	e.reservations = NewReservationService(e.resRepo, e.eventRepo, locker, opts...)
	e.admin = NewAdminService(e.eventRepo, e.resRepo, opts...)
	return e
}

func eventInput(capacity int) entities.CreateEventInput {
	return entities.CreateEventInput{
		Title:       "Concert",
		Description: "Open air",
		Location:    "Bordeaux",
		Date:        time.Date(2026, 8, 20, 20, 0, 0, 0, time.UTC),
		Capacity:    capacity,
	}
}

func (e *env) publishedEvent(t *testing.T, capacity int) *entities.Event {
	t.Helper()
	ctx := context.Background()
	ev, err := e.events.CreateEvent(ctx, eventInput(capacity))
	require.NoError(t, err)
	ev, err = e.events.PublishEvent(ctx, ev.ID)
	require.NoError(t, err)
	return ev
}

func (e *env) reservation(t *testing.T, eventID, userID string, status domain.ReservationStatus) *entities.Reservation {
	t.Helper()
	ctx := context.Background()
	r, err := e.reservations.CreateReservation(ctx, eventID, userID)
	require.NoError(t, err)
	switch status {
	case domain.ReservationConfirmed:
		r, err = e.reservations.ConfirmReservation(ctx, r.ID)
	case domain.ReservationRefused:
		r, err = e.reservations.RefuseReservation(ctx, r.ID)
	case domain.ReservationCanceled:
		r, err = e.reservations.CancelReservation(ctx, r.ID, "")
	}
	require.NoError(t, err)
	return r
}
