package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

type options struct {
	now      func() time.Time
	newID    func() string
	notifier output.ReservationNotifier
	metrics  output.Metrics
}

// Option customizes a service at construction.
type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func WithNotifier(n output.ReservationNotifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

func WithMetrics(m output.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:      time.Now,
		newID:    uuid.NewString,
		notifier: noopNotifier{},
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type noopNotifier struct{}

func (noopNotifier) ReservationChanged(context.Context, entities.Event, entities.Reservation) {}

type noopMetrics struct{}

func (noopMetrics) ObserveReservation(string, string) {}
func (noopMetrics) ObserveEvent(string, string)       {}

// outcome labels an operation result for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := domain.Code(err); code != "" {
		return code
	}
	return "error"
}

func eventLockKey(eventID string) string {
	return "event:" + eventID
}

// withLock runs fn while holding key.
func withLock(ctx context.Context, l output.Locker, key string, fn func() error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	defer unlock()
	return fn()
}
