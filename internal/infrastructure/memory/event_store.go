// Package memory holds process-local stores used in development mode and
// in tests. Values are copied in and out so callers never share state with
// the store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

var _ output.EventRepository = (*EventStore)(nil)

type EventStore struct {
	mu     sync.RWMutex
	events map[string]entities.Event
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]entities.Event)}
}

func (s *EventStore) Create(_ context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == "" {
		return fmt.Errorf("create event: empty id")
	}
	if _, ok := s.events[event.ID]; ok {
		return fmt.Errorf("create event: duplicate id %s", event.ID)
	}
	s.events[event.ID] = *event
	return nil
}

func (s *EventStore) FindByID(_ context.Context, id string) (*entities.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (s *EventStore) FindByStatus(_ context.Context, status domain.EventStatus) ([]entities.Event, error) {
	s.mu.RLock()
	out := make([]entities.Event, 0, len(s.events))
	for _, e := range s.events {
		if status == "" || e.Status == status {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b entities.Event) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *EventStore) Update(_ context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	s.events[event.ID] = *event
	return nil
}
