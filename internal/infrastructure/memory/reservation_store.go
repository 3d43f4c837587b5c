package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

var _ output.ReservationRepository = (*ReservationStore)(nil)

// ReservationStore rejects a second active reservation for the same
// (event, user) pair, like the unique index of the PostgreSQL schema.
type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[string]entities.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{reservations: make(map[string]entities.Reservation)}
}

func (s *ReservationStore) Create(_ context.Context, r *entities.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		return fmt.Errorf("create reservation: empty id")
	}
	if _, ok := s.reservations[r.ID]; ok {
		return fmt.Errorf("create reservation: duplicate id %s", r.ID)
	}
	if r.Status.Active() && s.hasActiveLocked(r.EventID, r.UserID, r.ID) {
		return domain.ErrActiveReservationExists
	}
	s.reservations[r.ID] = *r
	return nil
}

func (s *ReservationStore) hasActiveLocked(eventID, userID, exceptID string) bool {
	for id, r := range s.reservations {
		if id != exceptID && r.EventID == eventID && r.UserID == userID && r.Status.Active() {
			return true
		}
	}
	return false
}

func (s *ReservationStore) FindByID(_ context.Context, id string) (*entities.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &r, nil
}

func (s *ReservationStore) Find(_ context.Context, filter entities.ReservationFilter) ([]entities.Reservation, error) {
	s.mu.RLock()
	out := make([]entities.Reservation, 0)
	for _, r := range s.reservations {
		if filter.Matches(&r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b entities.Reservation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *ReservationStore) Count(_ context.Context, filter entities.ReservationFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.reservations {
		if filter.Matches(&r) {
			n++
		}
	}
	return n, nil
}

func (s *ReservationStore) Update(_ context.Context, r *entities.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[r.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	if r.Status.Active() && s.hasActiveLocked(r.EventID, r.UserID, r.ID) {
		return domain.ErrActiveReservationExists
	}
	s.reservations[r.ID] = *r
	return nil
}

func (s *ReservationStore) Confirm(_ context.Context, r *entities.Reservation, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.reservations[r.ID]
	if !ok {
		return domain.ErrReservationNotFound
	}
	if err := domain.CheckConfirm(stored.Status); err != nil {
		return err
	}
	confirmed := 0
	for _, other := range s.reservations {
		if other.EventID == stored.EventID && other.Status == domain.ReservationConfirmed {
			confirmed++
		}
	}
	if confirmed >= capacity {
		return domain.ErrCapacityReached
	}
	stored.Status = domain.ReservationConfirmed
	stored.UpdatedAt = r.UpdatedAt
	s.reservations[r.ID] = stored
	return nil
}
