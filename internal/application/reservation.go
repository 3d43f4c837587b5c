package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

var activeStatuses = []domain.ReservationStatus{domain.ReservationPending, domain.ReservationConfirmed}

// ReservationService enforces the reservation state machine. Every state
// change holds the per-event lock from the first read to the write, so the
// uniqueness and capacity checks cannot interleave with a concurrent change
// on the same event.
type ReservationService struct {
	reservationRepo output.ReservationRepository
	eventRepo       output.EventRepository
	oracle          *CapacityOracle
	locker          output.Locker
	opts            options
}

func NewReservationService(
	reservationRepo output.ReservationRepository,
	eventRepo output.EventRepository,
	locker output.Locker,
	opts ...Option,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		eventRepo:       eventRepo,
		oracle:          NewCapacityOracle(reservationRepo),
		locker:          locker,
		opts:            buildOptions(opts),
	}
}

// CreateReservation files a PENDING reservation. Checks run in order: the
// event exists, it is PUBLISHED, the user has no active reservation for it
// and the confirmed count is below capacity. Pending reservations are not
// counted against capacity.
func (s *ReservationService) CreateReservation(ctx context.Context, eventID, userID string) (_ *entities.Reservation, err error) {
	defer func() { s.opts.metrics.ObserveReservation("create", outcome(err)) }()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidReservation)
	}
	var (
		created *entities.Reservation
		event   *entities.Event
	)
	err = withLock(ctx, s.locker, eventLockKey(eventID), func() error {
		var err error
		event, err = s.eventRepo.FindByID(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.IsReservable() {
			return domain.ErrEventNotReservable
		}
		active, err := s.reservationRepo.Count(ctx, entities.ReservationFilter{
			EventID:  event.ID,
			UserID:   userID,
			Statuses: activeStatuses,
		})
		if err != nil {
			return fmt.Errorf("count active reservations: %w", err)
		}
		if active > 0 {
			return domain.ErrActiveReservationExists
		}
		room, err := s.oracle.HasRoom(ctx, event)
		if err != nil {
			return err
		}
		if !room {
			return domain.ErrEventFull
		}
		now := s.opts.now().UTC()
		r := &entities.Reservation{
			ID:        s.opts.newID(),
			EventID:   event.ID,
			UserID:    userID,
			Status:    domain.ReservationPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.reservationRepo.Create(ctx, r); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("reservation_id", created.ID).Str("event_id", eventID).Str("user_id", userID).Msg("reservation created")
	s.opts.notifier.ReservationChanged(ctx, *event, *created)
	return created, nil
}

// ConfirmReservation moves PENDING to CONFIRMED if a seat is still free.
// This is where capacity is actually enforced.
func (s *ReservationService) ConfirmReservation(ctx context.Context, id string) (*entities.Reservation, error) {
	return s.transition(ctx, "confirm", id, domain.ReservationConfirmed,
		func(r *entities.Reservation, event *entities.Event) error {
			if err := domain.CheckConfirm(r.Status); err != nil {
				return err
			}
			room, err := s.oracle.HasRoom(ctx, event)
			if err != nil {
				return err
			}
			if !room {
				return domain.ErrCapacityReached
			}
			return nil
		},
		func(ctx context.Context, r *entities.Reservation, event *entities.Event) error {
			// The store re-checks the seat count atomically.
			return s.reservationRepo.Confirm(ctx, r, event.Capacity)
		})
}

func (s *ReservationService) RefuseReservation(ctx context.Context, id string) (*entities.Reservation, error) {
	return s.transition(ctx, "refuse", id, domain.ReservationRefused,
		func(r *entities.Reservation, _ *entities.Event) error {
			return domain.CheckRefuse(r.Status)
		}, s.update)
}

// CancelReservation cancels a PENDING or CONFIRMED reservation. A non-empty
// ownerID must match the reservation's user; an empty one is a privileged
// caller. Canceling a confirmed reservation frees its seat.
func (s *ReservationService) CancelReservation(ctx context.Context, id, ownerID string) (*entities.Reservation, error) {
	return s.transition(ctx, "cancel", id, domain.ReservationCanceled,
		func(r *entities.Reservation, _ *entities.Event) error {
			if ownerID != "" && !r.OwnedBy(ownerID) {
				return domain.ErrReservationNotOwned
			}
			return domain.CheckCancel(r.Status)
		}, s.update)
}

func (s *ReservationService) update(ctx context.Context, r *entities.Reservation, _ *entities.Event) error {
	return s.reservationRepo.Update(ctx, r)
}

// transition re-reads the reservation under its event's lock, runs check
// and stores the target status with write.
func (s *ReservationService) transition(
	ctx context.Context,
	op, id string,
	target domain.ReservationStatus,
	check func(r *entities.Reservation, event *entities.Event) error,
	write func(ctx context.Context, r *entities.Reservation, event *entities.Event) error,
) (_ *entities.Reservation, err error) {
	defer func() { s.opts.metrics.ObserveReservation(op, outcome(err)) }()

	current, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var (
		updated *entities.Reservation
		event   *entities.Event
	)
	err = withLock(ctx, s.locker, eventLockKey(current.EventID), func() error {
		r, err := s.reservationRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		event, err = s.eventRepo.FindByID(ctx, r.EventID)
		if err != nil {
			return err
		}
		if err := check(r, event); err != nil {
			return err
		}
		r.Status = target
		r.UpdatedAt = s.opts.now().UTC()
		if err := write(ctx, r, event); err != nil {
			return fmt.Errorf("%s reservation: %w", op, err)
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("reservation_id", id).Str("event_id", updated.EventID).Str("status", string(target)).Msgf("reservation %s", op)
	s.opts.notifier.ReservationChanged(ctx, *event, *updated)
	return updated, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*entities.Reservation, error) {
	return s.reservationRepo.FindByID(ctx, id)
}

func (s *ReservationService) ListReservations(ctx context.Context, filter entities.ReservationFilter) ([]entities.Reservation, error) {
	return s.reservationRepo.Find(ctx, filter)
}

func (s *ReservationService) ListByUser(ctx context.Context, userID string) ([]entities.Reservation, error) {
	return s.reservationRepo.Find(ctx, entities.ReservationFilter{UserID: userID})
}

func (s *ReservationService) ListByEvent(ctx context.Context, eventID string) ([]entities.Reservation, error) {
	return s.reservationRepo.Find(ctx, entities.ReservationFilter{EventID: eventID})
}

func (s *ReservationService) ListAll(ctx context.Context) ([]entities.Reservation, error) {
	return s.reservationRepo.Find(ctx, entities.ReservationFilter{})
}

// ResolveEvents returns views of reservations with their event references
// resolved. A reservation whose event no longer exists keeps an unresolved
// reference.
func (s *ReservationService) ResolveEvents(ctx context.Context, reservations []entities.Reservation) ([]entities.ReservationView, error) {
	cache := make(map[string]*entities.Event)
	views := make([]entities.ReservationView, len(reservations))
	for i, r := range reservations {
		views[i] = r.View()
		event, seen := cache[r.EventID]
		if !seen {
			e, err := s.eventRepo.FindByID(ctx, r.EventID)
			switch {
			case err == nil:
				event = e
			case errors.Is(err, domain.ErrEventNotFound):
			default:
				return nil, fmt.Errorf("resolve event %s: %w", r.EventID, err)
			}
			cache[r.EventID] = event
		}
		if event != nil {
			views[i].Event = entities.Resolved(event.ID, *event)
		}
	}
	return views, nil
}
