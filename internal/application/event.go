package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

type EventService struct {
	eventRepo output.EventRepository
	oracle    *CapacityOracle
	locker    output.Locker
	validate  *validator.Validate
	opts      options
}

func NewEventService(
	eventRepo output.EventRepository,
	reservationRepo output.ReservationRepository,
	locker output.Locker,
	opts ...Option,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		oracle:    NewCapacityOracle(reservationRepo),
		locker:    locker,
		validate:  newValidator(),
		opts:      buildOptions(opts),
	}
}

func (s *EventService) CreateEvent(ctx context.Context, in entities.CreateEventInput) (_ *entities.Event, err error) {
	defer func() { s.opts.metrics.ObserveEvent("create", outcome(err)) }()

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(domain.ErrInvalidEvent, err)
	}
	status := in.Status
	if status == "" {
		status = domain.EventDraft
	}
	now := s.opts.now().UTC()
	event := &entities.Event{
		ID:          s.opts.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Date:        in.Date.UTC(),
		Capacity:    in.Capacity,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	log.Info().Str("event_id", event.ID).Str("status", string(event.Status)).Int("capacity", event.Capacity).Msg("event created")
	return event, nil
}

// UpdateEvent applies a partial update. Capacity may not drop below the
// number of confirmed reservations.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in entities.UpdateEventInput) (_ *entities.Event, err error) {
	defer func() { s.opts.metrics.ObserveEvent("update", outcome(err)) }()

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(domain.ErrInvalidEvent, err)
	}
	var updated *entities.Event
	err = withLock(ctx, s.locker, eventLockKey(id), func() error {
		event, err := s.eventRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Capacity != nil && *in.Capacity < event.Capacity {
			confirmed, err := s.oracle.ConfirmedCount(ctx, event.ID)
			if err != nil {
				return err
			}
			if *in.Capacity < confirmed {
				return fmt.Errorf("%w: %d confirmed", domain.ErrCannotReduceCapacity, confirmed)
			}
		}
		applyEventUpdate(event, in)
		event.UpdatedAt = s.opts.now().UTC()
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyEventUpdate(e *entities.Event, in entities.UpdateEventInput) {
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	if in.Date != nil {
		e.Date = in.Date.UTC()
	}
	if in.Capacity != nil {
		e.Capacity = *in.Capacity
	}
}

// PublishEvent moves DRAFT to PUBLISHED. Publishing a published event is a no-op.
func (s *EventService) PublishEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.setStatus(ctx, "publish", id, domain.EventPublished, domain.CheckPublish)
}

// CancelEvent moves DRAFT or PUBLISHED to CANCELED.
func (s *EventService) CancelEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.setStatus(ctx, "cancel", id, domain.EventCanceled, domain.CheckCancelEvent)
}

func (s *EventService) setStatus(
	ctx context.Context,
	op, id string,
	target domain.EventStatus,
	check func(domain.EventStatus) error,
) (_ *entities.Event, err error) {
	defer func() { s.opts.metrics.ObserveEvent(op, outcome(err)) }()

	var result *entities.Event
	err = withLock(ctx, s.locker, eventLockKey(id), func() error {
		event, err := s.eventRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := check(event.Status); err != nil {
			return err
		}
		if event.Status == target {
			result = event
			return nil
		}
		event.Status = target
		event.UpdatedAt = s.opts.now().UTC()
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("%s event: %w", op, err)
		}
		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("event_id", id).Str("status", string(target)).Msgf("event %s", op)
	return result, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, id)
}

// GetPublishedEvent hides events that are not PUBLISHED behind NotFound.
func (s *EventService) GetPublishedEvent(ctx context.Context, id string) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventPublished {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, status domain.EventStatus) ([]entities.Event, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidEvent, status)
	}
	return s.eventRepo.FindByStatus(ctx, status)
}

func (s *EventService) ListPublishedEvents(ctx context.Context) ([]entities.Event, error) {
	return s.eventRepo.FindByStatus(ctx, domain.EventPublished)
}

func (s *EventService) Availability(ctx context.Context, id string) (*entities.EventAvailability, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.availability(ctx, event)
}

// PublishedAvailability is Availability restricted to PUBLISHED events.
func (s *EventService) PublishedAvailability(ctx context.Context, id string) (*entities.EventAvailability, error) {
	event, err := s.GetPublishedEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.availability(ctx, event)
}

func (s *EventService) availability(ctx context.Context, event *entities.Event) (*entities.EventAvailability, error) {
	confirmed, err := s.oracle.ConfirmedCount(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return &entities.EventAvailability{
		Event:          *event,
		ConfirmedCount: confirmed,
		AvailableSpots: max(0, event.Capacity-confirmed),
	}, nil
}

// IsReservable reports whether event accepts new reservations.
func IsReservable(event *entities.Event) bool {
	return event.IsReservable()
}
