package output

import (
	"context"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

// EventRepository stores events. FindByID returns domain.ErrEventNotFound
// when no event has the given id.
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	// FindByStatus returns events ordered by date ascending; an empty status
	// returns every event.
	FindByStatus(ctx context.Context, status domain.EventStatus) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
}
