package input

import (
	"context"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, in entities.CreateEventInput) (*entities.Event, error)
	UpdateEvent(ctx context.Context, id string, in entities.UpdateEventInput) (*entities.Event, error)
	PublishEvent(ctx context.Context, id string) (*entities.Event, error)
	CancelEvent(ctx context.Context, id string) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	GetPublishedEvent(ctx context.Context, id string) (*entities.Event, error)
	ListEvents(ctx context.Context, status domain.EventStatus) ([]entities.Event, error)
	ListPublishedEvents(ctx context.Context) ([]entities.Event, error)
	Availability(ctx context.Context, id string) (*entities.EventAvailability, error)
	PublishedAvailability(ctx context.Context, id string) (*entities.EventAvailability, error)
}
