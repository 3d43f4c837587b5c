package application

import (
	"context"
	"fmt"
	"math"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

// AdminService aggregates read-side statistics. It takes no locks: the
// snapshot may mix states from concurrent writes.
type AdminService struct {
	eventRepo       output.EventRepository
	reservationRepo output.ReservationRepository
	oracle          *CapacityOracle
	opts            options
}

func NewAdminService(
	eventRepo output.EventRepository,
	reservationRepo output.ReservationRepository,
	opts ...Option,
) *AdminService {
	return &AdminService{
		eventRepo:       eventRepo,
		reservationRepo: reservationRepo,
		oracle:          NewCapacityOracle(reservationRepo),
		opts:            buildOptions(opts),
	}
}

func (s *AdminService) Stats(ctx context.Context) (*entities.AdminStats, error) {
	now := s.opts.now()

	events, err := s.eventRepo.FindByStatus(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	reservations, err := s.reservationRepo.Find(ctx, entities.ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	stats := &entities.AdminStats{
		TotalEvents:          len(events),
		TotalReservations:    len(reservations),
		ReservationsByStatus: make(map[domain.ReservationStatus]int, len(domain.ReservationStatuses)),
	}
	for _, st := range domain.ReservationStatuses {
		stats.ReservationsByStatus[st] = 0
	}
	for _, r := range reservations {
		stats.ReservationsByStatus[r.Status]++
	}
	stats.ConfirmedReservations = stats.ReservationsByStatus[domain.ReservationConfirmed]
	stats.PendingReservations = stats.ReservationsByStatus[domain.ReservationPending]
	stats.RefusedReservations = stats.ReservationsByStatus[domain.ReservationRefused]
	stats.CanceledReservations = stats.ReservationsByStatus[domain.ReservationCanceled]

	var (
		totalFill float64
		filled    int
	)
	for i := range events {
		e := &events[i]
		switch e.Status {
		case domain.EventDraft:
			stats.DraftEvents++
		case domain.EventCanceled:
			stats.CanceledEvents++
		case domain.EventPublished:
			stats.PublishedEvents++
			if e.IsUpcoming(now) {
				stats.UpcomingEvents++
			}
			if e.Capacity <= 0 {
				continue
			}
			confirmed, err := s.oracle.ConfirmedCount(ctx, e.ID)
			if err != nil {
				return nil, err
			}
			totalFill += FillRate(confirmed, e.Capacity)
			filled++
		}
	}
	if filled > 0 {
		stats.AverageFillRate = roundOneDecimal(totalFill / float64(filled))
	}
	return stats, nil
}

// FillRate is confirmed/capacity as a percentage.
func FillRate(confirmed, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(confirmed) / float64(capacity) * 100
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
