package entities

import "evenza/internal/domain"

// AdminStats is a read-side snapshot over events and reservations.
type AdminStats struct {
	UpcomingEvents        int                              `json:"upcomingEvents"`
	TotalEvents           int                              `json:"totalEvents"`
	PublishedEvents       int                              `json:"publishedEvents"`
	DraftEvents           int                              `json:"draftEvents"`
	CanceledEvents        int                              `json:"canceledEvents"`
	TotalReservations     int                              `json:"totalReservations"`
	ConfirmedReservations int                              `json:"confirmedReservations"`
	PendingReservations   int                              `json:"pendingReservations"`
	RefusedReservations   int                              `json:"refusedReservations"`
	CanceledReservations  int                              `json:"canceledReservations"`
	AverageFillRate       float64                          `json:"averageFillRate"`
	ReservationsByStatus  map[domain.ReservationStatus]int `json:"reservationsByStatus"`
}
