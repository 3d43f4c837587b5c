package application

import "evenza/internal/ports/input"

var (
	_ input.EventUseCase       = (*EventService)(nil)
	_ input.ReservationUseCase = (*ReservationService)(nil)
	_ input.AdminUseCase       = (*AdminService)(nil)
	_ input.TicketUseCase      = (*TicketService)(nil)
)
