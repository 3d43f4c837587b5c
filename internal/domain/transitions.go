package domain

// Transition rules for events and reservations. Each check returns nil when
// the move is allowed and the InvalidState error describing why it is not.

// CheckPublish allows DRAFT -> PUBLISHED and the idempotent PUBLISHED -> PUBLISHED.
func CheckPublish(s EventStatus) error {
	if s == EventCanceled {
		return ErrEventCanceledCannotPublish
	}
	return nil
}

// CheckCancelEvent allows any non-terminal status to move to CANCELED.
func CheckCancelEvent(s EventStatus) error {
	if s == EventCanceled {
		return ErrEventAlreadyCanceled
	}
	return nil
}

// Reservable reports whether an event in status s accepts new reservations.
func Reservable(s EventStatus) bool {
	return s == EventPublished
}

func CheckConfirm(s ReservationStatus) error {
	switch s {
	case ReservationPending:
		return nil
	case ReservationConfirmed:
		return ErrReservationAlreadyConfirmed
	default:
		return ErrReservationClosed
	}
}

func CheckRefuse(s ReservationStatus) error {
	if s != ReservationPending {
		return ErrReservationNotPending
	}
	return nil
}

// CheckCancel allows PENDING and CONFIRMED to move to CANCELED.
func CheckCancel(s ReservationStatus) error {
	switch s {
	case ReservationPending, ReservationConfirmed:
		return nil
	case ReservationCanceled:
		return ErrReservationAlreadyCanceled
	default:
		return ErrReservationRefused
	}
}
