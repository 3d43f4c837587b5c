package domain

import "errors"

// Kind classifies a domain error for callers that translate it to a response.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidState:
		return "InvalidState"
	case KindConflict:
		return "Conflict"
	case KindValidation:
		return "ValidationError"
	default:
		return "Unknown"
	}
}

// Error is a domain error. Code is stable and used as the i18n message key.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Domain errors.
var (
	ErrEventNotFound       = newError(KindNotFound, "event_not_found", "event not found")
	ErrReservationNotFound = newError(KindNotFound, "reservation_not_found", "reservation not found")

	ErrEventNotReservable          = newError(KindInvalidState, "event_not_reservable", "event not published or canceled")
	ErrEventAlreadyCanceled        = newError(KindInvalidState, "event_already_canceled", "event already canceled")
	ErrEventCanceledCannotPublish  = newError(KindInvalidState, "event_canceled_cannot_publish", "canceled event cannot be published")
	ErrReservationAlreadyConfirmed = newError(KindInvalidState, "reservation_already_confirmed", "reservation already confirmed")
	ErrReservationClosed           = newError(KindInvalidState, "reservation_closed", "reservation canceled or refused, cannot confirm")
	ErrReservationNotPending       = newError(KindInvalidState, "reservation_not_pending", "reservation is not pending")
	ErrReservationAlreadyCanceled  = newError(KindInvalidState, "reservation_already_canceled", "reservation already canceled")
	ErrReservationRefused          = newError(KindInvalidState, "reservation_refused", "refused reservation cannot be canceled")
	ErrReservationNotOwned         = newError(KindInvalidState, "reservation_not_owned", "not your reservation")
	ErrTicketUnavailable           = newError(KindInvalidState, "ticket_unavailable", "ticket is only available for confirmed reservations")

	ErrActiveReservationExists = newError(KindConflict, "reservation_already_active", "active reservation already exists")
	ErrEventFull               = newError(KindConflict, "event_full", "event full")
	ErrCapacityReached         = newError(KindConflict, "capacity_reached", "capacity reached, cannot confirm")
	ErrCannotReduceCapacity    = newError(KindConflict, "cannot_reduce_capacity", "capacity cannot go below the confirmed count")

	ErrInvalidEvent       = newError(KindValidation, "invalid_event", "invalid event")
	ErrInvalidReservation = newError(KindValidation, "invalid_reservation", "invalid reservation")
)

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Code returns the code of the first domain error in err's chain, or "".
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
