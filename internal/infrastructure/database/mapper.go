package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
)

const pgUniqueViolation = "23505"

// eventRow mirrors a row of the events table.
type eventRow struct {
	ID          string
	Title       string
	Description string
	Location    string
	Date        pgtype.Timestamptz
	Capacity    int32
	Status      string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (r *eventRow) dest() []any {
	return []any{&r.ID, &r.Title, &r.Description, &r.Location, &r.Date, &r.Capacity, &r.Status, &r.CreatedAt, &r.UpdatedAt}
}

type reservationRow struct {
	ID        string
	EventID   string
	UserID    string
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (r *reservationRow) dest() []any {
	return []any{&r.ID, &r.EventID, &r.UserID, &r.Status, &r.CreatedAt, &r.UpdatedAt}
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func timeToTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func eventToDomain(r eventRow) entities.Event {
	return entities.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Date:        pgtypeTimestamptzToTime(r.Date),
		Capacity:    int(r.Capacity),
		Status:      domain.EventStatus(r.Status),
		CreatedAt:   pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt:   pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

func reservationToDomain(r reservationRow) entities.Reservation {
	return entities.Reservation{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Status:    domain.ReservationStatus(r.Status),
		CreatedAt: pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt: pgtypeTimestamptzToTime(r.UpdatedAt),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
