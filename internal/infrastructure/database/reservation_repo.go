package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"evenza/internal/domain"
	"evenza/internal/domain/entities"
	"evenza/internal/ports/output"
)

var _ output.ReservationRepository = (*ReservationRepository)(nil)

const reservationColumns = `id, event_id, user_id, status, created_at, updated_at`

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a reservation. The reservations_one_active index turns a
// second active reservation for the same user and event into
// domain.ErrActiveReservationExists.
func (r *ReservationRepository) Create(ctx context.Context, res *entities.Reservation) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		res.ID, res.EventID, res.UserID, string(res.Status),
		timeToTimestamptz(res.CreatedAt), timeToTimestamptz(res.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrActiveReservationExists
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*entities.Reservation, error) {
	var row reservationRow
	err := r.db.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id,
	).Scan(row.dest()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}
	res := reservationToDomain(row)
	return &res, nil
}

func (r *ReservationRepository) Find(ctx context.Context, filter entities.ReservationFilter) ([]entities.Reservation, error) {
	where, args := filterClause(filter)
	rows, err := r.db.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations`+where+`
		 ORDER BY created_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Reservation, 0)
	for rows.Next() {
		var row reservationRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, reservationToDomain(row))
	}
	return out, rows.Err()
}

func (r *ReservationRepository) Count(ctx context.Context, filter entities.ReservationFilter) (int, error) {
	where, args := filterClause(filter)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM reservations`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return int(n), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *entities.Reservation) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`,
		res.ID, string(res.Status), timeToTimestamptz(res.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrActiveReservationExists
		}
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// Confirm runs the seat check and the write in one transaction holding the
// event row FOR UPDATE. Concurrent confirms for the same event queue on that
// row lock, so the confirmed count cannot pass capacity even when two
// replicas both believe they hold the event lock. The smaller of capacity and
// the stored capacity applies.
func (r *ReservationRepository) Confirm(ctx context.Context, res *entities.Reservation, capacity int) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var stored int32
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, res.EventID,
	).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, res.ID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("lock reservation row: %w", err)
	}
	if err = domain.CheckConfirm(domain.ReservationStatus(status)); err != nil {
		return err
	}

	var confirmed int64
	err = tx.QueryRow(ctx,
		`SELECT count(*) FROM reservations WHERE event_id = $1 AND status = $2`,
		res.EventID, string(domain.ReservationConfirmed),
	).Scan(&confirmed)
	if err != nil {
		return fmt.Errorf("count confirmed: %w", err)
	}
	if int(confirmed) >= min(int(stored), capacity) {
		return domain.ErrCapacityReached
	}

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`,
		res.ID, string(domain.ReservationConfirmed), timeToTimestamptz(res.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("confirm reservation: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// filterClause builds the WHERE clause and positional args for filter.
func filterClause(f entities.ReservationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.EventID != "" {
		args = append(args, f.EventID)
		conds = append(conds, fmt.Sprintf("event_id = $%d", len(args)))
	}
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
