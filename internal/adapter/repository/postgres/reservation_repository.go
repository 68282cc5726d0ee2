package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/seatlock/internal/core/domain"
)

const selectReservation = `
	SELECT r.id, r.user_id, r.event_id, r.status, r.expires_at, r.created_at,
		array_agg(s.seat_row ORDER BY s.seat_row, s.seat_column),
		array_agg(s.seat_column ORDER BY s.seat_row, s.seat_column)
	FROM reservations r
	JOIN reservation_seats s ON s.reservation_id = r.id
	`

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	queryHeader := `
	INSERT INTO reservations (id, user_id, event_id, status, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.ExecContext(ctx, queryHeader, reservation.ID, reservation.UserID, reservation.EventID,
		reservation.Status, reservation.ExpiresAt, reservation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	querySeat := `
	INSERT INTO reservation_seats (reservation_id, seat_row, seat_column)
	VALUES ($1, $2, $3)
	`

	stmt, err := tx.PrepareContext(ctx, querySeat)
	if err != nil {
		return fmt.Errorf("failed to prepare seat statement: %w", err)
	}

	defer stmt.Close()

	for _, seat := range reservation.Seats {
		if _, err := stmt.ExecContext(ctx, reservation.ID, seat.Row, seat.Column); err != nil {
			return fmt.Errorf("failed to insert reservation seat %s: %w", seat, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, reservationID uuid.UUID, userID string) (*domain.Reservation, error) {
	query := selectReservation + `
	WHERE r.id = $1 AND r.user_id = $2
	GROUP BY r.id
	`

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, reservationID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	return res, nil
}

func (r *ReservationRepository) FindByEventAndStatus(ctx context.Context, eventID uuid.UUID, statuses ...domain.ReservationStatus) ([]domain.Reservation, error) {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}

	query := selectReservation + `
	WHERE r.event_id = $1 AND r.status = ANY($2)
	GROUP BY r.id
	`

	return r.query(ctx, query, eventID, pq.Array(names))
}

// FindExpiredHolds returns every hold whose deadline is before now, oldest
// first.
func (r *ReservationRepository) FindExpiredHolds(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	query := selectReservation + `
	WHERE r.status = 'HOLD' AND r.expires_at < $1
	GROUP BY r.id
	ORDER BY r.expires_at
	`

	return r.query(ctx, query, now)
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	query := selectReservation + `
	WHERE r.user_id = $1
	GROUP BY r.id
	ORDER BY r.created_at DESC
	`

	return r.query(ctx, query, userID)
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, reservationID uuid.UUID, from, to domain.ReservationStatus) error {
	query := `
	UPDATE reservations
	SET status = $1,
		expires_at = CASE WHEN $1 = 'HOLD' THEN expires_at ELSE NULL END
	WHERE id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, to, reservationID, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, reservationID uuid.UUID, status domain.ReservationStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1 AND status = $2`, reservationID, status)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *ReservationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, *res)
	}

	return reservations, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		expiresAt sql.NullTime
		seatRows  pq.Int64Array
		seatCols  pq.Int64Array
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.EventID,
		&res.Status,
		&expiresAt,
		&res.CreatedAt,
		&seatRows,
		&seatCols,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		res.ExpiresAt = &expiresAt.Time
	}

	if len(seatRows) != len(seatCols) {
		return nil, fmt.Errorf("reservation %s: mismatched seat columns", res.ID)
	}

	res.Seats = make([]domain.Seat, len(seatRows))
	for i := range seatRows {
		res.Seats[i] = domain.Seat{Row: int(seatRows[i]), Column: int(seatCols[i])}
	}

	return &res, nil
}
