package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/seatlock/internal/core/domain"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Get(ctx context.Context, eventID uuid.UUID) (*domain.Geometry, error) {
	query := `
	SELECT id, total_rows, total_columns
	FROM events
	WHERE id = $1
	`

	var geo domain.Geometry
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(&geo.EventID, &geo.TotalRows, &geo.TotalColumns)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}

		return nil, err
	}

	return &geo, nil
}

// Create registers the seat geometry of an event. A zero id is replaced by
// a fresh one and zero dimensions fall back to the 5x10 default.
func (r *EventRepository) Create(ctx context.Context, geo domain.Geometry) (*domain.Geometry, error) {
	if geo.EventID == uuid.Nil {
		geo.EventID = uuid.New()
	}
	if geo.TotalRows == 0 {
		geo.TotalRows = domain.DefaultTotalRows
	}
	if geo.TotalColumns == 0 {
		geo.TotalColumns = domain.DefaultTotalColumns
	}

	query := `
	INSERT INTO events (id, total_rows, total_columns, created_at)
	VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, geo.EventID, geo.TotalRows, geo.TotalColumns, time.Now()); err != nil {
		return nil, err
	}

	return &geo, nil
}
