package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/seatlock/internal/core/domain"
)

type EventGeometryLookup interface {
	// Get returns domain.ErrEventNotFound when the event is unknown.
	Get(ctx context.Context, eventID uuid.UUID) (*domain.Geometry, error)
}

// EventRepository registers event geometries. Create fills in a fresh id
// and the default dimensions when they are zero.
type EventRepository interface {
	EventGeometryLookup
	Create(ctx context.Context, geo domain.Geometry) (*domain.Geometry, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	// FindByID only matches reservations owned by userID and returns
	// domain.ErrReservationNotFound otherwise.
	FindByID(ctx context.Context, reservationID uuid.UUID, userID string) (*domain.Reservation, error)
	FindByEventAndStatus(ctx context.Context, eventID uuid.UUID, statuses ...domain.ReservationStatus) ([]domain.Reservation, error)
	FindExpiredHolds(ctx context.Context, now time.Time) ([]domain.Reservation, error)
	// UpdateStatus moves a reservation from one status to another and
	// returns domain.ErrReservationNotFound when no row is in the from state.
	UpdateStatus(ctx context.Context, reservationID uuid.UUID, from, to domain.ReservationStatus) error
	// Delete removes the reservation only while it is still in status and
	// reports whether a row was removed. A missing row is not an error.
	Delete(ctx context.Context, reservationID uuid.UUID, status domain.ReservationStatus) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Reservation, error)
}
