package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/seatlock/internal/core/domain"
)

// Notifier receives the fresh availability of an event after every state
// change. Delivery is best effort.
type Notifier interface {
	Publish(ctx context.Context, eventID uuid.UUID, grid domain.Grid) error
}

// ConfirmationSink is an optional capability of a Notifier that wants to
// hear about every confirmed reservation.
type ConfirmationSink interface {
	Confirmed(ctx context.Context, reservation domain.Reservation) error
}
