package notifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/ports"
)

// Fanout forwards availability updates to every notifier and confirmed
// reservations to every sink. All targets are tried even when one fails.
type Fanout struct {
	notifiers []ports.Notifier
	sinks     []ports.ConfirmationSink
}

func NewFanout(notifiers []ports.Notifier, sinks []ports.ConfirmationSink) *Fanout {
	return &Fanout{notifiers: notifiers, sinks: sinks}
}

func (f *Fanout) Publish(ctx context.Context, eventID uuid.UUID, grid domain.Grid) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Publish(ctx, eventID, grid); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Confirmed(ctx context.Context, res domain.Reservation) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Confirmed(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
