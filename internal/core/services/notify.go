package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/ports"
	"github.com/srgjo27/seatlock/internal/platform/metrics"
)

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, uuid.UUID, domain.Grid) error { return nil }

// publishAvailability recomputes the grid of an event and hands it to the
// notifier on its own goroutine. It never blocks or fails the caller.
func (s *ReservationService) publishAvailability(ctx context.Context, eventID uuid.UUID) {
	if _, ok := s.notifier.(nopNotifier); ok {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		avail, err := s.availability(ctx, eventID)
		if err != nil {
			metrics.NotifyFailuresTotal.Inc()
			s.logger.Warn("skip availability notification", "event_id", eventID, "error", err)
			return
		}

		if err := s.notifier.Publish(ctx, eventID, avail.Availability); err != nil {
			metrics.NotifyFailuresTotal.Inc()
			s.logger.Warn("availability notification failed", "event_id", eventID, "error", err)
		}
	}()
}

func (s *ReservationService) publishConfirmed(ctx context.Context, reservation domain.Reservation) {
	sink, ok := s.notifier.(ports.ConfirmationSink)
	if !ok {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		if err := sink.Confirmed(ctx, reservation); err != nil {
			metrics.NotifyFailuresTotal.Inc()
			s.logger.Warn("confirmation event failed", "reservation_id", reservation.ID, "error", err)
		}
	}()
}
