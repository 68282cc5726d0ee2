package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/platform/metrics"
)

// Sweep removes every hold whose deadline has passed and releases its seat
// locks. Records or locks already removed by a concurrent confirm or cancel
// are skipped silently. It returns how many holds this call deleted.
func (s *ReservationService) Sweep(ctx context.Context) (int, error) {
	n, _, err := s.sweep(ctx)
	return n, err
}

// SweepAndNotify sweeps and then publishes the availability of every event
// that lost a hold, once per event.
func (s *ReservationService) SweepAndNotify(ctx context.Context) (int, error) {
	n, affected, err := s.sweep(ctx)
	for eventID := range affected {
		s.publishAvailability(ctx, eventID)
	}
	return n, err
}

func (s *ReservationService) sweep(ctx context.Context) (released int, affected map[uuid.UUID]struct{}, err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.Sweep")
	defer func() {
		span.SetAttributes(attribute.Int("released", released))
		s.finish(span, "sweep", err)
	}()

	expired, err := s.repo.FindExpiredHolds(ctx, s.now())
	if err != nil {
		s.logger.Error("error fetching expired holds", "error", err)
		return 0, nil, domain.Infra("find expired holds", err)
	}

	if len(expired) == 0 {
		return 0, nil, nil
	}

	s.logger.Info("found expired holds, cleaning up", "count", len(expired))

	affected = make(map[uuid.UUID]struct{})
	for i := range expired {
		hold := &expired[i]

		if err := s.releaseLocks(ctx, hold.LockKeys(), hold.UserID); err != nil {
			s.logger.Error("failed to release locks of expired hold", "reservation_id", hold.ID, "error", err)
			continue
		}

		deleted, err := s.repo.Delete(ctx, hold.ID, domain.ReservationHold)
		if err != nil {
			s.logger.Error("failed to delete expired hold", "reservation_id", hold.ID, "error", err)
			continue
		}
		if !deleted {
			continue
		}

		released++
		affected[hold.EventID] = struct{}{}
		s.logger.Info("hold expired and seats released", "reservation_id", hold.ID, "event_id", hold.EventID)
	}

	metrics.SweptHoldsTotal.Add(float64(released))

	return released, affected, nil
}
