package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/ports"
	"github.com/srgjo27/seatlock/internal/platform/metrics"
)

const (
	// DefaultHoldTTL is both the seat lock TTL and the hold lifetime, so the
	// lock and the record expire together.
	DefaultHoldTTL       = 300 * time.Second
	defaultNotifyTimeout = 2 * time.Second
)

type ReservationService struct {
	repo     ports.ReservationRepository
	locks    ports.LockStore
	events   ports.EventGeometryLookup
	notifier ports.Notifier

	holdTTL       time.Duration
	notifyTimeout time.Duration
	now           func() time.Time
	logger        *slog.Logger
	tracer        trace.Tracer

	inflight sync.WaitGroup
}

type Option func(*ReservationService)

func WithNotifier(n ports.Notifier) Option {
	return func(s *ReservationService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithHoldTTL overrides the default hold lifetime.
func WithHoldTTL(d time.Duration) Option {
	return func(s *ReservationService) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

func WithNotifyTimeout(d time.Duration) Option {
	return func(s *ReservationService) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *ReservationService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *ReservationService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewReservationService(repo ports.ReservationRepository, locks ports.LockStore, events ports.EventGeometryLookup, opts ...Option) *ReservationService {
	s := &ReservationService{
		repo:          repo,
		locks:         locks,
		events:        events,
		notifier:      nopNotifier{},
		holdTTL:       DefaultHoldTTL,
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
		logger:        slog.Default(),
		tracer:        otel.Tracer("seatlock/reservation-service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "reservation-service")

	return s
}

func (s *ReservationService) HoldTTL() time.Duration {
	return s.holdTTL
}

// Wait blocks until every pending availability notification has finished.
func (s *ReservationService) Wait() {
	s.inflight.Wait()
}

func (s *ReservationService) GetAvailability(ctx context.Context, eventID uuid.UUID) (avail *domain.Availability, err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.GetAvailability",
		trace.WithAttributes(attribute.String("event.id", eventID.String())))
	defer func() { s.finish(span, "availability", err) }()

	return s.availability(ctx, eventID)
}

func (s *ReservationService) availability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	geo, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, classify("load event geometry", err)
	}

	reservations, err := s.repo.FindByEventAndStatus(ctx, eventID, domain.ReservationHold, domain.ReservationConfirmed)
	if err != nil {
		return nil, domain.Infra("load reservations", err)
	}

	return &domain.Availability{
		Event:        *geo,
		Availability: domain.ComputeAvailability(*geo, reservations, s.now()),
	}, nil
}

func (s *ReservationService) Hold(ctx context.Context, userID string, eventID uuid.UUID, seats []domain.Seat) (res *domain.Reservation, err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.Hold", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("event.id", eventID.String()),
		attribute.Int("seats", len(seats)),
	))
	defer func() { s.finish(span, "hold", err) }()

	now := s.now()

	geo, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, classify("load event geometry", err)
	}

	if err := geo.ValidateSeats(seats); err != nil {
		return nil, err
	}

	ordered := domain.SortSeats(seats)

	lockedKeys, err := s.acquireAll(ctx, eventID, userID, ordered)
	if err != nil {
		return nil, err
	}

	// A confirmed reservation owns its seats without a lock, so it has to be
	// checked after the locks are ours.
	confirmed, err := s.repo.FindByEventAndStatus(ctx, eventID, domain.ReservationConfirmed)
	if err != nil {
		s.rollbackLocks(ctx, lockedKeys, userID)
		return nil, domain.Infra("load confirmed reservations", err)
	}

	for i := range confirmed {
		if seat, taken := confirmed[i].Overlaps(ordered); taken {
			s.rollbackLocks(ctx, lockedKeys, userID)
			return nil, fmt.Errorf("%w: seat %s", domain.ErrSeatAlreadyReserved, seat)
		}
	}

	expiresAt := now.Add(s.holdTTL)
	reservation := &domain.Reservation{
		ID:        uuid.New(),
		UserID:    userID,
		EventID:   eventID,
		Seats:     ordered,
		Status:    domain.ReservationHold,
		ExpiresAt: &expiresAt,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		s.rollbackLocks(ctx, lockedKeys, userID)
		return nil, domain.Infra("create reservation", err)
	}

	s.logger.Info("seats held",
		"reservation_id", reservation.ID, "user_id", userID, "event_id", eventID, "seats", len(ordered))

	s.publishAvailability(ctx, eventID)

	return reservation, nil
}

// acquireAll takes the seat locks one by one in the given order. The fixed
// order only reduces wasted work between overlapping requests; Acquire
// never blocks, so correctness does not depend on it.
func (s *ReservationService) acquireAll(ctx context.Context, eventID uuid.UUID, owner string, seats []domain.Seat) ([]string, error) {
	locked := make([]string, 0, len(seats))

	for _, seat := range seats {
		key := seat.LockKey(eventID)

		ok, err := s.locks.Acquire(ctx, key, owner, s.holdTTL)
		if err != nil {
			// The write may have landed before the error; Release only
			// removes keys we own, so including key is safe.
			s.rollbackLocks(ctx, append(locked, key), owner)
			return nil, domain.Infra("acquire seat lock", err)
		}

		if !ok {
			metrics.SeatLockContentionTotal.Inc()
			s.rollbackLocks(ctx, locked, owner)
			return nil, fmt.Errorf("%w: seat %s", domain.ErrSeatAlreadyHeld, seat)
		}

		locked = append(locked, key)
	}

	return locked, nil
}

func (s *ReservationService) rollbackLocks(ctx context.Context, keys []string, owner string) {
	if err := s.releaseLocks(ctx, keys, owner); err != nil {
		s.logger.Error("failed to roll back seat locks", "owner", owner, "error", err)
	}
}

// releaseLocks runs detached from the caller's cancellation so a cancelled
// request still cleans up after itself.
func (s *ReservationService) releaseLocks(ctx context.Context, keys []string, owner string) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, key := range keys {
		if err := s.locks.Release(ctx, key, owner); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

func (s *ReservationService) Confirm(ctx context.Context, userID string, reservationID uuid.UUID) (res *domain.Reservation, err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.Confirm", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("reservation.id", reservationID.String()),
	))
	defer func() { s.finish(span, "confirm", err) }()

	reservation, err := s.repo.FindByID(ctx, reservationID, userID)
	if err != nil {
		return nil, classify("load reservation", err)
	}

	if reservation.Status != domain.ReservationHold {
		return nil, fmt.Errorf("%w: already confirmed", domain.ErrReservationNotFound)
	}

	if reservation.IsExpired(s.now()) {
		s.discardHold(ctx, reservation)
		return nil, domain.ErrHoldExpired
	}

	for _, key := range reservation.LockKeys() {
		owner, held, err := s.locks.Owner(ctx, key)
		if err != nil {
			return nil, domain.Infra("read seat lock", err)
		}
		if !held || owner != userID {
			s.discardHold(ctx, reservation)
			return nil, fmt.Errorf("%w: seat locks have expired or been released", domain.ErrHoldExpired)
		}
	}

	if err := s.repo.UpdateStatus(ctx, reservation.ID, domain.ReservationHold, domain.ReservationConfirmed); err != nil {
		return nil, classify("confirm reservation", err)
	}

	reservation.Status = domain.ReservationConfirmed
	reservation.ExpiresAt = nil

	// The confirmed record is now the only authority for these seats.
	if err := s.releaseLocks(ctx, reservation.LockKeys(), userID); err != nil {
		s.logger.Warn("confirmed reservation kept some seat locks until TTL",
			"reservation_id", reservation.ID, "error", err)
	}

	s.logger.Info("reservation confirmed", "reservation_id", reservation.ID, "user_id", userID)

	s.publishAvailability(ctx, reservation.EventID)
	s.publishConfirmed(ctx, *reservation)

	return reservation, nil
}

// discardHold releases the locks of a hold that can no longer be confirmed
// and deletes its record. Failures are left to the sweeper.
func (s *ReservationService) discardHold(ctx context.Context, reservation *domain.Reservation) {
	ctx = context.WithoutCancel(ctx)

	if err := s.releaseLocks(ctx, reservation.LockKeys(), reservation.UserID); err != nil {
		s.logger.Error("failed to release locks of stale hold", "reservation_id", reservation.ID, "error", err)
	}

	if _, err := s.repo.Delete(ctx, reservation.ID, domain.ReservationHold); err != nil {
		s.logger.Error("failed to delete stale hold", "reservation_id", reservation.ID, "error", err)
		return
	}

	s.publishAvailability(ctx, reservation.EventID)
}

func (s *ReservationService) Cancel(ctx context.Context, userID string, reservationID uuid.UUID) (err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.Cancel", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("reservation.id", reservationID.String()),
	))
	defer func() { s.finish(span, "cancel", err) }()

	reservation, err := s.repo.FindByID(ctx, reservationID, userID)
	if err != nil {
		return classify("load reservation", err)
	}

	if err := s.releaseLocks(ctx, reservation.LockKeys(), userID); err != nil {
		return domain.Infra("release seat locks", err)
	}

	deleted, err := s.repo.Delete(ctx, reservation.ID, reservation.Status)
	if err != nil {
		return domain.Infra("delete reservation", err)
	}
	if !deleted {
		return domain.ErrReservationNotFound
	}

	s.logger.Info("reservation cancelled", "reservation_id", reservation.ID, "user_id", userID)

	s.publishAvailability(ctx, reservation.EventID)

	return nil
}

func (s *ReservationService) ListUserReservations(ctx context.Context, userID string) (list []domain.Reservation, err error) {
	ctx, span := s.tracer.Start(ctx, "reservation.ListUserReservations",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer func() { s.finish(span, "list", err) }()

	list, err = s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Infra("list reservations", err)
	}

	return list, nil
}

func (s *ReservationService) finish(span trace.Span, op string, err error) {
	metrics.ReservationOpsTotal.WithLabelValues(op, Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// classify keeps the domain errors a store may legitimately return and
// wraps everything else as an infrastructure failure.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return err
	}
	return domain.Infra(op, err)
}

// Outcome names the kind of err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, domain.ErrSeatOutOfBounds):
		return "seat_out_of_bounds"
	case errors.Is(err, domain.ErrNoSeats), errors.Is(err, domain.ErrDuplicateSeat):
		return "invalid_seats"
	case errors.Is(err, domain.ErrSeatAlreadyHeld):
		return "seat_already_held"
	case errors.Is(err, domain.ErrSeatAlreadyReserved):
		return "seat_already_reserved"
	case errors.Is(err, domain.ErrReservationNotFound):
		return "reservation_not_found"
	case errors.Is(err, domain.ErrHoldExpired):
		return "hold_expired"
	case errors.Is(err, domain.ErrNotOwner):
		return "not_owner"
	case errors.Is(err, domain.ErrInfrastructure):
		return "infrastructure"
	}
	return "error"
}
