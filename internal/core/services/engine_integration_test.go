package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/seatlock/internal/adapter/lockstore/redislock"
	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/services"
)

// memoryStore is a map-backed repository and geometry lookup.
type memoryStore struct {
	mu           sync.Mutex
	events       map[uuid.UUID]domain.Geometry
	reservations map[uuid.UUID]domain.Reservation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		events:       make(map[uuid.UUID]domain.Geometry),
		reservations: make(map[uuid.UUID]domain.Reservation),
	}
}

func (m *memoryStore) addEvent(rows, cols int) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.events[id] = domain.Geometry{EventID: id, TotalRows: rows, TotalColumns: cols}
	return id
}

func (m *memoryStore) Get(_ context.Context, eventID uuid.UUID) (*domain.Geometry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	geo, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &geo, nil
}

func (m *memoryStore) Create(_ context.Context, r *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[r.ID] = *r
	return nil
}

func (m *memoryStore) FindByID(_ context.Context, id uuid.UUID, userID string) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok || r.UserID != userID {
		return nil, domain.ErrReservationNotFound
	}
	return &r, nil
}

func (m *memoryStore) FindByEventAndStatus(_ context.Context, eventID uuid.UUID, statuses ...domain.ReservationStatus) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Reservation
	for _, r := range m.reservations {
		if r.EventID != eventID {
			continue
		}
		for _, st := range statuses {
			if r.Status == st {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (m *memoryStore) FindExpiredHolds(_ context.Context, now time.Time) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Reservation
	for _, r := range m.reservations {
		if r.Status == domain.ReservationHold && r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok || r.Status != from {
		return domain.ErrReservationNotFound
	}
	r.Status = to
	if to == domain.ReservationConfirmed {
		r.ExpiresAt = nil
	}
	m.reservations[id] = r
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID, status domain.ReservationStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok || r.Status != status {
		return false, nil
	}
	delete(m.reservations, id)
	return true, nil
}

func (m *memoryStore) ListByUser(_ context.Context, userID string) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Reservation
	for _, r := range m.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type engine struct {
	svc   *services.ReservationService
	store *memoryStore
	mr    *miniredis.Miniredis
	clock *testClock
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := newMemoryStore()
	clock := &testClock{now: time.Now().UTC()}
	svc := services.NewReservationService(store, redislock.NewLockStore(client), store,
		services.WithClock(clock.Now))

	return &engine{svc: svc, store: store, mr: mr, clock: clock}
}

// advance moves the engine clock and the lock TTLs forward together.
func (e *engine) advance(d time.Duration) {
	e.clock.mu.Lock()
	e.clock.now = e.clock.now.Add(d)
	e.clock.mu.Unlock()
	e.mr.FastForward(d)
}

func TestEngine_HoldConfirmScenario(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	held, err := e.svc.Hold(ctx, "user-a", eventID, []domain.Seat{{Row: 1, Column: 1}, {Row: 1, Column: 2}})
	require.NoError(t, err)

	_, err = e.svc.Hold(ctx, "user-b", eventID, []domain.Seat{{Row: 1, Column: 2}})
	assert.ErrorIs(t, err, domain.ErrSeatAlreadyHeld)

	confirmed, err := e.svc.Confirm(ctx, "user-a", held.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, confirmed.Status)

	avail, err := e.svc.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, domain.SeatConfirmed, avail.Availability[0][0].Status)
	assert.Equal(t, domain.SeatConfirmed, avail.Availability[0][1].Status)
	assert.Equal(t, 48, avail.Availability.Count(domain.SeatAvailable))

	// confirmed seats stay taken after their locks are gone
	assert.Empty(t, e.mr.Keys())
	_, err = e.svc.Hold(ctx, "user-b", eventID, []domain.Seat{{Row: 1, Column: 2}})
	assert.ErrorIs(t, err, domain.ErrSeatAlreadyReserved)
	assert.Empty(t, e.mr.Keys())
}

func TestEngine_PartialConflictLeavesNoLocks(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	_, err := e.svc.Hold(ctx, "user-a", eventID, []domain.Seat{{Row: 1, Column: 3}})
	require.NoError(t, err)

	_, err = e.svc.Hold(ctx, "user-b", eventID, []domain.Seat{{Row: 1, Column: 1}, {Row: 1, Column: 2}, {Row: 1, Column: 3}})
	assert.ErrorIs(t, err, domain.ErrSeatAlreadyHeld)

	assert.Equal(t, []string{domain.Seat{Row: 1, Column: 3}.LockKey(eventID)}, e.mr.Keys())
	assert.Equal(t, 1, e.store.count())
}

func TestEngine_ConcurrentOverlappingHoldsHaveOneWinner(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	const contenders = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		failed  int
	)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seats := []domain.Seat{{Row: 2, Column: 5}, {Row: 2, Column: 6}}
			if i%2 == 1 {
				seats = []domain.Seat{{Row: 2, Column: 6}, {Row: 2, Column: 5}}
			}
			user := uuid.NewString()
			_, err := e.svc.Hold(ctx, user, eventID, seats)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, user)
			case errors.Is(err, domain.ErrSeatAlreadyHeld):
				failed++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, contenders-1, failed)

	for _, key := range e.mr.Keys() {
		owner, err := e.mr.Get(key)
		require.NoError(t, err)
		assert.Equal(t, winners[0], owner)
	}
	assert.Len(t, e.mr.Keys(), 2)
}

func TestEngine_ExpiredHoldDoesNotBlock(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)
	seat := []domain.Seat{{Row: 3, Column: 3}}

	stale, err := e.svc.Hold(ctx, "user-a", eventID, seat)
	require.NoError(t, err)

	e.advance(e.svc.HoldTTL() + time.Second)

	avail, err := e.svc.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 50, avail.Availability.Count(domain.SeatAvailable))

	fresh, err := e.svc.Hold(ctx, "user-b", eventID, seat)
	require.NoError(t, err)

	_, err = e.svc.Confirm(ctx, "user-a", stale.ID)
	assert.ErrorIs(t, err, domain.ErrHoldExpired)

	// the stale confirm must not take user-b's lock with it
	owner, err := e.mr.Get(seat[0].LockKey(eventID))
	require.NoError(t, err)
	assert.Equal(t, "user-b", owner)

	_, err = e.svc.Confirm(ctx, "user-b", fresh.ID)
	require.NoError(t, err)
}

func TestEngine_CancelHoldFreesSeats(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	held, err := e.svc.Hold(ctx, "user-a", eventID, []domain.Seat{{Row: 4, Column: 1}})
	require.NoError(t, err)

	require.NoError(t, e.svc.Cancel(ctx, "user-a", held.ID))
	assert.ErrorIs(t, e.svc.Cancel(ctx, "user-a", held.ID), domain.ErrReservationNotFound)
	assert.Empty(t, e.mr.Keys())

	_, err = e.svc.Hold(ctx, "user-b", eventID, []domain.Seat{{Row: 4, Column: 1}})
	require.NoError(t, err)
}

func TestEngine_CancelOtherUsersReservation(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	held, err := e.svc.Hold(ctx, "user-a", eventID, []domain.Seat{{Row: 1, Column: 1}})
	require.NoError(t, err)

	assert.ErrorIs(t, e.svc.Cancel(ctx, "user-b", held.ID), domain.ErrReservationNotFound)
	assert.Len(t, e.mr.Keys(), 1)
}

func TestEngine_SweepRemovesExpiredHolds(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(5, 10)

	_, err := e.svc.Hold(ctx, "user-a", eventID, []domain.Seat{{Row: 5, Column: 5}})
	require.NoError(t, err)
	kept, err := e.svc.Hold(ctx, "user-b", eventID, []domain.Seat{{Row: 5, Column: 6}})
	require.NoError(t, err)
	_, err = e.svc.Confirm(ctx, "user-b", kept.ID)
	require.NoError(t, err)

	e.advance(e.svc.HoldTTL() + time.Second)

	n, err := e.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, e.store.count())

	n, err = e.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := e.svc.ListUserReservations(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ReservationConfirmed, list[0].Status)
}

func TestEngine_SweepReleasesEveryExpiredHold(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	eventID := e.store.addEvent(15, 10)

	for row := 1; row <= 15; row++ {
		for col := 1; col <= 10; col++ {
			user := fmt.Sprintf("user-%d-%d", row, col)
			_, err := e.svc.Hold(ctx, user, eventID, []domain.Seat{{Row: row, Column: col}})
			require.NoError(t, err)
		}
	}
	require.Equal(t, 150, e.store.count())

	e.advance(e.svc.HoldTTL() + time.Second)

	n, err := e.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, n)
	assert.Zero(t, e.store.count())
	assert.Empty(t, e.mr.Keys())

	avail, err := e.svc.GetAvailability(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, 150, avail.Availability.Count(domain.SeatAvailable))
}
