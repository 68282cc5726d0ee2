package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/seatlock/internal/adapter/handler"
	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/ports/mocks"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error) {
	args := m.Called(ctx, eventID)
	avail, _ := args.Get(0).(*domain.Availability)
	return avail, args.Error(1)
}

func (m *mockService) Hold(ctx context.Context, userID string, eventID uuid.UUID, seats []domain.Seat) (*domain.Reservation, error) {
	args := m.Called(ctx, userID, eventID, seats)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *mockService) Confirm(ctx context.Context, userID string, reservationID uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, userID, reservationID)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *mockService) Cancel(ctx context.Context, userID string, reservationID uuid.UUID) error {
	return m.Called(ctx, userID, reservationID).Error(0)
}

func (m *mockService) ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *mockService) SweepAndNotify(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type testServer struct {
	e      *echo.Echo
	svc    *mockService
	events *mocks.EventRepository
}

func newServer(t *testing.T) *testServer {
	svc := &mockService{}
	svc.Test(t)
	t.Cleanup(func() { svc.AssertExpectations(t) })

	events := mocks.NewEventRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Use(handler.Metrics)
	handler.NewReservationHandler(svc, events, logger).RegisterRoutes(e)

	return &testServer{e: e, svc: svc, events: events}
}

func (s *testServer) do(method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != "" {
		req.Header.Set(handler.UserIDHeader, user)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestHold_Success(t *testing.T) {
	s := newServer(t)
	eventID := uuid.New()
	expires := time.Now().Add(5 * time.Minute)
	seats := []domain.Seat{{Row: 1, Column: 1}, {Row: 1, Column: 2}}

	s.svc.On("Hold", mock.Anything, "user-a", eventID, seats).Return(&domain.Reservation{
		ID:        uuid.New(),
		UserID:    "user-a",
		EventID:   eventID,
		Seats:     seats,
		Status:    domain.ReservationHold,
		ExpiresAt: &expires,
	}, nil)

	body := fmt.Sprintf(`{"event_id":%q,"seats":[{"row":1,"column":1},{"row":1,"column":2}]}`, eventID)
	rec := s.do(http.MethodPost, "/reservations/hold", "user-a", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got domain.Reservation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.ReservationHold, got.Status)
	assert.Equal(t, seats, got.Seats)
}

func TestHold_Fail_MissingUser(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/reservations/hold", "", `{"event_id":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHold_Fail_BadRequest(t *testing.T) {
	s := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"event_id":`},
		{"missing event", `{"seats":[{"row":1,"column":1}]}`},
		{"event not a uuid", `{"event_id":"abc","seats":[{"row":1,"column":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/reservations/hold", "user-a", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestConfirm_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrReservationNotFound, http.StatusNotFound},
		{domain.ErrEventNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: seat 9-9", domain.ErrSeatOutOfBounds), http.StatusBadRequest},
		{domain.ErrNoSeats, http.StatusBadRequest},
		{domain.ErrDuplicateSeat, http.StatusBadRequest},
		{fmt.Errorf("%w: seat 1-2", domain.ErrSeatAlreadyHeld), http.StatusConflict},
		{domain.ErrSeatAlreadyReserved, http.StatusConflict},
		{domain.ErrHoldExpired, http.StatusGone},
		{domain.ErrNotOwner, http.StatusForbidden},
		{domain.Infra("read seat lock", errors.New("dial tcp: refused")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newServer(t)
			id := uuid.New()
			s.svc.On("Confirm", mock.Anything, "user-a", id).Return(nil, tt.err)

			rec := s.do(http.MethodPost, "/reservations/"+id.String()+"/confirm", "user-a", "")

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestConfirm_HidesInfrastructureDetail(t *testing.T) {
	s := newServer(t)
	id := uuid.New()
	s.svc.On("Confirm", mock.Anything, "user-a", id).Return(nil, domain.Infra("read seat lock", errors.New("10.0.0.7:6379 refused")))

	rec := s.do(http.MethodPost, "/reservations/"+id.String()+"/confirm", "user-a", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func TestCancel_Success(t *testing.T) {
	s := newServer(t)
	id := uuid.New()
	s.svc.On("Cancel", mock.Anything, "user-a", id).Return(nil)

	rec := s.do(http.MethodDelete, "/reservations/"+id.String(), "user-a", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"reservation cancelled"}`, rec.Body.String())
}

func TestCancel_Fail_InvalidID(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodDelete, "/reservations/not-a-uuid", "user-a", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAvailability_Success(t *testing.T) {
	s := newServer(t)
	eventID := uuid.New()
	geo := domain.Geometry{EventID: eventID, TotalRows: 1, TotalColumns: 2}
	s.svc.On("GetAvailability", mock.Anything, eventID).Return(&domain.Availability{
		Event:        geo,
		Availability: domain.ComputeAvailability(geo, nil, time.Now()),
	}, nil)

	rec := s.do(http.MethodGet, "/events/"+eventID.String()+"/availability", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
	assert.Contains(t, rec.Body.String(), `"total_columns":2`)
}

func TestCreateEvent(t *testing.T) {
	s := newServer(t)
	id := uuid.New()
	s.events.On("Create", mock.Anything, domain.Geometry{TotalRows: 0, TotalColumns: 0}).
		Return(&domain.Geometry{EventID: id, TotalRows: 5, TotalColumns: 10}, nil)

	rec := s.do(http.MethodPost, "/events", "", `{}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"event_id":%q,"total_rows":5,"total_columns":10}`, id), rec.Body.String())
}

func TestCreateEvent_Fail_NegativeSize(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/events", "", `{"total_rows":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMine_EmptyIsArray(t *testing.T) {
	s := newServer(t)
	s.svc.On("ListUserReservations", mock.Anything, "user-z").Return(nil, nil)

	rec := s.do(http.MethodGet, "/reservations/mine", "user-z", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSweep(t *testing.T) {
	s := newServer(t)
	s.svc.On("SweepAndNotify", mock.Anything).Return(3, nil)

	rec := s.do(http.MethodPost, "/reservations/sweep", "operator", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"released":3}`, rec.Body.String())
}

func TestSweep_Fail_MissingUser(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/reservations/sweep", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	s.svc.AssertNotCalled(t, "SweepAndNotify", mock.Anything)
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
