package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/srgjo27/seatlock/internal/core/domain"
)

type ReservationService interface {
	GetAvailability(ctx context.Context, eventID uuid.UUID) (*domain.Availability, error)
	Hold(ctx context.Context, userID string, eventID uuid.UUID, seats []domain.Seat) (*domain.Reservation, error)
	Confirm(ctx context.Context, userID string, reservationID uuid.UUID) (*domain.Reservation, error)
	Cancel(ctx context.Context, userID string, reservationID uuid.UUID) error
	ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error)
	SweepAndNotify(ctx context.Context) (int, error)
}

type EventRegistrar interface {
	Create(ctx context.Context, geo domain.Geometry) (*domain.Geometry, error)
}

type ReservationHandler struct {
	svc      ReservationService
	events   EventRegistrar
	validate *validator.Validate
	logger   *slog.Logger
}

func NewReservationHandler(svc ReservationService, events EventRegistrar, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{
		svc:      svc,
		events:   events,
		validate: validator.New(),
		logger:   logger.With("component", "reservation-handler"),
	}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", Health)

	e.POST("/events", h.CreateEvent)
	e.GET("/events/:id/availability", h.GetAvailability)

	r := e.Group("/reservations")
	r.POST("/sweep", h.Sweep, RequireUser)
	r.POST("/hold", h.Hold, RequireUser)
	r.POST("/:id/confirm", h.Confirm, RequireUser)
	r.DELETE("/:id", h.Cancel, RequireUser)
	r.GET("/mine", h.ListMine, RequireUser)
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *ReservationHandler) fail(c echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.Path(), "error", err)
		if status == http.StatusServiceUnavailable {
			return c.JSON(status, ErrorResponse{Error: "service temporarily unavailable"})
		}
		return c.JSON(status, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func (h *ReservationHandler) CreateEvent(c echo.Context) error {
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	geo, err := h.events.Create(c.Request().Context(), domain.Geometry{
		TotalRows:    req.TotalRows,
		TotalColumns: req.TotalColumns,
	})
	if err != nil {
		return h.fail(c, domain.Infra("create event", err))
	}

	return c.JSON(http.StatusCreated, geo)
}

func (h *ReservationHandler) GetAvailability(c echo.Context) error {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid event id")
	}

	avail, err := h.svc.GetAvailability(c.Request().Context(), eventID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, avail)
}

func (h *ReservationHandler) Hold(c echo.Context) error {
	var req HoldRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	res, err := h.svc.Hold(c.Request().Context(), userID(c), uuid.MustParse(req.EventID), req.DomainSeats())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *ReservationHandler) Confirm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid reservation id")
	}

	res, err := h.svc.Confirm(c.Request().Context(), userID(c), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid reservation id")
	}

	if err := h.svc.Cancel(c.Request().Context(), userID(c), id); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "reservation cancelled"})
}

func (h *ReservationHandler) ListMine(c echo.Context) error {
	list, err := h.svc.ListUserReservations(c.Request().Context(), userID(c))
	if err != nil {
		return h.fail(c, err)
	}

	if list == nil {
		list = []domain.Reservation{}
	}

	return c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) Sweep(c echo.Context) error {
	released, err := h.svc.SweepAndNotify(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, SweepResponse{Released: released})
}
