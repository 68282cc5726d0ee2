package handler

import (
	"errors"
	"net/http"

	"github.com/srgjo27/seatlock/internal/core/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatOutOfBounds),
		errors.Is(err, domain.ErrNoSeats),
		errors.Is(err, domain.ErrDuplicateSeat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSeatAlreadyHeld),
		errors.Is(err, domain.ErrSeatAlreadyReserved):
		return http.StatusConflict
	case errors.Is(err, domain.ErrHoldExpired):
		return http.StatusGone
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInfrastructure):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
