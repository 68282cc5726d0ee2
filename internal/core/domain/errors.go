package domain

import (
	"errors"
	"fmt"
)

// Validation errors, raised before any side effect.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrSeatOutOfBounds = errors.New("seat out of bounds")
	ErrNoSeats         = errors.New("no seats selected")
	ErrDuplicateSeat   = errors.New("duplicate seat in request")
)

// Contention errors. Expected under concurrent load; the caller may retry
// with other seats.
var (
	ErrSeatAlreadyHeld     = errors.New("seat already held")
	ErrSeatAlreadyReserved = errors.New("seat already reserved")
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrHoldExpired         = errors.New("reservation hold has expired")
)

// ErrNotOwner is reserved for repository adapters that can tell another
// user's reservation apart from a missing one. The Postgres and in-memory
// stores filter FindByID by user and report ErrReservationNotFound instead,
// so the engine itself never returns it.
var ErrNotOwner = errors.New("reservation belongs to another user")

// ErrInfrastructure marks failures of the lock store or the repository.
var ErrInfrastructure = errors.New("infrastructure failure")

func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInfrastructure) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}
