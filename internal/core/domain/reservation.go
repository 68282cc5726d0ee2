package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationHold      ReservationStatus = "HOLD"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
)

type Reservation struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	EventID   uuid.UUID         `json:"event_id"`
	Seats     []Seat            `json:"seats"`
	Status    ReservationStatus `json:"status"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// IsExpired reports whether a hold has reached its deadline. It is the exact
// complement of IsActive for holds. Confirmed reservations never expire.
func (r *Reservation) IsExpired(now time.Time) bool {
	return r.Status == ReservationHold && r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}

// IsActive reports whether the reservation occupies its seats at now.
func (r *Reservation) IsActive(now time.Time) bool {
	switch r.Status {
	case ReservationConfirmed:
		return true
	case ReservationHold:
		return r.ExpiresAt != nil && r.ExpiresAt.After(now)
	}
	return false
}

func (r *Reservation) LockKeys() []string {
	keys := make([]string, 0, len(r.Seats))
	for _, s := range r.Seats {
		keys = append(keys, s.LockKey(r.EventID))
	}
	return keys
}

func (r *Reservation) Overlaps(seats []Seat) (Seat, bool) {
	taken := make(map[Seat]struct{}, len(r.Seats))
	for _, s := range r.Seats {
		taken[s] = struct{}{}
	}
	for _, s := range seats {
		if _, ok := taken[s]; ok {
			return s, true
		}
	}
	return Seat{}, false
}
