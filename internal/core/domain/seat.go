package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type Seat struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (s Seat) String() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Column)
}

func (s Seat) Less(o Seat) bool {
	if s.Row != o.Row {
		return s.Row < o.Row
	}
	return s.Column < o.Column
}

// LockKey is the lock store key guarding this seat for one event.
func (s Seat) LockKey(eventID uuid.UUID) string {
	return fmt.Sprintf("seat:lock:%s:%d:%d", eventID, s.Row, s.Column)
}

// SortSeats returns a sorted copy, ascending by row then column.
func SortSeats(seats []Seat) []Seat {
	out := make([]Seat, len(seats))
	copy(out, seats)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

const (
	DefaultTotalRows    = 5
	DefaultTotalColumns = 10
)

type Geometry struct {
	EventID      uuid.UUID `json:"event_id"`
	TotalRows    int       `json:"total_rows"`
	TotalColumns int       `json:"total_columns"`
}

func (g Geometry) Contains(s Seat) bool {
	return s.Row >= 1 && s.Row <= g.TotalRows && s.Column >= 1 && s.Column <= g.TotalColumns
}

// ValidateSeats checks a hold request against the geometry. It reports the
// first offending seat and never mutates the input.
func (g Geometry) ValidateSeats(seats []Seat) error {
	if len(seats) == 0 {
		return ErrNoSeats
	}

	seen := make(map[Seat]struct{}, len(seats))
	for _, s := range seats {
		if !g.Contains(s) {
			return fmt.Errorf("%w: seat %s outside %dx%d", ErrSeatOutOfBounds, s, g.TotalRows, g.TotalColumns)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: seat %s", ErrDuplicateSeat, s)
		}
		seen[s] = struct{}{}
	}

	return nil
}
