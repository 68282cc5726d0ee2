package handler

import "github.com/srgjo27/seatlock/internal/core/domain"

type CreateEventRequest struct {
	TotalRows    int `json:"total_rows" validate:"gte=0,lte=500"`
	TotalColumns int `json:"total_columns" validate:"gte=0,lte=500"`
}

type SeatRequest struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// HoldRequest leaves seat checks to the engine so that bounds, emptiness
// and duplicates report the same errors whatever the entry point.
type HoldRequest struct {
	EventID string        `json:"event_id" validate:"required,uuid"`
	Seats   []SeatRequest `json:"seats"`
}

func (r *HoldRequest) DomainSeats() []domain.Seat {
	seats := make([]domain.Seat, len(r.Seats))
	for i, s := range r.Seats {
		seats[i] = domain.Seat{Row: s.Row, Column: s.Column}
	}
	return seats
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SweepResponse struct {
	Released int `json:"released"`
}
