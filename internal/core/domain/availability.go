package domain

import "time"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "hold"
	SeatConfirmed SeatStatus = "confirmed"
)

type SeatCell struct {
	Row    int        `json:"row"`
	Column int        `json:"column"`
	Status SeatStatus `json:"status"`
}

// Grid is indexed [row-1][column-1].
type Grid [][]SeatCell

func (g Grid) At(s Seat) (SeatCell, bool) {
	if s.Row < 1 || s.Row > len(g) {
		return SeatCell{}, false
	}
	row := g[s.Row-1]
	if s.Column < 1 || s.Column > len(row) {
		return SeatCell{}, false
	}
	return row[s.Column-1], true
}

func (g Grid) Count(status SeatStatus) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c.Status == status {
				n++
			}
		}
	}
	return n
}

type Availability struct {
	Event        Geometry `json:"event"`
	Availability Grid     `json:"availability"`
}

// ComputeAvailability derives the seat grid from a snapshot of reservations.
// Confirmed seats win over holds; holds at or past their deadline are
// ignored whether or not they have been swept.
func ComputeAvailability(geo Geometry, reservations []Reservation, now time.Time) Grid {
	claims := make(map[Seat]SeatStatus)

	for i := range reservations {
		r := &reservations[i]
		if r.Status != ReservationConfirmed {
			continue
		}
		for _, s := range r.Seats {
			claims[s] = SeatConfirmed
		}
	}

	for i := range reservations {
		r := &reservations[i]
		if r.Status != ReservationHold || !r.IsActive(now) {
			continue
		}
		for _, s := range r.Seats {
			if _, ok := claims[s]; !ok {
				claims[s] = SeatHeld
			}
		}
	}

	grid := make(Grid, geo.TotalRows)
	for row := 1; row <= geo.TotalRows; row++ {
		cells := make([]SeatCell, geo.TotalColumns)
		for col := 1; col <= geo.TotalColumns; col++ {
			status, ok := claims[Seat{Row: row, Column: col}]
			if !ok {
				status = SeatAvailable
			}
			cells[col-1] = SeatCell{Row: row, Column: col, Status: status}
		}
		grid[row-1] = cells
	}

	return grid
}
