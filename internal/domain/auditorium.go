package domain

import "context"

// Seat is identified by its row and number inside an auditorium.
type Seat struct {
	Row        int16 `json:"row"`
	SeatNumber int16 `json:"seatNumber"`
}

type Auditorium struct {
	ID    int
	Seats []Seat
}

type AuditoriumRepository interface {
	GetById(ctx context.Context, id int) (*Auditorium, error)
}
