package domain

import (
	"context"
	"time"
)

type Showtime struct {
	ID           int
	AuditoriumID int
	SessionDate  time.Time
	Movie        Movie
	Tickets      []Ticket
}

// ShowtimeFilter matches showtimes by the (movie, auditorium, session date) triple.
type ShowtimeFilter struct {
	ImdbID       string
	AuditoriumID int
	SessionDate  time.Time
}

type ShowtimeRepository interface {
	GetMatching(ctx context.Context, filter ShowtimeFilter) ([]Showtime, error)
	Create(ctx context.Context, showtime *Showtime) error
	GetWithMovie(ctx context.Context, id int) (*Showtime, error)
}
