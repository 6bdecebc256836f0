package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const DefaultReservationExpiry = 10 * time.Minute

// Ticket is a hold on a set of seats for one showtime. An unpaid ticket older than the
// expiry window no longer blocks its seats but is never deleted.
type Ticket struct {
	ID          uuid.UUID
	ShowtimeID  int
	Paid        bool
	CreatedTime time.Time
	Seats       []Seat
}

func NewTicket(showtimeID int, seats []Seat, now time.Time) *Ticket {
	return &Ticket{
		ID:          uuid.New(),
		ShowtimeID:  showtimeID,
		Paid:        false,
		CreatedTime: now,
		Seats:       seats,
	}
}

// Expired reports whether an unpaid hold has outlived the expiry window.
// Paid tickets never expire.
func (t *Ticket) Expired(now time.Time, window time.Duration) bool {
	return !t.Paid && now.Sub(t.CreatedTime) > window
}

// Blocking reports whether the ticket still occupies its seats.
func (t *Ticket) Blocking(now time.Time, window time.Duration) bool {
	return t.Paid || !t.Expired(now, window)
}

type TicketRepository interface {
	// CreateForShowtime locks the showtime, loads it with its tickets and passes it to hold.
	// The ticket returned by hold is persisted in the same transaction.
	CreateForShowtime(ctx context.Context, showtimeID int, hold func(*Showtime) (*Ticket, error)) (*Ticket, error)
	GetById(ctx context.Context, id uuid.UUID) (*Ticket, error)
	// ConfirmPayment locks the ticket's showtime, re-reads the ticket and passes it to check.
	// The ticket is marked paid in the same transaction only if check returns nil.
	ConfirmPayment(ctx context.Context, ticket *Ticket, check func(*Ticket) error) error
}
