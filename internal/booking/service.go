// Package booking implements the cinema use cases: creating showtimes from the movie
// catalog, holding seats for a showtime and confirming payment of a hold.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

// MovieProvider returns catalog movies. Implementations hide catalog outages behind a
// *domain.NotFoundError.
type MovieProvider interface {
	GetMovie(ctx context.Context, id string) (*domain.CatalogMovie, error)
}

type Service struct {
	showtimes   domain.ShowtimeRepository
	auditoriums domain.AuditoriumRepository
	tickets     domain.TicketRepository
	movies      MovieProvider
	logger      *slog.Logger

	expiry      time.Duration
	releaseDate domain.ReleaseDatePolicy
	now         func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithReservationExpiry(expiry time.Duration) Option {
	return func(s *Service) {
		if expiry > 0 {
			s.expiry = expiry
		}
	}
}

func WithReleaseDatePolicy(policy domain.ReleaseDatePolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.releaseDate = policy
		}
	}
}

func NewService(
	showtimes domain.ShowtimeRepository,
	auditoriums domain.AuditoriumRepository,
	tickets domain.TicketRepository,
	movies MovieProvider,
	logger *slog.Logger,
	opts ...Option) *Service {

	s := &Service{
		showtimes:   showtimes,
		auditoriums: auditoriums,
		tickets:     tickets,
		movies:      movies,
		logger:      logger,
		expiry:      domain.DefaultReservationExpiry,
		releaseDate: domain.JanuaryFirst,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func formatSeats(seats []domain.Seat) string {
	parts := make([]string, len(seats))
	for i, s := range seats {
		parts[i] = fmt.Sprintf("(%d,%d)", s.Row, s.SeatNumber)
	}

	return strings.Join(parts, ", ")
}
