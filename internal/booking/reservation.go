package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

type ReservationSummary struct {
	ReservationID uuid.UUID
	MovieTitle    string
	SeatsCount    int
	Seats         []domain.Seat
	AuditoriumID  int
	SessionDate   time.Time
}

// Reserve holds the requested seats for a showtime. Seats must exist in the auditorium,
// form a single run in one row and be free. Availability is decided under the showtime
// lock held by the ticket repository, so overlapping concurrent holds cannot both succeed.
func (s *Service) Reserve(ctx context.Context, showtimeID int, seats []domain.Seat) (*ReservationSummary, error) {
	if len(seats) == 0 {
		return nil, domain.NewValidationError(domain.ReasonNoSeats, "at least one seat must be requested")
	}

	showtime, err := s.showtimes.GetWithMovie(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "showtime", ID: strconv.Itoa(showtimeID)}
		}
		return nil, err
	}

	auditorium, err := s.auditoriums.GetById(ctx, showtime.AuditoriumID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "auditorium", ID: strconv.Itoa(showtime.AuditoriumID)}
		}
		return nil, err
	}

	s.logger.Info("checking seat reservation criteria", "showtime_id", showtimeID, "seats", len(seats))

	if missing := domain.MissingSeats(seats, auditorium); len(missing) > 0 {
		return nil, domain.NewValidationError(domain.ReasonSeatsNotInAuditorium,
			"seats %s do not exist in auditorium %d", formatSeats(missing), auditorium.ID)
	}

	if !domain.AreContiguous(seats) {
		return nil, domain.NewValidationError(domain.ReasonSeatsNotContiguous,
			"seats %s are not contiguous in a single row", formatSeats(seats))
	}

	ticket, err := s.tickets.CreateForShowtime(ctx, showtimeID, func(locked *domain.Showtime) (*domain.Ticket, error) {
		now := s.now()

		if occupied := domain.OccupiedSeats(seats, locked.Tickets, now, s.expiry); len(occupied) > 0 {
			return nil, domain.NewValidationError(domain.ReasonSeatsUnavailable,
				"seats %s are not available", formatSeats(occupied))
		}

		return domain.NewTicket(showtimeID, seats, now), nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "showtime", ID: strconv.Itoa(showtimeID)}
		}
		return nil, err
	}

	s.logger.Info("seats reserved", "showtime_id", showtimeID, "ticket_id", ticket.ID)

	return &ReservationSummary{
		ReservationID: ticket.ID,
		MovieTitle:    showtime.Movie.Title,
		SeatsCount:    len(ticket.Seats),
		Seats:         ticket.Seats,
		AuditoriumID:  showtime.AuditoriumID,
		SessionDate:   showtime.SessionDate,
	}, nil
}
