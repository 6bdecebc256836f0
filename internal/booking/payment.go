package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

const StatusPaymentProcessed = "Payment Processed"

type PaymentSummary struct {
	TicketID     uuid.UUID
	Seats        []domain.Seat
	MovieTitle   string
	SessionDate  time.Time
	AuditoriumID int
	Status       string
}

// ConfirmPayment marks a pending hold as paid. A paid ticket is reported as already
// paid no matter how old it is.
func (s *Service) ConfirmPayment(ctx context.Context, ticketID uuid.UUID) (*PaymentSummary, error) {
	ticket, err := s.tickets.GetById(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: "ticket", ID: ticketID.String()}
		}
		return nil, err
	}

	if ticket.Paid {
		return nil, alreadyPaidError(ticketID)
	}

	if ticket.Expired(s.now(), s.expiry) {
		return nil, expiredError(ticketID)
	}

	// Checked again under the showtime lock: a hold that lapses before the lock is
	// taken may already have lost its seats to a newer reservation.
	err = s.tickets.ConfirmPayment(ctx, ticket, func(locked *domain.Ticket) error {
		if locked.Paid {
			return domain.ErrEditConflict
		}
		if locked.Expired(s.now(), s.expiry) {
			return expiredError(ticketID)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEditConflict):
			return nil, alreadyPaidError(ticketID)
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, &domain.NotFoundError{Entity: "ticket", ID: ticketID.String()}
		}
		return nil, err
	}

	showtime, err := s.showtimes.GetWithMovie(ctx, ticket.ShowtimeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment processed", "ticket_id", ticketID, "showtime_id", ticket.ShowtimeID)

	return &PaymentSummary{
		TicketID:     ticket.ID,
		Seats:        ticket.Seats,
		MovieTitle:   showtime.Movie.Title,
		SessionDate:  showtime.SessionDate,
		AuditoriumID: showtime.AuditoriumID,
		Status:       StatusPaymentProcessed,
	}, nil
}

func alreadyPaidError(ticketID uuid.UUID) *domain.ValidationError {
	return domain.NewValidationError(domain.ReasonAlreadyPaid, "reservation %s is already paid", ticketID)
}

func expiredError(ticketID uuid.UUID) *domain.ValidationError {
	return domain.NewValidationError(domain.ReasonExpired, "reservation %s has expired", ticketID)
}
