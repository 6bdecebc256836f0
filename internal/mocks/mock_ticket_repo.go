package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

// CreateForShowtime hands the showtime returned by the first argument to hold,
// mimicking the locked read done by the real repository.
func (m *MockTicketRepo) CreateForShowtime(
	ctx context.Context,
	showtimeID int,
	hold func(*domain.Showtime) (*domain.Ticket, error)) (*domain.Ticket, error) {

	args := m.Called(ctx, showtimeID)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	return hold(args.Get(0).(*domain.Showtime))
}

func (m *MockTicketRepo) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

// ConfirmPayment runs check against the ticket as seen under the lock: the passed
// ticket, or the one given as the second return value.
func (m *MockTicketRepo) ConfirmPayment(ctx context.Context, ticket *domain.Ticket, check func(*domain.Ticket) error) error {
	args := m.Called(ctx, ticket)
	if err := args.Error(0); err != nil {
		return err
	}

	locked := ticket
	if len(args) > 1 {
		locked = args.Get(1).(*domain.Ticket)
	}

	if err := check(locked); err != nil {
		return err
	}

	ticket.Paid = true

	return nil
}
