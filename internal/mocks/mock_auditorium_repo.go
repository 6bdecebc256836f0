package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

type MockAuditoriumRepo struct {
	domain.AuditoriumRepository
	GetByIdFunc func(ctx context.Context, id int) (*domain.Auditorium, error)
}

func (m *MockAuditoriumRepo) GetById(ctx context.Context, id int) (*domain.Auditorium, error) {
	return m.GetByIdFunc(ctx, id)
}
