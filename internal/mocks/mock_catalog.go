package mocks

import (
	"context"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) FetchById(ctx context.Context, id string) (*domain.CatalogMovie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogMovie), args.Error(1)
}

// MockCatalogSearcher is a catalog client whose transport also supports search and listing.
type MockCatalogSearcher struct {
	MockCatalogClient
}

func (m *MockCatalogSearcher) Search(ctx context.Context, text string) (*domain.CatalogMovie, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogMovie), args.Error(1)
}

func (m *MockCatalogSearcher) GetAll(ctx context.Context) ([]domain.CatalogMovie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogMovie), args.Error(1)
}

type MockMovieCache struct {
	mock.Mock
}

func (m *MockMovieCache) Get(ctx context.Context, id string) (*domain.CatalogMovie, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.CatalogMovie), args.Bool(1), args.Error(2)
}

func (m *MockMovieCache) Set(ctx context.Context, id string, movie *domain.CatalogMovie) error {
	args := m.Called(ctx, id, movie)
	return args.Error(0)
}

type MockMovieProvider struct {
	mock.Mock
}

func (m *MockMovieProvider) GetMovie(ctx context.Context, id string) (*domain.CatalogMovie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogMovie), args.Error(1)
}

func (m *MockMovieProvider) Search(ctx context.Context, text string) (*domain.CatalogMovie, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogMovie), args.Error(1)
}

func (m *MockMovieProvider) ListMovies(ctx context.Context) ([]domain.CatalogMovie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogMovie), args.Error(1)
}
