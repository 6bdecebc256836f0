package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

const DefaultFetchTimeout = 3 * time.Second

// Cache stores catalog snapshots used when the catalog cannot be reached.
type Cache interface {
	Get(ctx context.Context, id string) (*domain.CatalogMovie, bool, error)
	Set(ctx context.Context, id string, movie *domain.CatalogMovie) error
}

// Provider fetches movies from the catalog and falls back to the last cached snapshot
// when the catalog fails. Transport errors never leave the provider.
type Provider struct {
	client  Client
	cache   Cache
	timeout time.Duration
	logger  *slog.Logger
}

func NewProvider(client Client, cache Cache, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Provider{
		client:  client,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *Provider) GetMovie(ctx context.Context, id string) (*domain.CatalogMovie, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	movie, err := p.client.FetchById(fetchCtx, id)
	if err == nil {
		if cacheErr := p.cache.Set(ctx, id, movie); cacheErr != nil {
			p.logger.Warn("failed to cache movie", "movie_id", id, "error", cacheErr)
		}

		return movie, nil
	}

	p.logger.Warn("catalog fetch failed, trying cache", "movie_id", id, "error", err)

	cached, ok, cacheErr := p.cache.Get(ctx, id)
	if cacheErr != nil {
		p.logger.Error("failed to read movie cache", "movie_id", id, "error", cacheErr)
		return nil, &domain.NotFoundError{Entity: "movie", ID: id}
	}

	if !ok {
		p.logger.Error("movie not available in catalog nor cache", "movie_id", id)
		return nil, &domain.NotFoundError{Entity: "movie", ID: id}
	}

	return cached, nil
}

func (p *Provider) Search(ctx context.Context, text string) (*domain.CatalogMovie, error) {
	searcher, ok := p.client.(Searcher)
	if !ok {
		return nil, ErrSearchUnsupported
	}

	searchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	movie, err := searcher.Search(searchCtx, text)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			p.logger.Warn("catalog search failed", "text", text, "error", err)
			return nil, &domain.NotFoundError{Entity: "movie", ID: text}
		}
		return nil, err
	}

	return movie, nil
}

// ListMovies returns every movie the catalog knows about. The list is not cached,
// so a failing catalog surfaces as ErrUnavailable.
func (p *Provider) ListMovies(ctx context.Context) ([]domain.CatalogMovie, error) {
	lister, ok := p.client.(Lister)
	if !ok {
		return nil, ErrListUnsupported
	}

	listCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	movies, err := lister.GetAll(listCtx)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			p.logger.Warn("catalog listing failed", "error", err)
			return nil, ErrUnavailable
		}
		return nil, err
	}

	return movies, nil
}
