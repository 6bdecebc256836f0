package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

const apiKeyHeader = "X-Apikey"

var (
	ErrUnknownProtocol   = errors.New("unknown catalog protocol")
	ErrSearchUnsupported = errors.New("catalog search is not supported by the configured transport")
	ErrListUnsupported   = errors.New("catalog listing is not supported by the configured transport")
	ErrUnavailable       = errors.New("catalog is unavailable")

	errEmptyMovie = errors.New("catalog returned an empty movie")
)

// Client fetches a single movie from the external catalog.
type Client interface {
	FetchById(ctx context.Context, id string) (*domain.CatalogMovie, error)
}

// Searcher is implemented by transports that can search the catalog.
type Searcher interface {
	Search(ctx context.Context, text string) (*domain.CatalogMovie, error)
}

// Lister is implemented by transports that can list the whole catalog.
type Lister interface {
	GetAll(ctx context.Context) ([]domain.CatalogMovie, error)
}

// TransportError reports a failed call to the catalog, whatever the transport.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Config struct {
	Protocol    string
	HTTPBaseURL string
	GRPCAddr    string
	APIKey      string
	CAFile      string
	Timeout     time.Duration
}

// NewClient builds the catalog client for the configured protocol token.
// "http" and "plain" select REST, "grpc", "https", "secure" and "encrypted" select gRPC over TLS.
func NewClient(cfg Config, logger *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("catalog API key is not configured")
	}

	switch strings.ToLower(cfg.Protocol) {
	case "http", "plain":
		if cfg.HTTPBaseURL == "" {
			return nil, errors.New("catalog HTTP base URL is not configured")
		}
		logger.Info("using REST catalog client", "base_url", cfg.HTTPBaseURL)

		return NewHTTPClient(cfg.HTTPBaseURL, cfg.APIKey, nil), nil
	case "grpc", "https", "secure", "encrypted":
		if cfg.GRPCAddr == "" {
			return nil, errors.New("catalog gRPC address is not configured")
		}
		logger.Info("using gRPC catalog client", "addr", cfg.GRPCAddr)

		client, err := NewGRPCClient(cfg.GRPCAddr, cfg.APIKey, WithCAFile(cfg.CAFile))
		if err != nil {
			return nil, err
		}

		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, cfg.Protocol)
	}
}
