package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/metinatakli/cinema-booking/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPClient talks to the catalog REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a REST catalog client. The API key is sent as a default header on
// every request. A nil httpClient gets a traced client without its own timeout; callers bound
// each call through the context.
func NewHTTPClient(baseURL, apiKey string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	base := httpClient.Transport
	if base == nil {
		base = otelhttp.NewTransport(http.DefaultTransport)
	}

	headers := http.Header{}
	headers.Set(apiKeyHeader, apiKey)
	headers.Set("Accept", "application/json")

	client := *httpClient
	client.Transport = &defaultHeaderTransport{base: base, headers: headers}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &client,
	}
}

func (c *HTTPClient) FetchById(ctx context.Context, id string) (*domain.CatalogMovie, error) {
	endpoint := fmt.Sprintf("%s/v1/movies/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: "GetById", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GetById", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Op: "GetById", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var movie domain.CatalogMovie

	err = json.NewDecoder(resp.Body).Decode(&movie)
	if err != nil {
		return nil, &TransportError{Op: "GetById", Err: fmt.Errorf("decode movie: %w", err)}
	}

	// A 2xx with a null or empty body must not pass for a movie.
	if movie.ID == "" {
		return nil, &TransportError{Op: "GetById", Err: errEmptyMovie}
	}

	return &movie, nil
}

type defaultHeaderTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *defaultHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	for key, values := range t.headers {
		if req.Header.Get(key) == "" {
			req.Header[key] = values
		}
	}

	return t.base.RoundTrip(req)
}
