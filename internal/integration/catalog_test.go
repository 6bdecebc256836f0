package integration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/metinatakli/cinema-booking/internal/domain"
)

// FakeCatalog serves the REST movie catalog from memory. Taking it down makes every
// request fail with 503.
type FakeCatalog struct {
	server *httptest.Server
	apiKey string

	mu     sync.Mutex
	movies map[string]domain.CatalogMovie
	down   bool
	calls  atomic.Int64
}

func newFakeCatalog(apiKey string) *FakeCatalog {
	c := &FakeCatalog{apiKey: apiKey}
	c.Reset()
	c.server = httptest.NewServer(http.HandlerFunc(c.serveMovie))

	return c
}

func (c *FakeCatalog) URL() string {
	return c.server.URL
}

func (c *FakeCatalog) Close() {
	c.server.Close()
}

func (c *FakeCatalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.movies = map[string]domain.CatalogMovie{
		TestMovieImdbID: defaultTestMovie(),
	}
	c.down = false
	c.calls.Store(0)
}

func (c *FakeCatalog) SetDown(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.down = down
}

func (c *FakeCatalog) Calls() int64 {
	return c.calls.Load()
}

func (c *FakeCatalog) serveMovie(w http.ResponseWriter, r *http.Request) {
	c.calls.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.down {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if r.Header.Get("X-Apikey") != c.apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, ok := strings.CutPrefix(r.URL.Path, "/v1/movies/")
	if !ok || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	movie, ok := c.movies[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(movie)
}

func defaultTestMovie() domain.CatalogMovie {
	return domain.CatalogMovie{
		ID:         TestMovieImdbID,
		Rank:       "1",
		Title:      TestMovieTitle,
		FullTitle:  TestMovieFullTitle,
		Year:       TestMovieYear,
		Crew:       TestMovieCrew,
		ImDbRating: TestMovieRating,
	}
}
