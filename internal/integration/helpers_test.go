package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// keysToIgnore holds fields that differ between runs.
var keysToIgnore = map[string]struct{}{
	"timestamp":     {},
	"requestId":     {},
	"reservationId": {},
	"ticketId":      {},
	"sessionDate":   {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func serve(app *TestApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func truncateBookings(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(),
		"TRUNCATE TABLE ticket_seats, tickets, showtimes, movies RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func flushCache(t testing.TB, rdb *redis.Client) {
	require.NoError(t, rdb.FlushDB(context.Background()).Err())
}

// insertShowtime stores the default test movie and a showtime for it, bypassing the catalog.
func insertShowtime(t testing.TB, db *pgxpool.Pool, auditoriumID int, sessionDate time.Time) int {
	ctx := context.Background()

	var movieID int
	err := db.QueryRow(ctx, `
		INSERT INTO movies (imdb_id, title, stars, release_date, rating)
		VALUES ($1, $2, $3, make_date(1994, 1, 1), 9.2)
		RETURNING id`,
		TestMovieImdbID, TestMovieTitle, TestMovieCrew,
	).Scan(&movieID)
	require.NoError(t, err)

	var showtimeID int
	err = db.QueryRow(ctx, `
		INSERT INTO showtimes (movie_id, imdb_id, auditorium_id, session_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		movieID, TestMovieImdbID, auditoriumID, sessionDate,
	).Scan(&showtimeID)
	require.NoError(t, err)

	return showtimeID
}

// insertTicket stores a hold created at createdTime on the given seats of auditorium 1.
func insertTicket(t testing.TB, db *pgxpool.Pool, showtimeID int, paid bool, createdTime time.Time, seats ...domain.Seat) uuid.UUID {
	return insertTicketWithID(t, db, uuid.New(), showtimeID, paid, createdTime, seats...)
}

func insertTicketWithID(
	t testing.TB,
	db *pgxpool.Pool,
	id uuid.UUID,
	showtimeID int,
	paid bool,
	createdTime time.Time,
	seats ...domain.Seat) uuid.UUID {

	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO tickets (id, showtime_id, paid, created_time) VALUES ($1, $2, $3, $4)",
		id, showtimeID, paid, createdTime)
	require.NoError(t, err)

	rows := make([][]any, len(seats))
	for i, seat := range seats {
		rows[i] = []any{id, TestAuditoriumID, seat.Row, seat.SeatNumber}
	}

	_, err = db.CopyFrom(ctx,
		pgx.Identifier{"ticket_seats"},
		[]string{"ticket_id", "auditorium_id", "seat_row", "seat_number"},
		pgx.CopyFromRows(rows))
	require.NoError(t, err)

	return id
}

func countRows(t testing.TB, db *pgxpool.Pool, table string) int {
	var count int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count)
	require.NoError(t, err)

	return count
}
