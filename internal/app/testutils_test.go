package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/metinatakli/cinema-booking/internal/mocks"
	"github.com/metinatakli/cinema-booking/internal/validator"
)

type testDeps struct {
	showtimeRepo   *mocks.MockShowtimeRepo
	auditoriumRepo *mocks.MockAuditoriumRepo
	ticketRepo     *mocks.MockTicketRepo
	movies         *mocks.MockMovieProvider
}

func newTestDeps() *testDeps {
	return &testDeps{
		showtimeRepo: new(mocks.MockShowtimeRepo),
		auditoriumRepo: &mocks.MockAuditoriumRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Auditorium, error) {
				return testAuditorium, nil
			},
		},
		ticketRepo: new(mocks.MockTicketRepo),
		movies:     new(mocks.MockMovieProvider),
	}
}

func (d *testDeps) assertExpectations(t *testing.T) {
	d.showtimeRepo.AssertExpectations(t)
	d.ticketRepo.AssertExpectations(t)
	d.movies.AssertExpectations(t)
}

func newTestApplication(deps *testDeps) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Application{
		config:    Config{Env: "test"},
		logger:    logger,
		validator: validator.NewValidator(),
		booking: booking.NewService(
			deps.showtimeRepo,
			deps.auditoriumRepo,
			deps.ticketRepo,
			deps.movies,
			logger,
		),
		movies: deps.movies,
	}
}

var testAuditorium = &domain.Auditorium{
	ID: 1,
	Seats: []domain.Seat{
		{Row: 1, SeatNumber: 1}, {Row: 1, SeatNumber: 2}, {Row: 1, SeatNumber: 3},
		{Row: 1, SeatNumber: 4}, {Row: 1, SeatNumber: 5},
		{Row: 2, SeatNumber: 1}, {Row: 2, SeatNumber: 2},
	},
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch b := body.(type) {
	case nil:
		reader = http.NoBody
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

type errorExpectation struct {
	wantStatus     int
	wantErrMessage string
	wantReason     string
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt errorExpectation) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch {
	case tt.wantStatus == http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	case tt.wantReason != "":
		var businessResp api.BusinessErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&businessResp); err != nil {
			t.Fatalf("Failed to decode business error response: %v", err)
		}

		if businessResp.Reason != tt.wantReason {
			t.Errorf("Reason = %v, want %v", businessResp.Reason, tt.wantReason)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}
