package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/domain"
)

func (app *Application) ReserveSeatsHandler(w http.ResponseWriter, r *http.Request, showtimeID int) {
	logger := app.contextGetLogger(r)

	var input api.ReserveSeatsRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation, err := app.booking.Reserve(r.Context(), showtimeID, toDomainSeats(input.Seats))
	if err != nil {
		logger.Warn("reservation rejected", "showtime_id", showtimeID, "error", err)
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationResponse{
		ReservationId: reservation.ReservationID,
		MovieTitle:    reservation.MovieTitle,
		SeatsCount:    reservation.SeatsCount,
		Seats:         toApiSeats(reservation.Seats),
		AuditoriumId:  reservation.AuditoriumID,
		SessionDate:   reservation.SessionDate,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toDomainSeats(seats []api.Seat) []domain.Seat {
	result := make([]domain.Seat, len(seats))

	for i, s := range seats {
		result[i] = domain.Seat{Row: s.Row, SeatNumber: s.SeatNumber}
	}

	return result
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	result := make([]api.Seat, len(seats))

	for i, s := range seats {
		result[i] = api.Seat{Row: s.Row, SeatNumber: s.SeatNumber}
	}

	return result
}
