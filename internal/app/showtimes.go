package app

import (
	"net/http"

	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/booking"
)

func (app *Application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateShowtimeRequest

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

	showtime, err := app.booking.CreateShowtime(r.Context(), booking.CreateShowtimeInput{
		MovieID:      input.MovieId,
		AuditoriumID: input.AuditoriumId,
		SessionDate:  input.SessionDate,
	})
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeResponse{
		Id:           showtime.ID,
		MovieId:      showtime.MovieID,
		MovieTitle:   showtime.MovieTitle,
		SessionDate:  showtime.SessionDate,
		AuditoriumId: showtime.AuditoriumID,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
