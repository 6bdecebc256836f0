// Package api holds the JSON request and response bodies of the HTTP API.
package api

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

// BusinessErrorResponse is returned when a request breaks a booking rule. Reason is a
// stable machine readable code.
type BusinessErrorResponse struct {
	ErrorResponse
	Reason string `json:"reason"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	ErrorResponse
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Seat struct {
	Row        int16 `json:"row" validate:"min=1"`
	SeatNumber int16 `json:"seatNumber" validate:"min=1"`
}

type CreateShowtimeRequest struct {
	MovieId      string    `json:"movieId" validate:"required,max=32"`
	AuditoriumId int       `json:"auditoriumId" validate:"required,min=1"`
	SessionDate  time.Time `json:"sessionDate" validate:"required,notpast"`
}

type ShowtimeResponse struct {
	Id           int       `json:"id"`
	MovieId      string    `json:"movieId"`
	MovieTitle   string    `json:"movieTitle"`
	SessionDate  time.Time `json:"sessionDate"`
	AuditoriumId int       `json:"auditoriumId"`
}

type ReserveSeatsRequest struct {
	Seats []Seat `json:"seats" validate:"required,min=1,dive"`
}

type ReservationResponse struct {
	ReservationId uuid.UUID `json:"reservationId"`
	MovieTitle    string    `json:"movieTitle"`
	SeatsCount    int       `json:"seatsCount"`
	Seats         []Seat    `json:"seats"`
	AuditoriumId  int       `json:"auditoriumId"`
	SessionDate   time.Time `json:"sessionDate"`
}

type PaymentResponse struct {
	TicketId     uuid.UUID `json:"ticketId"`
	Seats        []Seat    `json:"seats"`
	MovieTitle   string    `json:"movieTitle"`
	SessionDate  time.Time `json:"sessionDate"`
	AuditoriumId int       `json:"auditoriumId"`
	Status       string    `json:"status"`
}

type CatalogMovieResponse struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	FullTitle  string `json:"fullTitle"`
	Year       string `json:"year"`
	Crew       string `json:"crew"`
	Image      string `json:"image"`
	ImDbRating string `json:"imDbRating"`
}

type CatalogMovieListResponse struct {
	Movies []CatalogMovieResponse `json:"movies"`
}

type MovieSearchParams struct {
	Text string `validate:"required,max=200"`
}
