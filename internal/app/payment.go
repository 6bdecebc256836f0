package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-booking/api"
)

func (app *Application) ConfirmPaymentHandler(w http.ResponseWriter, r *http.Request, reservationID uuid.UUID) {
	payment, err := app.booking.ConfirmPayment(r.Context(), reservationID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("payment confirmed", "ticket_id", payment.TicketID)

	resp := api.PaymentResponse{
		TicketId:     payment.TicketID,
		Seats:        toApiSeats(payment.Seats),
		MovieTitle:   payment.MovieTitle,
		SessionDate:  payment.SessionDate,
		AuditoriumId: payment.AuditoriumID,
		Status:       payment.Status,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
