package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-booking/api"
	"github.com/metinatakli/cinema-booking/internal/domain"
	appvalidator "github.com/metinatakli/cinema-booking/internal/validator"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The requested method is not supported for this resource"
	ErrFailedValidation = "One or more fields have invalid values"
	ErrNotImplemented   = "The requested operation is not supported by the configured catalog"
	ErrCatalogDown      = "The movie catalog is currently unavailable"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

func (app *Application) baseErrorResponse(r *http.Request, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.sendError(w, r, status, app.baseErrorResponse(r, message))
}

func (app *Application) sendError(w http.ResponseWriter, r *http.Request, status int, resp any) {
	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) notFoundResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusNotFound, err.Error())
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) notImplementedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotImplemented, ErrNotImplemented)
}

func (app *Application) catalogUnavailableResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusServiceUnavailable, ErrCatalogDown)
}

func (app *Application) businessRuleResponse(w http.ResponseWriter, r *http.Request, err *domain.ValidationError) {
	resp := api.BusinessErrorResponse{
		ErrorResponse: app.baseErrorResponse(r, err.Message),
		Reason:        string(err.Reason),
	}

	app.sendError(w, r, http.StatusBadRequest, resp)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		ErrorResponse:    app.baseErrorResponse(r, ErrFailedValidation),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrs)),
	}

	for _, fieldErr := range validationErrs {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	app.sendError(w, r, http.StatusUnprocessableEntity, resp)
}

// domainErrorResponse translates the error types returned by the booking service.
func (app *Application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		validationErr *domain.ValidationError
	)

	switch {
	case errors.As(err, &notFoundErr):
		app.notFoundResponseWithErr(w, r, notFoundErr)
	case errors.As(err, &conflictErr):
		app.editConflictResponseWithErr(w, r, conflictErr)
	case errors.As(err, &validationErr):
		app.businessRuleResponse(w, r, validationErr)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
