package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrDuplicateShowtime = errors.New("showtime already exists")
)

// ValidationReason identifies the business rule a request violated.
type ValidationReason string

const (
	ReasonNoSeats              ValidationReason = "no_seats"
	ReasonSeatsNotInAuditorium ValidationReason = "seats_not_in_auditorium"
	ReasonSeatsUnavailable     ValidationReason = "seats_unavailable"
	ReasonSeatsNotContiguous   ValidationReason = "seats_not_contiguous"
	ReasonAlreadyPaid          ValidationReason = "already_paid"
	ReasonExpired              ValidationReason = "expired"
)

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(reason ValidationReason, format string, args ...any) *ValidationError {
	return &ValidationError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}
