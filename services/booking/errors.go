package booking

import (
	"errors"
	"fmt"
)

// Error codes for the scheduling core. The boundary layer maps these to
// transport status codes.
const (
	CodeValidation          = "validationError"
	CodeNotFound            = "notFoundError"
	CodeConflict            = "conflictError"
	CodeBatchExhausted      = "batchExhaustedError"
	CodeAlreadyCancelled    = "alreadyCancelledError"
	CodePermissionDenied    = "permissionDenied"
	CodeResourceUnavailable = "resourceUnavailable"
)

// BookingError is a coded service error.
type BookingError struct {
	Code    string
	Message string
	// ExistingID identifies the occupying booking for conflict errors.
	ExistingID string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

func NewConflictError(existingID string) error {
	return &BookingError{
		Code:       CodeConflict,
		Message:    "the requested slot is already occupied",
		ExistingID: existingID,
	}
}

func NewBatchExhaustedError() error {
	return &BookingError{
		Code:    CodeBatchExhausted,
		Message: "every candidate date conflicted; no occurrences were created",
	}
}

func NewAlreadyCancelledError(bookingID string) error {
	return &BookingError{
		Code:    CodeAlreadyCancelled,
		Message: fmt.Sprintf("booking %s is already cancelled", bookingID),
	}
}

func NewPermissionDeniedError(msg string) error {
	return &BookingError{Code: CodePermissionDenied, Message: msg}
}

func NewResourceUnavailableError(resourceID, status string) error {
	return &BookingError{
		Code:    CodeResourceUnavailable,
		Message: fmt.Sprintf("resource %s is not accepting bookings (status: %s)", resourceID, status),
	}
}

// CodeOf returns the error code, or empty for non-service errors.
func CodeOf(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
