package service

import (
	"errors"

	errs "github.com/vogiaan1904/eventease/internal/errors"
)

var (
	ErrInvalidName        = errors.New("name must not be blank or span several lines")
	ErrNameTaken          = errors.New("name already registered")
	ErrInvalidTicket      = errors.New("ticket code must be between 0000 and 9999")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrNotAuthorized = errors.New("not authorized")

	ErrInvalidEvent    = errors.New("invalid event")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// IsStoreError reports whether err came from a store file that could not be
// opened.
func IsStoreError(err error) bool {
	return errors.Is(err, errs.ErrStoreUnavailable)
}
