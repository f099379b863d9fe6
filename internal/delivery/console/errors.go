package console

import (
	"context"
	"errors"

	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/service"
	pkgErrors "github.com/vogiaan1904/eventease/pkg/errors"
)

var errExit = errors.New("exit requested")

var (
	errInvalidName        = pkgErrors.NewBusinessError("USR001", "Name cannot be empty. Please enter a valid name.")
	errNameTaken          = pkgErrors.NewBusinessError("USR002", "This name is already registered! Please choose a different name.")
	errInvalidTicket      = pkgErrors.NewBusinessError("USR003", "Invalid ticket code. Must be between 0000-9999.")
	errInvalidCredentials = pkgErrors.NewBusinessError("USR004", "Invalid credentials. Name or ticket code does not match.")
	errTooManyAttempts    = pkgErrors.NewBusinessError("USR005", "Too many login attempts. Please wait a moment and try again.")
	errTicketExhausted    = pkgErrors.NewBusinessError("USR006", "Error: Unable to generate unique ticket code. Please try again later.")

	errSessionExpired = pkgErrors.NewBusinessError("SES001", "Your session has expired. Please log in again.")
	errSessionInvalid = pkgErrors.NewBusinessError("SES002", "Your session is no longer valid. Please log in again.")
	errNotAuthorized  = pkgErrors.NewBusinessError("SES003", "You are not allowed to do that.")

	errEventNotFound   = pkgErrors.NewBusinessError("EVT002", "Invalid Event ID")
	errBookingNotFound = pkgErrors.NewBusinessError("BKG001", "No booking found for that event.")

	errStoreUnavailable = pkgErrors.NewBusinessError("STO001", "Error: Unable to access the data files.")
	errInternal         = pkgErrors.NewBusinessError("SYS001", "Something went wrong. Please try again.")
)

func (h *Handler) mapError(ctx context.Context, err error) *pkgErrors.BusinessError {
	var be *pkgErrors.BusinessError
	switch {
	case errors.As(err, &be):
		return be
	case errors.Is(err, service.ErrInvalidName):
		return errInvalidName
	case errors.Is(err, service.ErrNameTaken):
		return errNameTaken
	case errors.Is(err, service.ErrInvalidTicket):
		return errInvalidTicket
	case errors.Is(err, service.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, service.ErrTooManyAttempts):
		return errTooManyAttempts
	case errors.Is(err, errs.ErrTicketExhausted):
		return errTicketExhausted
	case errors.Is(err, errs.ErrSessionExpired):
		return errSessionExpired
	case errors.Is(err, errs.ErrSessionInvalid):
		return errSessionInvalid
	case errors.Is(err, service.ErrNotAuthorized):
		return errNotAuthorized
	case errors.Is(err, service.ErrInvalidEvent):
		// The service error carries which rule was broken.
		return pkgErrors.NewBusinessError("EVT001", "Invalid event details ("+err.Error()+").")
	case errors.Is(err, service.ErrEventNotFound):
		return errEventNotFound
	case errors.Is(err, service.ErrBookingNotFound):
		return errBookingNotFound
	case service.IsStoreError(err):
		h.l.Errorf(ctx, "console.mapError: %v", err)
		return errStoreUnavailable
	default:
		h.l.Errorf(ctx, "console.mapError: unexpected error: %v", err)
		return errInternal
	}
}
