package errors

import "errors"

var (
	// ErrStoreUnavailable means a store file could not be opened in the
	// mode an operation needs.
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("record not found")
	ErrTicketExhausted  = errors.New("no free ticket code found")
	// ErrMalformedInput marks a line that does not parse. Scans skip such
	// lines; it is only ever logged.
	ErrMalformedInput = errors.New("malformed record")
)
