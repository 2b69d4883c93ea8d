package booking

import (
	"errors"
	"fmt"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

var (
	ErrLocked         = errors.New("booking is locked")
	ErrSubmitting     = errors.New("submission in progress")
	ErrBusy           = errors.New("operation already in progress")
	ErrClosed         = errors.New("draft is closed")
	ErrDraftNotFound  = errors.New("draft not found")
	ErrForbidden      = errors.New("forbidden")
	ErrRowIndex       = errors.New("row index out of range")
	ErrUnknownRowKind = errors.New("unknown row kind")
	ErrUnknownField   = errors.New("unknown row field")
)

// Messages shown to the user when the backend gives nothing better.
const (
	msgPNRFailed      = "PNR fetch failed"
	msgSubmitFailed   = "Failed to create booking"
	msgTransportError = "Network/Server error"
)

// ValidationError is a missing or malformed input caught before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RemoteRejection is a non-2xx answer from the backend.
type RemoteRejection struct {
	Status  int
	Message string
}

func (e *RemoteRejection) Error() string { return e.Message }

// TransportFailure is a network or decode failure talking to the backend.
type TransportFailure struct {
	Message string
	Err     error
}

func (e *TransportFailure) Error() string { return e.Message }

func (e *TransportFailure) Unwrap() error { return e.Err }

// remoteError classifies a backend client error.
func remoteError(err error, fallback string) error {
	if se, ok := backend.IsStatus(err); ok {
		msg := se.Message
		if msg == "" {
			msg = fallback
		}
		return &RemoteRejection{Status: se.Status, Message: msg}
	}
	return &TransportFailure{Message: msgTransportError, Err: err}
}

func rowIndexError(kind model.RowKind, index, n int) error {
	return fmt.Errorf("%w: %s[%d] (len %d)", ErrRowIndex, kind, index, n)
}
