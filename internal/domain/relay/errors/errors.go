// Package errors contains domain-specific errors for the relay domain
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/Conte777/mediarelay/pkg/errors"
)

// Domain errors for relay operations
var (
	ErrUnsupportedMediaKind = pkgerrors.NewValidationError("unsupported media type")
	ErrInvalidLink          = pkgerrors.NewValidationError("invalid link")
	ErrNoCandidates         = pkgerrors.NewValidationError("no candidate urls")
	ErrEmptyMessage         = pkgerrors.NewValidationError("message text cannot be empty")
)

// ResolutionError is returned when a short link could not be resolved
type ResolutionError struct {
	Link string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve the redirect for %s: %v", e.Link, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// CandidateFailure describes why one mirror candidate was skipped
type CandidateFailure struct {
	URL        string
	StatusCode int
	Size       int
	Err        error
}

func (f CandidateFailure) String() string {
	switch {
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.URL, f.Err)
	case f.StatusCode != 0 && (f.StatusCode < 200 || f.StatusCode > 299):
		return fmt.Sprintf("%s: HTTP %d", f.URL, f.StatusCode)
	default:
		return fmt.Sprintf("%s: unusually small file (%d bytes)", f.URL, f.Size)
	}
}

// FetchExhaustedError is returned when every mirror candidate failed
type FetchExhaustedError struct {
	Attempts []CandidateFailure
}

func (e *FetchExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.String())
	}
	return "failed to fetch file from all provided URLs: " + strings.Join(parts, "; ")
}

// DeliverySendError is returned when the Bot API rejected an upload
type DeliverySendError struct {
	Method string
	Err    error
}

func (e *DeliverySendError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Method, e.Err)
}

func (e *DeliverySendError) Unwrap() error {
	return e.Err
}
