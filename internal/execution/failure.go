// Package execution
package execution

import (
	"errors"
	"fmt"

	"github.com/asharan/futbot/internal/venue"
)

// FailureKind is the uniform classification every front end renders.
type FailureKind string

const (
	// NetworkFailure is a transient transport problem; the caller may retry.
	NetworkFailure FailureKind = "NETWORK_FAILURE"
	// AuthFailure means the credentials were rejected; fatal for the session.
	AuthFailure FailureKind = "AUTH_FAILURE"
	// VenueRejection means the venue understood the request and declined it.
	VenueRejection FailureKind = "VENUE_REJECTION"
	// AlreadyTerminal reports cancellation of an order the venue no longer
	// holds open. The venue's "unknown order" answer cannot distinguish
	// never-existed from already-resolved, so it is surfaced as its own kind.
	AlreadyTerminal FailureKind = "ALREADY_TERMINAL"
	// UnknownStatus means the response shape was not understood (contract drift).
	UnknownStatus FailureKind = "UNKNOWN_STATUS"
)

// Failure is the typed result of any venue operation that did not
// succeed. The core never swallows or retries; rendering is the
// front end's job.
type Failure struct {
	Kind    FailureKind
	Code    int64 // venue error code, zero unless the venue answered
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Code != 0 {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.Code, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// AsFailure extracts the classified failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Venue error codes that drive classification.
const (
	codeInvalidSignature = -1022
	codeUnknownOrder     = -2011
	codeNoSuchOrder      = -2013
	codeBadAPIKeyFormat  = -2014
	codeRejectedAPIKey   = -2015
)

func classify(err error) *Failure {
	var ve *venue.Error
	if errors.As(err, &ve) {
		switch ve.Code {
		case codeInvalidSignature, codeBadAPIKeyFormat, codeRejectedAPIKey:
			return &Failure{Kind: AuthFailure, Code: ve.Code, Message: ve.Message, Err: err}
		}
		return &Failure{Kind: VenueRejection, Code: ve.Code, Message: ve.Message, Err: err}
	}
	var us *venue.UnknownStatusError
	if errors.As(err, &us) {
		return &Failure{Kind: UnknownStatus, Message: us.Error(), Err: err}
	}
	return &Failure{Kind: NetworkFailure, Message: err.Error(), Err: err}
}

// classifyCancel additionally folds the venue's not-found answers into
// AlreadyTerminal. Only the cancel path gets this treatment; a status
// probe for a missing order stays a plain rejection.
func classifyCancel(err error) *Failure {
	var ve *venue.Error
	if errors.As(err, &ve) {
		switch ve.Code {
		case codeUnknownOrder, codeNoSuchOrder:
			return &Failure{Kind: AlreadyTerminal, Code: ve.Code, Message: ve.Message, Err: err}
		}
	}
	return classify(err)
}
