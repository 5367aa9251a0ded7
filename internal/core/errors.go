package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when a query carries no symptoms.  The
	// provider is never called in that case.
	ErrMissingInput = errors.New("missing symptoms")

	// ErrEmptyResponse means the provider produced nothing usable: a blank
	// reply, no choices, or a failed call (bad or absent credentials end up
	// here).
	ErrEmptyResponse = errors.New("empty completion response")

	// ErrParseFailure matches any *ParseError via errors.Is.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidEncoding is the cause recorded when the reply is not UTF-8.
	ErrInvalidEncoding = errors.New("reply is not valid UTF-8")
)

// MissingInputMessage is shown when the form is submitted without symptoms.
const MissingInputMessage = "Please provide your symptoms."

// ParseError carries the raw reply alongside the failure that interrupted
// section extraction.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error parsing response: %v. Raw response: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }

// UserMessage turns an Analyze error into the text rendered on the page.
// provider names the completion service in the empty-response message.
func UserMessage(err error, provider string) string {
	var perr *ParseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return MissingInputMessage
	case errors.Is(err, ErrEmptyResponse):
		if provider == "" {
			provider = "the completion"
		}
		return fmt.Sprintf("No response from %s API. Please check your API key, prompt, or try again.", provider)
	case errors.As(err, &perr):
		return perr.Error()
	default:
		return err.Error()
	}
}
