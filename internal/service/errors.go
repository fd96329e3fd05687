package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a suggestion request failed
type ErrorKind string

const (
	KindInvalidInput         ErrorKind = "InvalidInput"
	KindConfiguration        ErrorKind = "ConfigurationError"
	KindRateLimited          ErrorKind = "RateLimited"
	KindQuotaExceeded        ErrorKind = "QuotaExceeded"
	KindUpstream             ErrorKind = "UpstreamError"
	KindEmptyResponse        ErrorKind = "EmptyResponse"
	KindMalformedSuggestions ErrorKind = "MalformedSuggestions"
)

// Messages shown to the end user. They never contain upstream payloads.
const (
	MsgInvalidInput         = "Please provide ingredients"
	MsgConfiguration        = "AI service configuration error"
	MsgRateLimited          = "Too many requests. Please try again in a moment."
	MsgQuotaExceeded        = "AI service limit reached. Please contact support."
	MsgUpstream             = "AI service error. Please try again."
	MsgEmptyResponse        = "Failed to generate recipes"
	MsgMalformedSuggestions = "Failed to parse recipe suggestions"
	MsgUnexpected           = "An unexpected error occurred"
)

var kindDetails = map[ErrorKind]struct {
	message string
	status  int
}{
	KindInvalidInput:         {MsgInvalidInput, http.StatusBadRequest},
	KindConfiguration:        {MsgConfiguration, http.StatusInternalServerError},
	KindRateLimited:          {MsgRateLimited, http.StatusTooManyRequests},
	KindQuotaExceeded:        {MsgQuotaExceeded, http.StatusPaymentRequired},
	KindUpstream:             {MsgUpstream, http.StatusInternalServerError},
	KindEmptyResponse:        {MsgEmptyResponse, http.StatusInternalServerError},
	KindMalformedSuggestions: {MsgMalformedSuggestions, http.StatusInternalServerError},
}

// HTTPStatus is the status the service boundary answers with for this kind
func (k ErrorKind) HTTPStatus() int {
	if d, ok := kindDetails[k]; ok {
		return d.status
	}
	return http.StatusInternalServerError
}

// Message is the fixed user-facing message for this kind
func (k ErrorKind) Message() string {
	if d, ok := kindDetails[k]; ok {
		return d.message
	}
	return MsgUnexpected
}

// SuggestionError is the single error type returned by SuggestionService
type SuggestionError struct {
	Kind ErrorKind
	// Message is safe to show to the end user
	Message string
	// StatusCode is the upstream HTTP status, when there was one
	StatusCode int
	// Cause stays server side
	Cause error
}

func (e *SuggestionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (upstream status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause of the error
func (e *SuggestionError) Unwrap() error { return e.Cause }

// HTTPStatus returns the status to answer the inbound request with
func (e *SuggestionError) HTTPStatus() int { return e.Kind.HTTPStatus() }

func newError(kind ErrorKind, cause error) *SuggestionError {
	return &SuggestionError{
		Kind:    kind,
		Message: kind.Message(),
		Cause:   cause,
	}
}

// KindOf extracts the ErrorKind from err
func KindOf(err error) (ErrorKind, bool) {
	var se *SuggestionError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a SuggestionError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
