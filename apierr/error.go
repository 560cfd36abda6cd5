// Package apierr turns failed Yelp API responses into typed errors. Every
// failure carries the API error id, a readable message, the decoded "error"
// payload and the request URL, so callers can branch on Kind and still log
// something useful.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed Yelp API call (or a client-side configuration problem
// of the same family). Use errors.As to get at the fields, or errors.Is with
// one of the Err* sentinels to match a kind.
type Error struct {
	// Kind is the resolved failure category.
	Kind Kind

	// ID is the wire id from the response body, e.g. "invalid_signature".
	// Empty for errors built with New.
	ID string

	// Message is "key: value" pairs of the error payload followed by the url
	// line, or the caller-supplied text for errors built with New.
	Message string

	// Payload is the decoded "error" object. Values keep their JSON types
	// (string, json.Number, bool, nil, map[string]any, []any); a repeated
	// key holds its last value.
	Payload map[string]any

	// URL is the request URL of the failed call.
	URL string

	// Status is the HTTP status, 0 when the error didn't come from a response.
	Status int

	// Resp is the validated response, nil for errors built with New. Its
	// body has already been read.
	Resp Response
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if msg := e.Kind.DefaultMessage(); msg != "" {
		return msg
	}
	if text := http.StatusText(e.Status); text != "" {
		return text
	}
	return e.Kind.String()
}

// Header returns the response headers (rate-limit info etc.) when the
// response carried them, nil otherwise.
func (e *Error) Header() http.Header {
	if h, ok := e.Resp.(interface{ Header() http.Header }); ok {
		return h.Header()
	}
	return nil
}

// Is reports kind equality. ErrBase matches every *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == KindBase || t.Kind == e.Kind
}

// New builds an error of the given kind directly, bypassing response
// validation. An empty msg falls back to the kind's default message.
func New(kind Kind, msg string) *Error {
	if msg == "" {
		msg = kind.DefaultMessage()
	}
	return &Error{Kind: kind, Message: msg}
}

// Sentinels for errors.Is matching, one per kind.
var (
	ErrUnknownKind             = &Error{Kind: KindUnknown}
	ErrBase                    = &Error{Kind: KindBase}
	ErrAlreadyConfigured       = &Error{Kind: KindAlreadyConfigured}
	ErrMissingAPIKeys          = &Error{Kind: KindMissingAPIKeys}
	ErrMissingLatLng           = &Error{Kind: KindMissingLatLng}
	ErrBoundingBoxNotComplete  = &Error{Kind: KindBoundingBoxNotComplete}
	ErrInternalError           = &Error{Kind: KindInternalError}
	ErrExceededRequests        = &Error{Kind: KindExceededRequests}
	ErrMissingParameter        = &Error{Kind: KindMissingParameter}
	ErrInvalidParameter        = &Error{Kind: KindInvalidParameter}
	ErrInvalidSignature        = &Error{Kind: KindInvalidSignature}
	ErrInvalidOAuthCredentials = &Error{Kind: KindInvalidOAuthCredentials}
	ErrInvalidOAuthUser        = &Error{Kind: KindInvalidOAuthUser}
	ErrAccountUnconfirmed      = &Error{Kind: KindAccountUnconfirmed}
	ErrUnavailableForLocation  = &Error{Kind: KindUnavailableForLocation}
	ErrAreaTooLarge            = &Error{Kind: KindAreaTooLarge}
	ErrMultipleLocations       = &Error{Kind: KindMultipleLocations}
	ErrBusinessUnavailable     = &Error{Kind: KindBusinessUnavailable}
)

// ErrMalformedBody is wrapped by Validate when a failed response's body is
// not JSON or lacks an "error" object with a string "id".
var ErrMalformedBody = errors.New("malformed error body")

// ResolveError is returned by a strict Validator when the API sends an error
// id with no matching Kind.
type ResolveError struct {
	ID  string
	URL string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("unknown error id %q (no kind named %s)", e.ID, ClassName(e.ID))
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// KindOf extracts the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnknown, false
}
