package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Response is what the validator needs from an HTTP response. The body must
// already be fully read.
type Response interface {
	StatusCode() int
	Body() []byte
	URL() string
}

// RawResponse is a plain Response value. Headers is optional and is exposed
// through Error.Header.
type RawResponse struct {
	Status     int
	Content    []byte
	RequestURL string
	Headers    http.Header
}

func (r RawResponse) StatusCode() int     { return r.Status }
func (r RawResponse) Body() []byte        { return r.Content }
func (r RawResponse) URL() string         { return r.RequestURL }
func (r RawResponse) Header() http.Header { return r.Headers }

// Validator classifies responses and builds *Error values for failures.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	log    *zap.Logger
	strict bool
}

type ValidatorOption func(*Validator)

// WithLogger sets the logger failures are reported to (at debug level).
func WithLogger(l *zap.Logger) ValidatorOption {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithStrictKinds makes unknown error ids fail with *ResolveError instead of
// an *Error of KindUnknown.
func WithStrictKinds() ValidatorOption {
	return func(v *Validator) { v.strict = true }
}

func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{log: zap.NewNop()}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Successful reports whether status is in the non-error range [200, 399].
func Successful(status int) bool {
	return status >= 200 && status <= 399
}

// Validate returns nil for successful responses. Otherwise it decodes the
// body and returns an *Error, a *ResolveError (strict mode, unknown id) or
// an error wrapping ErrMalformedBody.
func (v *Validator) Validate(resp Response) error {
	status := resp.StatusCode()
	if Successful(status) {
		return nil
	}
	url := resp.URL()

	err := v.fromBody(resp, status, url)
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("url", url),
	}
	var (
		apiErr *Error
		resErr *ResolveError
	)
	switch {
	case errors.As(err, &apiErr):
		fields = append(fields, zap.String("id", apiErr.ID), zap.Stringer("kind", apiErr.Kind))
	case errors.As(err, &resErr):
		fields = append(fields, zap.String("id", resErr.ID), zap.Error(err))
	default:
		fields = append(fields, zap.Error(err))
	}
	v.log.Debug("yelp api call failed", fields...)
	return err
}

func (v *Validator) fromBody(resp Response, status int, url string) error {
	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("status %d: %w: body is not valid json", status, ErrMalformedBody)
	}
	obj := gjson.GetBytes(body, "error")
	if !obj.IsObject() {
		return fmt.Errorf("status %d: %w: no error object", status, ErrMalformedBody)
	}
	idRes := obj.Get("id")
	if idRes.Type != gjson.String {
		return fmt.Errorf("status %d: %w: error.id is not a string", status, ErrMalformedBody)
	}
	id := idRes.String()

	kind, ok := Lookup(id)
	if !ok {
		if v.strict {
			return &ResolveError{ID: id, URL: url}
		}
		kind = KindUnknown
	}

	// UseNumber so ids and counts aren't forced through float64
	dec := json.NewDecoder(strings.NewReader(obj.Raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("status %d: %w: %w", status, ErrMalformedBody, err)
	}

	return &Error{
		Kind:    kind,
		ID:      id,
		Message: composeMessage(obj, url),
		Payload: payload,
		URL:     url,
		Status:  status,
		Resp:    resp,
	}
}

// composeMessage renders "k1: v1, k2: v2\nurl: <url>" keeping the order the
// keys had in the body. A repeated key keeps its first position and takes the
// last value, same as Payload.
func composeMessage(obj gjson.Result, url string) string {
	var (
		keys []string
		vals = make(map[string]string)
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := vals[k]; !seen {
			keys = append(keys, k)
		}
		vals[k] = renderValue(value)
		return true
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+vals[k])
	}
	return strings.Join(parts, ", ") + "\nurl: " + url
}

func renderValue(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
)

// Default returns the shared validator used by CheckForError.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// CheckForError validates resp with the shared default validator.
func CheckForError(resp Response) error {
	return Default().Validate(resp)
}
