package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bodrovis/yelpex/apierr"
)

// defaultErrCap bounds how much of a response body is read for validation.
// Yelp's signature errors echo the whole signature base string, so this is
// well above a typical error body.
const defaultErrCap = 1 << 20

// ErrBodyTooLarge is returned by FromHTTP when the body exceeds
// defaultErrCap. A cut body can't be classified.
var ErrBodyTooLarge = errors.New("client: error body exceeds cap")

// FromHTTP reads resp's body (at most defaultErrCap bytes), closes it, and
// returns a value the apierr validator understands.
func FromHTTP(resp *http.Response) (apierr.RawResponse, error) {
	if resp == nil {
		return apierr.RawResponse{}, errors.New("from http: nil response")
	}

	var url string
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}

	var body []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		// one byte past the cap tells truncation apart from an exact fit
		b, err := io.ReadAll(io.LimitReader(resp.Body, defaultErrCap+1))
		if err != nil {
			return apierr.RawResponse{}, fmt.Errorf("from http: read body: %w", err)
		}
		if len(b) > defaultErrCap {
			return apierr.RawResponse{}, fmt.Errorf("from http: status %d, %s: %w", resp.StatusCode, url, ErrBodyTooLarge)
		}
		body = b
	}

	return apierr.RawResponse{
		Status:     resp.StatusCode,
		Content:    body,
		RequestURL: url,
		Headers:    resp.Header,
	}, nil
}

// Check validates resp with the shared default validator. The body is
// consumed either way.
func Check(resp *http.Response) error {
	raw, err := FromHTTP(resp)
	if err != nil {
		return err
	}
	return apierr.CheckForError(raw)
}
