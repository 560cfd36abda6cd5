package client_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bodrovis/yelpex/apierr"
	"github.com/bodrovis/yelpex/client"
	"github.com/jarcoal/httpmock"
)

const searchURL = "http://api.yelp.com/v2/search?term=food&location=San+Francisco"

// respond returns a responder that ties the request to the response, the
// way a real transport does.
func respond(status int, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(status, body)
		resp.Request = req
		return resp, nil
	}
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func TestCheck_Success(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", searchURL, respond(200, `{"businesses":[]}`))

	if err := client.Check(get(t, searchURL)); err != nil {
		t.Fatalf("Check() = %v, want nil", err)
	}
}

func TestCheck_InvalidSignature(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", searchURL, respond(400,
		`{"error":{"text":"Signature was invalid","id":"INVALID_SIGNATURE","description":"Invalid signature. Expected signature base string: GET&..."}}`))

	err := client.Check(get(t, searchURL))

	var e *apierr.Error
	if !errors.As(err, &e) {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if e.Kind != apierr.KindInvalidSignature {
		t.Fatalf("Kind = %v, want InvalidSignature", e.Kind)
	}
	if e.URL != searchURL {
		t.Fatalf("URL = %q, want %q", e.URL, searchURL)
	}
	want := "text: Signature was invalid, id: INVALID_SIGNATURE, description: Invalid signature. Expected signature base string: GET&...\nurl: " + searchURL
	if e.Message != want {
		t.Fatalf("Message = %q, want %q", e.Message, want)
	}
	if httpmock.GetTotalCallCount() != 1 {
		t.Fatalf("calls = %d, want 1", httpmock.GetTotalCallCount())
	}
}

func TestCheck_HTMLGatewayErrorIsMalformed(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", searchURL, respond(502, "<html>Bad Gateway</html>"))

	err := client.Check(get(t, searchURL))
	if !errors.Is(err, apierr.ErrMalformedBody) {
		t.Fatalf("Check() = %v, want ErrMalformedBody", err)
	}
}

func TestFromHTTP_RealServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"id":"UNAVAILABLE_FOR_LOCATION","text":"Service unavailable for location"}}`))
	}))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/v2/search?location=Nowhere")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	raw, err := client.FromHTTP(resp)
	if err != nil {
		t.Fatalf("FromHTTP: %v", err)
	}
	if raw.StatusCode() != http.StatusBadRequest {
		t.Fatalf("StatusCode() = %d, want 400", raw.StatusCode())
	}
	if raw.URL() != srv.URL+"/v2/search?location=Nowhere" {
		t.Fatalf("URL() = %q", raw.URL())
	}
	var e *apierr.Error
	if !errors.As(apierr.CheckForError(raw), &e) || e.Kind != apierr.KindUnavailableForLocation {
		t.Fatalf("expected UnavailableForLocation from %q", raw.Body())
	}
	if got := e.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("Header Content-Type = %q, want application/json", got)
	}
}

func TestCheck_LargeSignatureErrorStaysTyped(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	// ~9 KiB: the description echoes the signature base string
	desc := "Invalid signature. Expected signature base string: GET&" + strings.Repeat("a", 9000)
	body := `{"error":{"id":"invalid_signature","description":"` + desc + `"}}`
	httpmock.RegisterResponder("GET", searchURL, respond(400, body))

	err := client.Check(get(t, searchURL))

	var e *apierr.Error
	if !errors.As(err, &e) {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if e.Kind != apierr.KindInvalidSignature {
		t.Fatalf("Kind = %v, want InvalidSignature", e.Kind)
	}
	if e.Payload["description"] != desc {
		t.Fatalf("description cut: len %d, want %d", len(e.Payload["description"].(string)), len(desc))
	}
}

func TestFromHTTP_BodyOverCap(t *testing.T) {
	resp := &http.Response{
		StatusCode: 500,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 1<<20+1))),
	}
	_, err := client.FromHTTP(resp)
	if !errors.Is(err, client.ErrBodyTooLarge) {
		t.Fatalf("FromHTTP() = %v, want ErrBodyTooLarge", err)
	}
	if errors.Is(err, apierr.ErrMalformedBody) {
		t.Fatalf("oversized body must not look like a parse failure")
	}
}

func TestFromHTTP_BodyAtCap(t *testing.T) {
	resp := &http.Response{
		StatusCode: 500,
		Header:     http.Header{"X-Ratelimit-Remaining": []string{"12"}},
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 1<<20))),
	}
	raw, err := client.FromHTTP(resp)
	if err != nil {
		t.Fatalf("FromHTTP: %v", err)
	}
	if len(raw.Body()) != 1<<20 {
		t.Fatalf("len(body) = %d, want %d", len(raw.Body()), 1<<20)
	}
	if raw.URL() != "" {
		t.Fatalf("URL() = %q, want empty without a request", raw.URL())
	}
	if raw.Header().Get("X-RateLimit-Remaining") != "12" {
		t.Fatalf("headers not carried: %#v", raw.Header())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestFromHTTP_Errors(t *testing.T) {
	if _, err := client.FromHTTP(nil); err == nil {
		t.Fatalf("expected error for nil response")
	}

	resp := &http.Response{StatusCode: 500, Body: io.NopCloser(failingReader{})}
	_, err := client.FromHTTP(resp)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("FromHTTP() = %v, want wrapped ErrUnexpectedEOF", err)
	}
	if !apierr.IsRetryable(err) {
		t.Fatalf("short read should be retryable")
	}
}
