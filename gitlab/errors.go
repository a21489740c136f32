package gitlab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/tidwall/gjson"
)

const (
	emptyResponseMessage = "Empty Response"
	unparsableMessage    = "Error message cannot be parsed"
)

// APIError is the normalized representation of a failed remote call: the
// server answered with a non-2xx status. It carries the translated
// message, the raw parsed error body when one existed, and the
// originating call for diagnostics.
type APIError struct {
	// StatusCode is the HTTP status of the failing response.
	StatusCode int
	// Message is the human-readable message extracted from the error
	// body, or a textual fallback when the body had no known shape.
	Message string
	// Raw is the parsed error body, or nil when the body was empty or
	// not valid JSON. Callers inspect it for structured detail such as
	// per-field validation errors.
	Raw any
	// Method and URL identify the originating call.
	Method string
	URL    string
	// RequestBody is the serialized request payload when one was sent.
	RequestBody []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// DecodeError reports a successful HTTP response whose body did not
// match the expected JSON shape. It is distinct from the server-error
// path and is never retried.
type DecodeError struct {
	Method string
	URL    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decoding response: %v", e.Method, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// IsNotFound reports whether err is an *APIError for a 404 response.
func IsNotFound(err error) bool {
	return IsStatus(err, nethttp.StatusNotFound)
}

// IsSuccessStatus reports whether a status code is in the 2xx range.
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// translateErrorBody extracts a human-readable message from a server
// error body. The error contract is server-controlled and unspecified,
// so extraction is best effort and never fails: any parse anomaly
// degrades to a textual fallback embedding the raw body.
func translateErrorBody(body []byte) (message string, raw any) {
	if len(bytes.TrimSpace(body)) == 0 {
		return emptyResponseMessage, nil
	}
	if !gjson.ValidBytes(body) {
		return fmt.Sprintf("%s (%s)", unparsableMessage, body), nil
	}

	parsed := gjson.ParseBytes(body)
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = nil
	}
	if !parsed.IsObject() {
		return fmt.Sprintf("%s (%s)", unparsableMessage, body), raw
	}

	field := parsed.Get("message")
	if !field.Exists() {
		field = parsed.Get("error")
	}
	if !field.Exists() {
		return fmt.Sprintf("%s (%s)", unparsableMessage, body), raw
	}
	if field.Type == gjson.String {
		return field.String(), raw
	}
	// Non-string shapes (objects, arrays, numbers) are surfaced as
	// their JSON serialization; Raw keeps the structured form.
	return field.Raw, raw
}
