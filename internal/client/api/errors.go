package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes the backend is known to emit in its {"error": "..."} payload.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserAlreadyExists  = "user_already_exists"
)

// Error is a server-rejected request: HTTP non-2xx with (usually) a
// structured error payload.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Code is the backend error identifier, e.g. "invalid_credentials".
	// Empty when the body carried no recognizable code.
	Code string
	// Body is the raw response body, preserved verbatim so callers can
	// match identifiers the client does not know about.
	Body string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Body)
}

// IsUnauthorized reports whether the server refused the credentials or token.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == CodeInvalidCredentials
}

// IsNotFound reports a missing resource.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// parseError decodes an error response. The backend's usual shape is
// {"error": "<code>"}; anything else is kept raw.
func parseError(statusCode int, body []byte) error {
	e := &Error{StatusCode: statusCode, Body: string(body)}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		e.Code = payload.Error
	}

	return e
}

// AsAPIError unwraps err into *Error when the failure was a server
// rejection, as opposed to a transport failure.
func AsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
