package ptero

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cast"
)

// Configuration errors. These are the only failures reported as Go errors;
// they are returned before any request is sent.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrBaseURLRequired    = errors.New("panel base URL is required")
	ErrEmptyToken         = errors.New("API key must not be empty")
	ErrInvalidTokenPrefix = errors.New("API key must start with one of: ptlc_, pacc_")
	ErrInvalidMethod      = errors.New("invalid HTTP method")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrNoHostInURL        = errors.New("no host specified in URL")
	ErrUnsupportedScheme  = errors.New("panel URL scheme must be http or https")
)

// APIError is one entry of the panel's "errors" array.
type APIError struct {
	Code   string         `json:"code,omitempty"   yaml:"code,omitempty"`
	Status string         `json:"status,omitempty" yaml:"status,omitempty"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"   yaml:"meta,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	case e.Detail != "":
		return e.Detail
	case e.Code != "":
		return e.Code
	default:
		return "unknown API error"
	}
}

// Source returns meta.source, the offending request field, or nil.
func (e *APIError) Source() any {
	if e.Meta == nil {
		return nil
	}

	return e.Meta["source"]
}

// ResponseError is a non-OK response converted into a Go error.
type ResponseError struct {
	Status  int
	Message string
	Errors  []APIError
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("panel returned %d: %s", e.Status, e.Message)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// IsNotFound checks if the error is a 404 from the panel.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the panel.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the panel.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a 429 from the panel.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsValidation checks if the error is a 422 or carries a ValidationException.
func IsValidation(err error) bool {
	if hasStatus(err, http.StatusUnprocessableEntity) {
		return true
	}

	errResp := &ResponseError{}
	if !errors.As(err, &errResp) {
		return false
	}

	for _, apiErr := range errResp.Errors {
		if strings.EqualFold(apiErr.Code, "ValidationException") {
			return true
		}
	}

	return false
}

// IsTransportFailure checks if the error came from a request that never got a response.
func IsTransportFailure(err error) bool {
	errResp := &ResponseError{}

	return errors.As(err, &errResp) && errResp.Status == 0
}

func hasStatus(err error, status int) bool {
	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return errResp.Status == status
	}

	return false
}

// parseAPIErrors copies a decoded "errors" array. Entries that are not
// objects are skipped.
func parseAPIErrors(raw any) []APIError {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]APIError, 0, len(list))

	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		apiErr := APIError{
			Code:   cast.ToString(entry["code"]),
			Status: cast.ToString(entry["status"]),
			Detail: cast.ToString(entry["detail"]),
		}

		if meta, ok := entry["meta"].(map[string]any); ok {
			apiErr.Meta = meta
		}

		out = append(out, apiErr)
	}

	return out
}
