package ptero

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Rate-limit headers read from every response.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
	HeaderRetryAfter    = "Retry-After"
)

// statusMessages backs Explain when the panel sent no structured errors.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "Bad request - invalid parameters.",
	http.StatusUnauthorized:        "Unauthorized - check API token.",
	http.StatusForbidden:           "Forbidden - insufficient permissions.",
	http.StatusNotFound:            "Not found - resource does not exist.",
	http.StatusConflict:            "Conflict - state prevents this action.",
	http.StatusUnprocessableEntity: "Validation failed - invalid data provided.",
	http.StatusTooManyRequests:     "Too many requests.",
	http.StatusInternalServerError: "Server error - try again later.",
	http.StatusBadGateway:          "Bad gateway.",
	http.StatusServiceUnavailable:  "Service unavailable.",
}

// Response is the normalized form of one panel HTTP response.
//
// OK is true iff Status is in [200,300). Errors is only populated for non-OK
// responses whose body declared an "errors" array. A response is never
// modified after construction; WithData returns a copy.
type Response struct {
	OK      bool              `json:"ok"                yaml:"ok"`
	Status  int               `json:"status"            yaml:"status"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Data is payload["data"], else payload["attributes"], else the whole
	// decoded body.
	Data any `json:"data,omitempty" yaml:"data,omitempty"`
	Meta any `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Payload is the decoded body when it is a JSON object.
	Payload map[string]any `json:"-" yaml:"-"`

	Error  string     `json:"error,omitempty"  yaml:"error,omitempty"`
	Raw    string     `json:"-"                yaml:"-"`
	Errors []APIError `json:"errors,omitempty" yaml:"errors,omitempty"`

	RateLimit     *int `json:"rate_limit,omitempty"     yaml:"rate_limit,omitempty"`
	RateRemaining *int `json:"rate_remaining,omitempty" yaml:"rate_remaining,omitempty"`
	RateReset     *int `json:"rate_reset,omitempty"     yaml:"rate_reset,omitempty"`
	RetryAfter    *int `json:"retry_after,omitempty"    yaml:"retry_after,omitempty"`
}

// NewResponse normalizes a raw HTTP exchange.
func NewResponse(status int, header http.Header, body []byte) *Response {
	return newResponseAt(status, header, body, time.Now())
}

func newResponseAt(status int, header http.Header, body []byte, now time.Time) *Response {
	resp := &Response{
		OK:      status >= http.StatusOK && status < http.StatusMultipleChoices,
		Status:  status,
		Headers: flattenHeaders(header),
		Raw:     string(body),
	}

	if looksLikeJSON(headerValue(header, "Content-Type"), body) {
		var decoded any
		if err := json.Unmarshal(body, &decoded); err == nil {
			switch value := decoded.(type) {
			case map[string]any:
				resp.Payload = value
				resp.Data = pickData(value)
				resp.Meta = value["meta"]
			case []any:
				resp.Data = value
			}
		}
	}

	if !resp.OK {
		resp.Errors = parseAPIErrors(resp.Payload["errors"])

		if msg, ok := resp.Payload["error"].(string); ok && msg != "" {
			resp.Error = msg
		} else {
			resp.Error = fmt.Sprintf("HTTP %d", status)
		}
	}

	resp.RateLimit = parseIntHeader(headerValue(header, HeaderRateLimit))
	resp.RateRemaining = parseIntHeader(headerValue(header, HeaderRateRemaining))
	resp.RateReset = parseIntHeader(headerValue(header, HeaderRateReset))
	resp.RetryAfter = parseRetryAfter(headerValue(header, HeaderRetryAfter), now)

	return resp
}

// TransportFailure builds the envelope for a request that produced no HTTP
// response at all (DNS, TLS, refused connection, cancelled context).
func TransportFailure(err error) *Response {
	return &Response{
		Status:  0,
		Headers: map[string]string{},
		Error:   "HTTP exception: " + err.Error(),
	}
}

// Failure builds a non-OK envelope with a locally produced message.
func Failure(status int, message string) *Response {
	return &Response{
		Status:  status,
		Headers: map[string]string{},
		Error:   message,
	}
}

// Explain renders the failure for humans. It returns "" iff the response is OK.
func (r *Response) Explain() string {
	if r.OK {
		return ""
	}

	var parts []string

	for i := range r.Errors {
		apiErr := &r.Errors[i]

		var segment []string
		if apiErr.Code != "" {
			segment = append(segment, "["+apiErr.Code+"]")
		}

		if apiErr.Detail != "" {
			segment = append(segment, apiErr.Detail)
		}

		if len(segment) > 0 {
			parts = append(parts, strings.Join(segment, " "))
		}

		if source := apiErr.Source(); !isEmpty(source) {
			if encoded, err := json.Marshal(source); err == nil {
				parts = append(parts, "Field: "+string(encoded))
			}
		}
	}

	if len(parts) == 0 {
		if r.Error != "" && (r.Status == 0 || (r.Status >= 200 && r.Status < 300)) {
			parts = append(parts, r.Error)
		} else if msg, ok := statusMessages[r.Status]; ok {
			parts = append(parts, msg)
		} else {
			parts = append(parts, fmt.Sprintf("HTTP %d", r.Status))
		}
	}

	return strings.Join(parts, " | ")
}

// RetryAfterSeconds reports how long to wait before retrying: Retry-After if
// positive, else the time until X-RateLimit-Reset if that is in the future.
func (r *Response) RetryAfterSeconds() (int, bool) {
	return r.retryAfterAt(time.Now())
}

func (r *Response) retryAfterAt(now time.Time) (int, bool) {
	if r.RetryAfter != nil && *r.RetryAfter > 0 {
		return *r.RetryAfter, true
	}

	if r.RateReset != nil {
		if diff := int64(*r.RateReset) - now.Unix(); diff > 0 {
			return int(diff), true
		}
	}

	return 0, false
}

// Err returns nil for OK responses and a *ResponseError otherwise.
func (r *Response) Err() error {
	if r.OK {
		return nil
	}

	return &ResponseError{
		Status:  r.Status,
		Message: r.Explain(),
		Errors:  r.Errors,
	}
}

// WithData returns a shallow copy with Data replaced.
func (r *Response) WithData(data any) *Response {
	clone := *r
	clone.Data = data

	return &clone
}

// Header returns the combined value of a header, matched case-insensitively.
func (r *Response) Header(name string) string {
	if value, ok := r.Headers[http.CanonicalHeaderKey(name)]; ok {
		return value
	}

	for key, value := range r.Headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}

	return ""
}

// DataMap returns Data as an object, or nil.
func (r *Response) DataMap() map[string]any {
	data, _ := r.Data.(map[string]any)

	return data
}

// MetaMap returns Meta as an object, or nil.
func (r *Response) MetaMap() map[string]any {
	meta, _ := r.Meta.(map[string]any)

	return meta
}

// Decode re-encodes Data into out, for callers that want typed structs.
func (r *Response) Decode(out any) error {
	encoded, err := json.Marshal(r.Data)
	if err != nil {
		return fmt.Errorf("encoding response data: %w", err)
	}

	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}

	return nil
}

func pickData(payload map[string]any) any {
	if data, ok := payload["data"]; ok && data != nil {
		return data
	}

	if attributes, ok := payload["attributes"]; ok && attributes != nil {
		return attributes
	}

	return payload
}

func looksLikeJSON(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")

	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func flattenHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))

	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		canonical := http.CanonicalHeaderKey(key)
		if existing, ok := out[canonical]; ok {
			out[canonical] = existing + ", " + strings.Join(header[key], ", ")

			continue
		}

		out[canonical] = strings.Join(header[key], ", ")
	}

	return out
}

func headerValue(header http.Header, name string) string {
	if value := header.Get(name); value != "" {
		return value
	}

	for key, values := range header {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return strings.Join(values, ", ")
		}
	}

	return ""
}

func parseIntHeader(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return nil
		}

		n = int(f)
	}

	return &n
}

func parseRetryAfter(value string, now time.Time) *int {
	if seconds := parseIntHeader(value); seconds != nil {
		return seconds
	}

	when, err := http.ParseTime(strings.TrimSpace(value))
	if err != nil {
		return nil
	}

	seconds := max(int(when.Unix()-now.Unix()), 0)

	return &seconds
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case map[string]any:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}
