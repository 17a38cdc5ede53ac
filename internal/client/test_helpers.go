package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const (
	testClientToken      = "ptlc_testclienttoken"
	testApplicationToken = "pacc_testapplicationtoken"
)

// recordedRequest is what the fake panel saw.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// JSON decodes the recorded body into a generic map.
func (r recordedRequest) JSON(t *testing.T) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &out))

	return out
}

// fakePanel is an httptest server that records every request.
type fakePanel struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

// newFakePanel starts a panel that records requests and delegates the reply
// to handler.
func newFakePanel(t *testing.T, handler http.HandlerFunc) *fakePanel {
	t.Helper()

	panel := &fakePanel{}
	panel.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		request.Body = io.NopCloser(bytes.NewReader(body))

		panel.mu.Lock()
		panel.requests = append(panel.requests, recordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Header: request.Header.Clone(),
			Body:   body,
		})
		panel.mu.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(panel.Close)

	return panel
}

// Requests returns a copy of what the panel has seen so far.
func (p *fakePanel) Requests() []recordedRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]recordedRequest, len(p.requests))
	copy(out, p.requests)

	return out
}

// Last returns the most recent request.
func (p *fakePanel) Last(t *testing.T) recordedRequest {
	t.Helper()

	requests := p.Requests()
	require.NotEmpty(t, requests, "panel saw no requests")

	return requests[len(requests)-1]
}

// NewTestClient creates a client for the fake panel.
func NewTestClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()

	client, err := New(&ptero.Config{BaseURL: baseURL, Token: token})
	require.NoError(t, err)

	return client
}

// writeJSON replies with status and a JSON body.
func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

// jsonReply answers every request with the same JSON body.
func jsonReply(status int, body any) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, status, body)
	}
}

// RouteCase describes one call and the request it must produce.
type RouteCase struct {
	Name         string
	Call         func(ctx context.Context, c *Client) *ptero.Response
	ExpectedVerb string
	ExpectedPath string
	ExpectedBody map[string]any
}

// RunRouteTests checks that each call hits the expected route with the
// expected JSON body and that a 2xx reply is reported as OK.
func RunRouteTests(t *testing.T, token string, tests []RouteCase) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			panel := newFakePanel(t, jsonReply(http.StatusOK, map[string]any{
				"object":     "test",
				"attributes": map[string]any{"id": 1},
			}))

			client := NewTestClient(t, panel.URL, token)

			resp := testCase.Call(context.Background(), client)
			require.NotNil(t, resp)
			assert.True(t, resp.OK, resp.Explain())

			last := panel.Last(t)
			assert.Equal(t, testCase.ExpectedVerb, last.Method)
			assert.Equal(t, testCase.ExpectedPath, last.Path)

			if testCase.ExpectedBody != nil {
				assert.Equal(t, testCase.ExpectedBody, last.JSON(t))
			}
		})
	}
}
