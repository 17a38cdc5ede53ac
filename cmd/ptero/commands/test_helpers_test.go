package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// Command tests share viper's global state and therefore do not run in
// parallel.

type panelRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

type testPanel struct {
	*httptest.Server

	mu       sync.Mutex
	requests []panelRequest
}

func (p *testPanel) Requests() []panelRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]panelRequest(nil), p.requests...)
}

func (p *testPanel) Last(t *testing.T) panelRequest {
	t.Helper()

	requests := p.Requests()
	require.NotEmpty(t, requests, "no request reached the panel")

	return requests[len(requests)-1]
}

// setupPanel starts a fake panel and points viper at it with an application
// key and JSON output.
func setupPanel(t *testing.T, handler http.HandlerFunc) *testPanel {
	t.Helper()

	panel := &testPanel{}
	panel.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		panel.mu.Lock()
		panel.requests = append(panel.requests, panelRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Body:   body,
		})
		panel.mu.Unlock()

		request.Body = io.NopCloser(bytes.NewReader(body))
		handler(writer, request)
	}))

	t.Cleanup(panel.Close)

	resetViper(t)
	viper.Set("url", panel.URL)
	viper.Set("token", "pacc_clitest")
	viper.Set("output", "json")

	return panel
}

func resetViper(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
}

func reply(status int, body any) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(writer).Encode(body)
		}
	}
}

// execute runs cmd with args and returns everything it printed.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func listBody(items ...map[string]any) map[string]any {
	data := make([]any, len(items))
	for i, item := range items {
		data[i] = map[string]any{"object": "item", "attributes": item}
	}

	return map[string]any{
		"object": "list",
		"data":   data,
		"meta": map[string]any{"pagination": map[string]any{
			"total": len(items), "count": len(items), "per_page": 50, "current_page": 1, "total_pages": 1,
		}},
	}
}
