package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

var defaultServerIncludes = []string{"egg", "subusers"}

// ServerClient implements ptero.ServerClient.
type ServerClient struct {
	requester ptero.Requester
}

// NewServerClient creates a new client API server client.
func NewServerClient(requester ptero.Requester) *ServerClient {
	return &ServerClient{
		requester: requester,
	}
}

// Details implements ptero.ServerClient.Details.
func (c *ServerClient) Details(ctx context.Context, identifier string, includes ...string) *ptero.ItemResponse {
	if len(includes) == 0 {
		includes = defaultServerIncludes
	}

	query := url.Values{"include": {strings.Join(includes, ",")}}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, clientServerPath(identifier), query, nil))
}

// Resources implements ptero.ServerClient.Resources.
func (c *ServerClient) Resources(ctx context.Context, identifier string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, clientServerPath(identifier, "resources"), nil, nil))
}

// Websocket implements ptero.ServerClient.Websocket.
func (c *ServerClient) Websocket(ctx context.Context, identifier string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, clientServerPath(identifier, "websocket"), nil, nil))
}

// Power implements ptero.ServerClient.Power. Unknown signals are rejected
// locally with status 0.
func (c *ServerClient) Power(ctx context.Context, identifier string, signal ptero.PowerSignal) *ptero.ActionResponse {
	if !signal.Valid() {
		return ptero.NewActionResponse(ptero.Failure(0, "Invalid power signal: "+string(signal)))
	}

	body := map[string]any{"signal": signal.Value()}

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "power"), nil, body))
}

// Command implements ptero.ServerClient.Command.
func (c *ServerClient) Command(ctx context.Context, identifier, command string) *ptero.ActionResponse {
	body := map[string]any{"command": command}

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "command"), nil, body))
}
