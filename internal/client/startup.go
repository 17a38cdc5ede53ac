package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// StartupClient implements ptero.StartupClient.
type StartupClient struct {
	requester ptero.Requester
}

// NewStartupClient creates a new startup client.
func NewStartupClient(requester ptero.Requester) *StartupClient {
	return &StartupClient{
		requester: requester,
	}
}

// Variables implements ptero.StartupClient.Variables. Meta carries the
// startup command and the available docker images.
func (c *StartupClient) Variables(ctx context.Context, identifier string) *ptero.ListResponse {
	return ptero.NewListResponse(c.requester.Do(ctx, http.MethodGet, clientServerPath(identifier, "startup"), nil, nil))
}

// UpdateVariable implements ptero.StartupClient.UpdateVariable.
func (c *StartupClient) UpdateVariable(ctx context.Context, identifier, key, value string) *ptero.ItemResponse {
	body := map[string]any{"key": key, "value": value}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPut, clientServerPath(identifier, "startup", "variable"), nil, body))
}
