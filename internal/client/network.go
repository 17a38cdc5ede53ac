package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// NetworkClient implements ptero.NetworkClient.
type NetworkClient struct {
	requester ptero.Requester
}

// NewNetworkClient creates a new network client.
func NewNetworkClient(requester ptero.Requester) *NetworkClient {
	return &NetworkClient{
		requester: requester,
	}
}

// List implements ptero.NetworkClient.List.
func (c *NetworkClient) List(identifier string) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "network", "allocations"))
}

// Assign implements ptero.NetworkClient.Assign. The panel picks the port.
func (c *NetworkClient) Assign(ctx context.Context, identifier string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "network", "allocations"), nil, nil))
}

// SetNote implements ptero.NetworkClient.SetNote.
func (c *NetworkClient) SetNote(ctx context.Context, identifier string, allocationID int, note string) *ptero.ItemResponse {
	body := map[string]any{"notes": note}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, allocationPath(identifier, allocationID), nil, body))
}

// SetPrimary implements ptero.NetworkClient.SetPrimary.
func (c *NetworkClient) SetPrimary(ctx context.Context, identifier string, allocationID int) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, allocationPath(identifier, allocationID, "primary"), nil, nil))
}

// Delete implements ptero.NetworkClient.Delete.
func (c *NetworkClient) Delete(ctx context.Context, identifier string, allocationID int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, allocationPath(identifier, allocationID), nil, nil))
}

func allocationPath(identifier string, allocationID int, segments ...string) string {
	return clientServerPath(identifier, append([]string{"network", "allocations", strconv.Itoa(allocationID)}, segments...)...)
}
