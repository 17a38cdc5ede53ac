package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const nodesPath = constants.ApplicationPrefix + "/nodes"

// NodesClient implements ptero.NodesClient.
type NodesClient struct {
	requester ptero.Requester
}

// NewNodesClient creates a new nodes client.
func NewNodesClient(requester ptero.Requester) *NodesClient {
	return &NodesClient{
		requester: requester,
	}
}

// List implements ptero.NodesClient.List.
func (c *NodesClient) List() ptero.ListQuery {
	return ptero.NewListQuery(c.requester, nodesPath).
		WithSortable("id", "uuid", "name", "created_at", "updated_at")
}

// Get implements ptero.NodesClient.Get.
func (c *NodesClient) Get(id int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, nodePath(id), ptero.NewItemResponse)
}

// Configuration implements ptero.NodesClient.Configuration.
func (c *NodesClient) Configuration(ctx context.Context, id int) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, nodePath(id)+"/configuration", nil, nil))
}

// Create implements ptero.NodesClient.Create.
func (c *NodesClient) Create(ctx context.Context, params *ptero.NodeCreateParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, nodesPath, nil, params))
}

// Update implements ptero.NodesClient.Update.
func (c *NodesClient) Update(ctx context.Context, id int, params *ptero.NodeUpdateParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, nodePath(id), nil, params))
}

// Delete implements ptero.NodesClient.Delete.
func (c *NodesClient) Delete(ctx context.Context, id int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, nodePath(id), nil, nil))
}

func nodePath(id int) string {
	return fmt.Sprintf("%s/%d", nodesPath, id)
}

// AllocationsClient implements ptero.AllocationsClient.
type AllocationsClient struct {
	requester ptero.Requester
}

// NewAllocationsClient creates a new allocations client.
func NewAllocationsClient(requester ptero.Requester) *AllocationsClient {
	return &AllocationsClient{
		requester: requester,
	}
}

// List implements ptero.AllocationsClient.List.
func (c *AllocationsClient) List(nodeID int) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, nodePath(nodeID)+"/allocations")
}

// Create implements ptero.AllocationsClient.Create.
func (c *AllocationsClient) Create(ctx context.Context, nodeID int, params *ptero.AllocationCreateParams) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, nodePath(nodeID)+"/allocations", nil, params))
}

// Delete implements ptero.AllocationsClient.Delete.
func (c *AllocationsClient) Delete(ctx context.Context, nodeID, allocationID int) *ptero.ActionResponse {
	path := fmt.Sprintf("%s/allocations/%d", nodePath(nodeID), allocationID)

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, path, nil, nil))
}
