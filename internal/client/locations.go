package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const locationsPath = constants.ApplicationPrefix + "/locations"

// LocationsClient implements ptero.LocationsClient.
type LocationsClient struct {
	requester ptero.Requester
}

// NewLocationsClient creates a new locations client.
func NewLocationsClient(requester ptero.Requester) *LocationsClient {
	return &LocationsClient{
		requester: requester,
	}
}

// List implements ptero.LocationsClient.List.
func (c *LocationsClient) List() ptero.ListQuery {
	return ptero.NewListQuery(c.requester, locationsPath).
		WithSortable("id", "short", "long", "created_at", "updated_at")
}

// Get implements ptero.LocationsClient.Get.
func (c *LocationsClient) Get(id int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, locationPath(id), ptero.NewItemResponse)
}

// Create implements ptero.LocationsClient.Create.
func (c *LocationsClient) Create(ctx context.Context, params *ptero.LocationParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, locationsPath, nil, params))
}

// Update implements ptero.LocationsClient.Update.
func (c *LocationsClient) Update(ctx context.Context, id int, params *ptero.LocationParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, locationPath(id), nil, params))
}

// Delete implements ptero.LocationsClient.Delete.
func (c *LocationsClient) Delete(ctx context.Context, id int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, locationPath(id), nil, nil))
}

func locationPath(id int) string {
	return fmt.Sprintf("%s/%d", locationsPath, id)
}
