package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// SubusersClient implements ptero.SubusersClient.
type SubusersClient struct {
	requester ptero.Requester
}

// NewSubusersClient creates a new subusers client.
func NewSubusersClient(requester ptero.Requester) *SubusersClient {
	return &SubusersClient{
		requester: requester,
	}
}

// List implements ptero.SubusersClient.List.
func (c *SubusersClient) List(identifier string) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "users"))
}

// Get implements ptero.SubusersClient.Get.
func (c *SubusersClient) Get(ctx context.Context, identifier, userUUID string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, subuserPath(identifier, userUUID), nil, nil))
}

// Create implements ptero.SubusersClient.Create.
func (c *SubusersClient) Create(ctx context.Context, identifier, email string, permissions []ptero.SubuserPermission) *ptero.ItemResponse {
	body := map[string]any{"email": email, "permissions": ptero.PermissionStrings(permissions)}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "users"), nil, body))
}

// Update implements ptero.SubusersClient.Update.
func (c *SubusersClient) Update(ctx context.Context, identifier, userUUID string, permissions []ptero.SubuserPermission) *ptero.ItemResponse {
	body := map[string]any{"permissions": ptero.PermissionStrings(permissions)}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, subuserPath(identifier, userUUID), nil, body))
}

// Delete implements ptero.SubusersClient.Delete.
func (c *SubusersClient) Delete(ctx context.Context, identifier, userUUID string) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, subuserPath(identifier, userUUID), nil, nil))
}

func subuserPath(identifier, userUUID string) string {
	return clientServerPath(identifier, "users", url.PathEscape(userUUID))
}
