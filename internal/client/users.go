package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const usersPath = constants.ApplicationPrefix + "/users"

// UsersClient implements ptero.UsersClient.
type UsersClient struct {
	requester ptero.Requester
}

// NewUsersClient creates a new users client.
func NewUsersClient(requester ptero.Requester) *UsersClient {
	return &UsersClient{
		requester: requester,
	}
}

// List implements ptero.UsersClient.List.
func (c *UsersClient) List() ptero.ListQuery {
	return ptero.NewListQuery(c.requester, usersPath).
		WithSortable("id", "uuid", "username", "email", "created_at", "updated_at")
}

// Get implements ptero.UsersClient.Get.
func (c *UsersClient) Get(id int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, userPath(id), ptero.NewItemResponse)
}

// External implements ptero.UsersClient.External.
func (c *UsersClient) External(externalID string) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, usersPath+"/external/"+url.PathEscape(externalID), ptero.NewItemResponse)
}

// Create implements ptero.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, params *ptero.UserCreateParams) (*ptero.ItemResponse, error) {
	if params == nil {
		return nil, fmt.Errorf("creating user: %w: params are required", ptero.ErrInvalidParams)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, usersPath, nil, params)), nil
}

// Update implements ptero.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id int, params *ptero.UserUpdateParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, userPath(id), nil, params))
}

// Delete implements ptero.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, id int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, userPath(id), nil, nil))
}

func userPath(id int) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}
