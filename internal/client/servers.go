package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const serversPath = constants.ApplicationPrefix + "/servers"

// ServersClient implements ptero.ServersClient.
type ServersClient struct {
	requester ptero.Requester
}

// NewServersClient creates a new servers client.
func NewServersClient(requester ptero.Requester) *ServersClient {
	return &ServersClient{
		requester: requester,
	}
}

// List implements ptero.ServersClient.List.
func (c *ServersClient) List() ptero.ListQuery {
	return ptero.NewListQuery(c.requester, serversPath).
		WithSortable("id", "uuid", "name", "created_at", "updated_at")
}

// Get implements ptero.ServersClient.Get.
func (c *ServersClient) Get(id int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, serverPath(id), ptero.NewItemResponse)
}

// External implements ptero.ServersClient.External.
func (c *ServersClient) External(externalID string) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, serversPath+"/external/"+url.PathEscape(externalID), ptero.NewItemResponse)
}

// GetByUUID implements ptero.ServersClient.GetByUUID.
func (c *ServersClient) GetByUUID(ctx context.Context, uuid string) *ptero.ItemResponse {
	var found map[string]any

	_ = ptero.ForEachPage(ctx, c.requester, serversPath, ptero.NewParams(), "", func(_ int, items []any) error {
		for _, item := range items {
			server, ok := item.(map[string]any)
			if !ok {
				continue
			}

			attrs, _ := server["attributes"].(map[string]any)
			if value, _ := attrs["uuid"].(string); value == uuid {
				found = server

				return errStopPaging
			}
		}

		return nil
	})

	if found == nil {
		return ptero.NewItemResponse(ptero.Failure(http.StatusNotFound, fmt.Sprintf("Server with UUID %s not found", uuid)))
	}

	resp := &ptero.Response{OK: true, Status: http.StatusOK, Headers: map[string]string{}, Data: found}

	return ptero.NewItemResponse(resp)
}

// Identifier implements ptero.ServersClient.Identifier.
func (c *ServersClient) Identifier(ctx context.Context, id int) (string, *ptero.ItemResponse) {
	resp := c.Get(id).Send(ctx)
	if !resp.OK {
		return "", resp
	}

	attrs := resp.Attributes()

	for _, key := range []string{"identifier", "uuidShort"} {
		if value, ok := attrs[key].(string); ok && value != "" {
			return value, resp
		}
	}

	if uuid, ok := attrs["uuid"].(string); ok && len(uuid) >= constants.ShortIdentifierLength {
		return uuid[:constants.ShortIdentifierLength], resp
	}

	return "", resp
}

// Create implements ptero.ServersClient.Create.
func (c *ServersClient) Create(ctx context.Context, params *ptero.CreateServerParams) (*ptero.ItemResponse, error) {
	if params == nil {
		return nil, fmt.Errorf("creating server: %w: params are required", ptero.ErrInvalidParams)
	}

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, serversPath, nil, params)), nil
}

// UpdateDetails implements ptero.ServersClient.UpdateDetails.
func (c *ServersClient) UpdateDetails(ctx context.Context, id int, params *ptero.ServerDetailsParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, serverPath(id)+"/details", nil, params))
}

// UpdateBuild implements ptero.ServersClient.UpdateBuild.
func (c *ServersClient) UpdateBuild(ctx context.Context, id int, params *ptero.ServerBuildParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, serverPath(id)+"/build", nil, params))
}

// UpdateStartup implements ptero.ServersClient.UpdateStartup.
func (c *ServersClient) UpdateStartup(ctx context.Context, id int, params *ptero.ServerStartupParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPatch, serverPath(id)+"/startup", nil, params))
}

// Suspend implements ptero.ServersClient.Suspend.
func (c *ServersClient) Suspend(ctx context.Context, id int) *ptero.ActionResponse {
	return c.action(ctx, http.MethodPost, serverPath(id)+"/suspend")
}

// Unsuspend implements ptero.ServersClient.Unsuspend.
func (c *ServersClient) Unsuspend(ctx context.Context, id int) *ptero.ActionResponse {
	return c.action(ctx, http.MethodPost, serverPath(id)+"/unsuspend")
}

// Reinstall implements ptero.ServersClient.Reinstall.
func (c *ServersClient) Reinstall(ctx context.Context, id int) *ptero.ActionResponse {
	return c.action(ctx, http.MethodPost, serverPath(id)+"/reinstall")
}

// Delete implements ptero.ServersClient.Delete.
func (c *ServersClient) Delete(ctx context.Context, id int) *ptero.ActionResponse {
	return c.action(ctx, http.MethodDelete, serverPath(id))
}

// ForceDelete implements ptero.ServersClient.ForceDelete.
func (c *ServersClient) ForceDelete(ctx context.Context, id int) *ptero.ActionResponse {
	return c.action(ctx, http.MethodDelete, serverPath(id)+"/force")
}

func (c *ServersClient) action(ctx context.Context, method, path string) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, method, path, nil, nil))
}

func serverPath(id int) string {
	return fmt.Sprintf("%s/%d", serversPath, id)
}
