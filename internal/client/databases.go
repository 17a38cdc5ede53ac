package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// defaultDatabaseRemote lets the database user connect from any host.
const defaultDatabaseRemote = "%"

// DatabasesClient implements ptero.DatabasesClient.
type DatabasesClient struct {
	requester ptero.Requester
}

// NewDatabasesClient creates a new databases client.
func NewDatabasesClient(requester ptero.Requester) *DatabasesClient {
	return &DatabasesClient{
		requester: requester,
	}
}

// List implements ptero.DatabasesClient.List.
func (c *DatabasesClient) List(identifier string) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "databases"))
}

// Create implements ptero.DatabasesClient.Create.
func (c *DatabasesClient) Create(ctx context.Context, identifier, name, remote string) *ptero.ItemResponse {
	if remote == "" {
		remote = defaultDatabaseRemote
	}

	body := map[string]any{"database": name, "remote": remote}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "databases"), nil, body))
}

// RotatePassword implements ptero.DatabasesClient.RotatePassword.
func (c *DatabasesClient) RotatePassword(ctx context.Context, identifier, databaseID string) *ptero.ItemResponse {
	path := clientServerPath(identifier, "databases", url.PathEscape(databaseID), "rotate-password")

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, path, nil, nil))
}

// Delete implements ptero.DatabasesClient.Delete.
func (c *DatabasesClient) Delete(ctx context.Context, identifier, databaseID string) *ptero.ActionResponse {
	path := clientServerPath(identifier, "databases", url.PathEscape(databaseID))

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, path, nil, nil))
}
