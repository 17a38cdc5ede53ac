package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// BackupsClient implements ptero.BackupsClient.
type BackupsClient struct {
	requester ptero.Requester
}

// NewBackupsClient creates a new backups client.
func NewBackupsClient(requester ptero.Requester) *BackupsClient {
	return &BackupsClient{
		requester: requester,
	}
}

// List implements ptero.BackupsClient.List.
func (c *BackupsClient) List(identifier string) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "backups"))
}

// Get implements ptero.BackupsClient.Get.
func (c *BackupsClient) Get(ctx context.Context, identifier, backupUUID string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, backupPath(identifier, backupUUID), nil, nil))
}

// Download implements ptero.BackupsClient.Download.
func (c *BackupsClient) Download(ctx context.Context, identifier, backupUUID string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, backupPath(identifier, backupUUID, "download"), nil, nil))
}

// Create implements ptero.BackupsClient.Create. The panel takes ignored paths
// as one newline separated string.
func (c *BackupsClient) Create(ctx context.Context, identifier, name string, ignored []string) *ptero.ItemResponse {
	body := map[string]any{"name": name, "ignored": strings.Join(ignored, "\n")}

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "backups"), nil, body))
}

// Delete implements ptero.BackupsClient.Delete.
func (c *BackupsClient) Delete(ctx context.Context, identifier, backupUUID string) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, backupPath(identifier, backupUUID), nil, nil))
}

// Restore implements ptero.BackupsClient.Restore.
func (c *BackupsClient) Restore(ctx context.Context, identifier, backupUUID string, truncate bool) *ptero.ActionResponse {
	body := map[string]any{"truncate": truncate}

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, backupPath(identifier, backupUUID, "restore"), nil, body))
}

// ToggleLock implements ptero.BackupsClient.ToggleLock.
func (c *BackupsClient) ToggleLock(ctx context.Context, identifier, backupUUID string) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, backupPath(identifier, backupUUID, "lock"), nil, nil))
}

func backupPath(identifier, backupUUID string, segments ...string) string {
	return clientServerPath(identifier, append([]string{"backups", url.PathEscape(backupUUID)}, segments...)...)
}
