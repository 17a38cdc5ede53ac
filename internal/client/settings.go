package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// SettingsClient implements ptero.SettingsClient.
type SettingsClient struct {
	requester ptero.Requester
}

// NewSettingsClient creates a new settings client.
func NewSettingsClient(requester ptero.Requester) *SettingsClient {
	return &SettingsClient{
		requester: requester,
	}
}

// Rename implements ptero.SettingsClient.Rename.
func (c *SettingsClient) Rename(ctx context.Context, identifier, name string) *ptero.ActionResponse {
	body := map[string]any{"name": name}

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "settings", "rename"), nil, body))
}

// Reinstall implements ptero.SettingsClient.Reinstall.
func (c *SettingsClient) Reinstall(ctx context.Context, identifier string) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "settings", "reinstall"), nil, nil))
}

// SetDockerImage implements ptero.SettingsClient.SetDockerImage.
func (c *SettingsClient) SetDockerImage(ctx context.Context, identifier, image string) *ptero.ActionResponse {
	body := map[string]any{"docker_image": image}

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPut, clientServerPath(identifier, "settings", "docker-image"), nil, body))
}
