package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

func item(resp *ptero.ItemResponse) *ptero.Response     { return resp.Response }
func action(resp *ptero.ActionResponse) *ptero.Response { return resp.Response }
func list(resp *ptero.ListResponse) *ptero.Response     { return resp.Response }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestApplicationAPI_Routes(t *testing.T) {
	t.Parallel()

	RunRouteTests(t, testApplicationToken, []RouteCase{
		{
			Name: "servers list",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return list(c.Application().Servers().List().Send(ctx))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/servers",
		},
		{
			Name: "server by external id",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Servers().External("ext-1").Send(ctx))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/servers/external/ext-1",
		},
		{
			Name: "server details",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Servers().UpdateDetails(ctx, 5, &ptero.ServerDetailsParams{Name: ptero.Ptr("renamed")}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/servers/5/details",
		},
		{
			Name: "server build",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Servers().UpdateBuild(ctx, 5, &ptero.ServerBuildParams{}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/servers/5/build",
		},
		{
			Name: "server startup",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Servers().UpdateStartup(ctx, 5, &ptero.ServerStartupParams{}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/servers/5/startup",
		},
		{
			Name: "suspend",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Servers().Suspend(ctx, 5))
			},
			ExpectedVerb: http.MethodPost,
			ExpectedPath: "/api/application/servers/5/suspend",
		},
		{
			Name: "unsuspend",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Servers().Unsuspend(ctx, 5))
			},
			ExpectedVerb: http.MethodPost,
			ExpectedPath: "/api/application/servers/5/unsuspend",
		},
		{
			Name: "reinstall",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Servers().Reinstall(ctx, 5))
			},
			ExpectedVerb: http.MethodPost,
			ExpectedPath: "/api/application/servers/5/reinstall",
		},
		{
			Name: "delete server",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Servers().Delete(ctx, 5))
			},
			ExpectedVerb: http.MethodDelete,
			ExpectedPath: "/api/application/servers/5",
		},
		{
			Name: "force delete server",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Servers().ForceDelete(ctx, 5))
			},
			ExpectedVerb: http.MethodDelete,
			ExpectedPath: "/api/application/servers/5/force",
		},
		{
			Name: "node configuration",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Nodes().Configuration(ctx, 3))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/nodes/3/configuration",
		},
		{
			Name: "update node",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Nodes().Update(ctx, 3, &ptero.NodeUpdateParams{}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/nodes/3",
		},
		{
			Name: "delete node",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Nodes().Delete(ctx, 3))
			},
			ExpectedVerb: http.MethodDelete,
			ExpectedPath: "/api/application/nodes/3",
		},
		{
			Name: "create allocations",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Allocations().Create(ctx, 3, &ptero.AllocationCreateParams{
					IP:    "10.0.0.1",
					Ports: []string{"25565", "25570-25575"},
				}))
			},
			ExpectedVerb: http.MethodPost,
			ExpectedPath: "/api/application/nodes/3/allocations",
			ExpectedBody: map[string]any{"ip": "10.0.0.1", "ports": []any{"25565", "25570-25575"}},
		},
		{
			Name: "delete allocation",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return action(c.Application().Allocations().Delete(ctx, 3, 77))
			},
			ExpectedVerb: http.MethodDelete,
			ExpectedPath: "/api/application/nodes/3/allocations/77",
		},
		{
			Name: "user by external id",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Users().External("crm-9").Send(ctx))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/users/external/crm-9",
		},
		{
			Name: "update user",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Users().Update(ctx, 9, &ptero.UserUpdateParams{Email: ptero.Ptr("new@example.com")}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/users/9",
			ExpectedBody: map[string]any{"email": "new@example.com"},
		},
		{
			Name: "create location",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Locations().Create(ctx, &ptero.LocationParams{Short: "eu", Long: "Europe"}))
			},
			ExpectedVerb: http.MethodPost,
			ExpectedPath: "/api/application/locations",
			ExpectedBody: map[string]any{"short": "eu", "long": "Europe"},
		},
		{
			Name: "update location",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Locations().Update(ctx, 2, &ptero.LocationParams{Short: "us", Long: "America"}))
			},
			ExpectedVerb: http.MethodPatch,
			ExpectedPath: "/api/application/locations/2",
		},
		{
			Name: "nest",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Nests().Get(1).Send(ctx))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/nests/1",
		},
		{
			Name: "egg",
			Call: func(ctx context.Context, c *Client) *ptero.Response {
				return item(c.Application().Eggs().Get(1, 4).Send(ctx))
			},
			ExpectedVerb: http.MethodGet,
			ExpectedPath: "/api/application/nests/1/eggs/4",
		},
	})
}

func TestServersClient_ListQuery(t *testing.T) {
	t.Parallel()

	panel := newFakePanel(t, jsonReply(http.StatusOK, map[string]any{"object": "list", "data": []any{}}))
	client := NewTestClient(t, panel.URL, testApplicationToken)

	resp := ptero.WithIncludes(client.Application().Servers().List(), ptero.ServerIncludeAllocations, ptero.ServerIncludeUser).
		Filter("name", "lobby").
		Sort("name", true).
		Sort("memory", false).
		PerPage(25).
		Send(context.Background())
	require.True(t, resp.OK)

	query := panel.Last(t).Query
	assert.Equal(t, []string{"allocations,user"}, query["include"])
	assert.Equal(t, []string{"lobby"}, query["filter[name]"])
	assert.Equal(t, []string{"-name"}, query["sort"], "unsortable fields are ignored")
	assert.Equal(t, []string{"25"}, query["per_page"])
}

func TestServersClient_GetByUUID(t *testing.T) {
	t.Parallel()

	pages := map[string][]any{
		"1": {serverItem(1, "aaaaaaaa-0000-0000-0000-000000000000")},
		"2": {serverItem(2, "bbbbbbbb-0000-0000-0000-000000000000")},
		"3": {serverItem(3, "cccccccc-0000-0000-0000-000000000000")},
	}

	panel := newFakePanel(t, func(writer http.ResponseWriter, request *http.Request) {
		page := request.URL.Query().Get("page")
		current, _ := strconv.Atoi(page)

		writeJSON(writer, http.StatusOK, map[string]any{
			"object": "list",
			"data":   pages[page],
			"meta":   map[string]any{"pagination": map[string]any{"current_page": current, "total_pages": 3}},
		})
	})
	client := NewTestClient(t, panel.URL, testApplicationToken)

	t.Run("stops at the page holding the match", func(t *testing.T) {
		resp := client.Application().Servers().GetByUUID(context.Background(), "bbbbbbbb-0000-0000-0000-000000000000")
		require.True(t, resp.OK)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.InDelta(t, 2, resp.Attributes()["id"], 0)
		assert.Len(t, panel.Requests(), 2)
	})

	t.Run("reports a missing server as 404", func(t *testing.T) {
		resp := client.Application().Servers().GetByUUID(context.Background(), "ffffffff")
		assert.False(t, resp.OK)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Server with UUID ffffffff not found", resp.Error)
	})
}

func TestServersClient_Identifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		attributes map[string]any
		want       string
	}{
		{name: "identifier", attributes: map[string]any{"identifier": "1a2b3c4d", "uuid": "ffffffff-1111"}, want: "1a2b3c4d"},
		{name: "uuid prefix", attributes: map[string]any{"uuid": "deadbeef-0000-0000"}, want: "deadbeef"},
		{name: "nothing usable", attributes: map[string]any{"uuid": "short"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			panel := newFakePanel(t, jsonReply(http.StatusOK, map[string]any{"object": "server", "attributes": tt.attributes}))
			client := NewTestClient(t, panel.URL, testApplicationToken)

			identifier, resp := client.Application().Servers().Identifier(context.Background(), 7)
			require.True(t, resp.OK)
			assert.Equal(t, tt.want, identifier)
			assert.Equal(t, "/api/application/servers/7", panel.Last(t).Path)
		})
	}
}

func TestServersClient_Create(t *testing.T) {
	t.Parallel()

	panel := newFakePanel(t, jsonReply(http.StatusCreated, map[string]any{"object": "server", "attributes": map[string]any{"id": 11}}))
	client := NewTestClient(t, panel.URL, testApplicationToken)

	t.Run("invalid params never reach the panel", func(t *testing.T) {
		params := ptero.NewCreateServerParams("", 1, 1, "ghcr.io/image", "./start.sh")

		resp, err := client.Application().Servers().Create(context.Background(), params)
		require.ErrorIs(t, err, ptero.ErrInvalidParams)
		assert.Nil(t, resp)
		assert.Empty(t, panel.Requests())
	})

	t.Run("nil params", func(t *testing.T) {
		_, err := client.Application().Servers().Create(context.Background(), nil)
		require.ErrorIs(t, err, ptero.ErrInvalidParams)
	})

	t.Run("valid params", func(t *testing.T) {
		params := ptero.NewCreateServerParams("lobby", 1, 5, "ghcr.io/image", "./start.sh").
			SetEnv("EULA", true).
			UseAllocation(12)
		params.Limits.Memory = 1024
		params.Limits.Disk = 2048

		resp, err := client.Application().Servers().Create(context.Background(), params)
		require.NoError(t, err)
		require.True(t, resp.OK)
		require.NotNil(t, resp.ID)
		assert.Equal(t, 11, *resp.ID)

		body := panel.Last(t).JSON(t)
		assert.Equal(t, http.MethodPost, panel.Last(t).Method)
		assert.Equal(t, map[string]any{"EULA": "1"}, body["environment"])
		assert.Equal(t, map[string]any{"default": float64(12)}, body["allocation"])
	})
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	panel := newFakePanel(t, jsonReply(http.StatusCreated, map[string]any{"object": "user", "attributes": map[string]any{"id": 3}}))
	client := NewTestClient(t, panel.URL, testApplicationToken)

	_, err := client.Application().Users().Create(context.Background(), &ptero.UserCreateParams{Email: "not-an-email"})
	require.ErrorIs(t, err, ptero.ErrInvalidParams)
	assert.Empty(t, panel.Requests())

	resp, err := client.Application().Users().Create(context.Background(), &ptero.UserCreateParams{
		Email:     "jo@example.com",
		Username:  "jo",
		FirstName: "Jo",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "/api/application/users", panel.Last(t).Path)
}

func serverItem(id int, uuid string) map[string]any {
	return map[string]any{
		"object":     "server",
		"attributes": map[string]any{"id": id, "uuid": uuid, "name": fmt.Sprintf("server-%d", id)},
	}
}
