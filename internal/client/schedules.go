package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// SchedulesClient implements ptero.SchedulesClient.
type SchedulesClient struct {
	requester ptero.Requester
}

// NewSchedulesClient creates a new schedules client.
func NewSchedulesClient(requester ptero.Requester) *SchedulesClient {
	return &SchedulesClient{
		requester: requester,
	}
}

// List implements ptero.SchedulesClient.List.
func (c *SchedulesClient) List(identifier string) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, clientServerPath(identifier, "schedules"))
}

// Get implements ptero.SchedulesClient.Get.
func (c *SchedulesClient) Get(ctx context.Context, identifier string, scheduleID int) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodGet, schedulePath(identifier, scheduleID), nil, nil))
}

// Create implements ptero.SchedulesClient.Create.
func (c *SchedulesClient) Create(ctx context.Context, identifier string, params *ptero.ScheduleParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, clientServerPath(identifier, "schedules"), nil, params))
}

// Update implements ptero.SchedulesClient.Update. The panel updates schedules
// with POST.
func (c *SchedulesClient) Update(ctx context.Context, identifier string, scheduleID int, params *ptero.ScheduleParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, schedulePath(identifier, scheduleID), nil, params))
}

// Execute implements ptero.SchedulesClient.Execute.
func (c *SchedulesClient) Execute(ctx context.Context, identifier string, scheduleID int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodPost, schedulePath(identifier, scheduleID, "execute"), nil, nil))
}

// Delete implements ptero.SchedulesClient.Delete.
func (c *SchedulesClient) Delete(ctx context.Context, identifier string, scheduleID int) *ptero.ActionResponse {
	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, schedulePath(identifier, scheduleID), nil, nil))
}

// CreateTask implements ptero.SchedulesClient.CreateTask.
func (c *SchedulesClient) CreateTask(ctx context.Context, identifier string, scheduleID int, params *ptero.ScheduleTaskParams) *ptero.ItemResponse {
	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, schedulePath(identifier, scheduleID, "tasks"), nil, params))
}

// UpdateTask implements ptero.SchedulesClient.UpdateTask.
func (c *SchedulesClient) UpdateTask(ctx context.Context, identifier string, scheduleID, taskID int, params *ptero.ScheduleTaskParams) *ptero.ItemResponse {
	path := schedulePath(identifier, scheduleID, "tasks", strconv.Itoa(taskID))

	return ptero.NewItemResponse(c.requester.Do(ctx, http.MethodPost, path, nil, params))
}

// DeleteTask implements ptero.SchedulesClient.DeleteTask.
func (c *SchedulesClient) DeleteTask(ctx context.Context, identifier string, scheduleID, taskID int) *ptero.ActionResponse {
	path := schedulePath(identifier, scheduleID, "tasks", strconv.Itoa(taskID))

	return ptero.NewActionResponse(c.requester.Do(ctx, http.MethodDelete, path, nil, nil))
}

func schedulePath(identifier string, scheduleID int, segments ...string) string {
	return clientServerPath(identifier, append([]string{"schedules", strconv.Itoa(scheduleID)}, segments...)...)
}
