package client

import (
	"fmt"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

const nestsPath = constants.ApplicationPrefix + "/nests"

// NestsClient implements ptero.NestsClient.
type NestsClient struct {
	requester ptero.Requester
}

// NewNestsClient creates a new nests client.
func NewNestsClient(requester ptero.Requester) *NestsClient {
	return &NestsClient{
		requester: requester,
	}
}

// List implements ptero.NestsClient.List.
func (c *NestsClient) List() ptero.ListQuery {
	return ptero.NewListQuery(c.requester, nestsPath)
}

// Get implements ptero.NestsClient.Get.
func (c *NestsClient) Get(id int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, nestPath(id), ptero.NewItemResponse)
}

// EggsClient implements ptero.EggsClient.
type EggsClient struct {
	requester ptero.Requester
}

// NewEggsClient creates a new eggs client.
func NewEggsClient(requester ptero.Requester) *EggsClient {
	return &EggsClient{
		requester: requester,
	}
}

// List implements ptero.EggsClient.List.
func (c *EggsClient) List(nestID int) ptero.ListQuery {
	return ptero.NewListQuery(c.requester, nestPath(nestID)+"/eggs")
}

// Get implements ptero.EggsClient.Get.
func (c *EggsClient) Get(nestID, eggID int) ptero.Query[*ptero.ItemResponse] {
	return ptero.NewQuery(c.requester, fmt.Sprintf("%s/eggs/%d", nestPath(nestID), eggID), ptero.NewItemResponse)
}

func nestPath(id int) string {
	return fmt.Sprintf("%s/%d", nestsPath, id)
}
