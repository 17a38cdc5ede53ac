package client

import "github.com/fivetwenty-io/ptero/pkg/ptero"

// applicationAPI implements ptero.ApplicationAPI.
type applicationAPI struct {
	servers     *ServersClient
	nodes       *NodesClient
	allocations *AllocationsClient
	users       *UsersClient
	locations   *LocationsClient
	nests       *NestsClient
	eggs        *EggsClient
}

func newApplicationAPI(requester ptero.Requester) *applicationAPI {
	return &applicationAPI{
		servers:     NewServersClient(requester),
		nodes:       NewNodesClient(requester),
		allocations: NewAllocationsClient(requester),
		users:       NewUsersClient(requester),
		locations:   NewLocationsClient(requester),
		nests:       NewNestsClient(requester),
		eggs:        NewEggsClient(requester),
	}
}

// Servers implements ptero.ApplicationAPI.Servers.
func (a *applicationAPI) Servers() ptero.ServersClient {
	return a.servers
}

// Nodes implements ptero.ApplicationAPI.Nodes.
func (a *applicationAPI) Nodes() ptero.NodesClient {
	return a.nodes
}

// Allocations implements ptero.ApplicationAPI.Allocations.
func (a *applicationAPI) Allocations() ptero.AllocationsClient {
	return a.allocations
}

// Users implements ptero.ApplicationAPI.Users.
func (a *applicationAPI) Users() ptero.UsersClient {
	return a.users
}

// Locations implements ptero.ApplicationAPI.Locations.
func (a *applicationAPI) Locations() ptero.LocationsClient {
	return a.locations
}

// Nests implements ptero.ApplicationAPI.Nests.
func (a *applicationAPI) Nests() ptero.NestsClient {
	return a.nests
}

// Eggs implements ptero.ApplicationAPI.Eggs.
func (a *applicationAPI) Eggs() ptero.EggsClient {
	return a.eggs
}
