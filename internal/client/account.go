package client

import (
	"net/url"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/internal/http"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// accountAPI implements ptero.AccountAPI.
type accountAPI struct {
	requester ptero.Requester

	server    *ServerClient
	files     *FilesClient
	databases *DatabasesClient
	schedules *SchedulesClient
	network   *NetworkClient
	backups   *BackupsClient
	startup   *StartupClient
	settings  *SettingsClient
	subusers  *SubusersClient
}

func newAccountAPI(requester ptero.Requester, uploader *http.Client) *accountAPI {
	return &accountAPI{
		requester: requester,
		server:    NewServerClient(requester),
		files:     NewFilesClient(requester, uploader),
		databases: NewDatabasesClient(requester),
		schedules: NewSchedulesClient(requester),
		network:   NewNetworkClient(requester),
		backups:   NewBackupsClient(requester),
		startup:   NewStartupClient(requester),
		settings:  NewSettingsClient(requester),
		subusers:  NewSubusersClient(requester),
	}
}

// Servers implements ptero.AccountAPI.Servers.
func (a *accountAPI) Servers() ptero.ListQuery {
	return ptero.NewListQuery(a.requester, constants.ClientPrefix)
}

// Server implements ptero.AccountAPI.Server.
func (a *accountAPI) Server() ptero.ServerClient {
	return a.server
}

// Files implements ptero.AccountAPI.Files.
func (a *accountAPI) Files() ptero.FilesClient {
	return a.files
}

// Databases implements ptero.AccountAPI.Databases.
func (a *accountAPI) Databases() ptero.DatabasesClient {
	return a.databases
}

// Schedules implements ptero.AccountAPI.Schedules.
func (a *accountAPI) Schedules() ptero.SchedulesClient {
	return a.schedules
}

// Network implements ptero.AccountAPI.Network.
func (a *accountAPI) Network() ptero.NetworkClient {
	return a.network
}

// Backups implements ptero.AccountAPI.Backups.
func (a *accountAPI) Backups() ptero.BackupsClient {
	return a.backups
}

// Startup implements ptero.AccountAPI.Startup.
func (a *accountAPI) Startup() ptero.StartupClient {
	return a.startup
}

// Settings implements ptero.AccountAPI.Settings.
func (a *accountAPI) Settings() ptero.SettingsClient {
	return a.settings
}

// Subusers implements ptero.AccountAPI.Subusers.
func (a *accountAPI) Subusers() ptero.SubusersClient {
	return a.subusers
}

// clientServerPath returns the client API path of a server, followed by any
// extra segments.
func clientServerPath(identifier string, segments ...string) string {
	path := constants.ClientServersPrefix + "/" + url.PathEscape(identifier)

	for _, segment := range segments {
		path += "/" + segment
	}

	return path
}
