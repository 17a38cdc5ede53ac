package ptero

import (
	"context"
)

// ServersClient manages servers through the application API.
type ServersClient interface {
	List() ListQuery
	Get(id int) Query[*ItemResponse]
	External(externalID string) Query[*ItemResponse]

	// GetByUUID scans every page for a server whose uuid matches.
	GetByUUID(ctx context.Context, uuid string) *ItemResponse

	// Identifier resolves the short identifier client API calls need.
	Identifier(ctx context.Context, id int) (string, *ItemResponse)

	Create(ctx context.Context, params *CreateServerParams) (*ItemResponse, error)
	UpdateDetails(ctx context.Context, id int, params *ServerDetailsParams) *ItemResponse
	UpdateBuild(ctx context.Context, id int, params *ServerBuildParams) *ItemResponse
	UpdateStartup(ctx context.Context, id int, params *ServerStartupParams) *ItemResponse
	Suspend(ctx context.Context, id int) *ActionResponse
	Unsuspend(ctx context.Context, id int) *ActionResponse
	Reinstall(ctx context.Context, id int) *ActionResponse
	Delete(ctx context.Context, id int) *ActionResponse
	ForceDelete(ctx context.Context, id int) *ActionResponse
}

// NodesClient manages nodes.
type NodesClient interface {
	List() ListQuery
	Get(id int) Query[*ItemResponse]
	Configuration(ctx context.Context, id int) *ItemResponse
	Create(ctx context.Context, params *NodeCreateParams) *ItemResponse
	Update(ctx context.Context, id int, params *NodeUpdateParams) *ItemResponse
	Delete(ctx context.Context, id int) *ActionResponse
}

// AllocationsClient manages the allocations of a node.
type AllocationsClient interface {
	List(nodeID int) ListQuery
	Create(ctx context.Context, nodeID int, params *AllocationCreateParams) *ActionResponse
	Delete(ctx context.Context, nodeID, allocationID int) *ActionResponse
}

// UsersClient manages panel users.
type UsersClient interface {
	List() ListQuery
	Get(id int) Query[*ItemResponse]
	External(externalID string) Query[*ItemResponse]
	Create(ctx context.Context, params *UserCreateParams) (*ItemResponse, error)
	Update(ctx context.Context, id int, params *UserUpdateParams) *ItemResponse
	Delete(ctx context.Context, id int) *ActionResponse
}

// LocationsClient manages locations.
type LocationsClient interface {
	List() ListQuery
	Get(id int) Query[*ItemResponse]
	Create(ctx context.Context, params *LocationParams) *ItemResponse
	Update(ctx context.Context, id int, params *LocationParams) *ItemResponse
	Delete(ctx context.Context, id int) *ActionResponse
}

// NestsClient reads nests.
type NestsClient interface {
	List() ListQuery
	Get(id int) Query[*ItemResponse]
}

// EggsClient reads the eggs of a nest.
type EggsClient interface {
	List(nestID int) ListQuery
	Get(nestID, eggID int) Query[*ItemResponse]
}

// ServerClient controls one server through the client API. Servers are
// addressed by their short identifier.
type ServerClient interface {
	// Details defaults to including egg and subusers.
	Details(ctx context.Context, identifier string, includes ...string) *ItemResponse
	Resources(ctx context.Context, identifier string) *ItemResponse
	Websocket(ctx context.Context, identifier string) *ItemResponse
	Power(ctx context.Context, identifier string, signal PowerSignal) *ActionResponse
	Command(ctx context.Context, identifier, command string) *ActionResponse
}

// FilesClient manages a server's files.
type FilesClient interface {
	List(identifier, directory string) ListQuery
	Read(ctx context.Context, identifier, path string) *ItemResponse
	Download(ctx context.Context, identifier, path string) *ItemResponse
	Rename(ctx context.Context, identifier, root, from, to string) *ActionResponse
	Copy(ctx context.Context, identifier, location string) *ActionResponse
	Write(ctx context.Context, identifier, path, contents string) *ActionResponse
	Compress(ctx context.Context, identifier, root string, files []string) *ActionResponse
	Decompress(ctx context.Context, identifier, root, file string) *ActionResponse
	Delete(ctx context.Context, identifier, root string, files []string) *ActionResponse
	CreateFolder(ctx context.Context, identifier, root, name string) *ActionResponse
	Exists(ctx context.Context, identifier, directory, name string) (bool, *ListResponse)
	UploadURL(ctx context.Context, identifier, directory string) *ItemResponse

	// Upload sends one file to a signed upload URL. An empty signedURL is
	// requested from the panel first.
	Upload(ctx context.Context, identifier string, file UploadFile, directory, signedURL string) *ActionResponse

	NewUpload(identifier string) UploadBuilder
}

// DatabasesClient manages a server's databases.
type DatabasesClient interface {
	List(identifier string) ListQuery
	Create(ctx context.Context, identifier, name, remote string) *ItemResponse
	RotatePassword(ctx context.Context, identifier, databaseID string) *ItemResponse
	Delete(ctx context.Context, identifier, databaseID string) *ActionResponse
}

// SchedulesClient manages a server's schedules and their tasks.
type SchedulesClient interface {
	List(identifier string) ListQuery
	Get(ctx context.Context, identifier string, scheduleID int) *ItemResponse
	Create(ctx context.Context, identifier string, params *ScheduleParams) *ItemResponse
	Update(ctx context.Context, identifier string, scheduleID int, params *ScheduleParams) *ItemResponse
	Execute(ctx context.Context, identifier string, scheduleID int) *ActionResponse
	Delete(ctx context.Context, identifier string, scheduleID int) *ActionResponse
	CreateTask(ctx context.Context, identifier string, scheduleID int, params *ScheduleTaskParams) *ItemResponse
	UpdateTask(ctx context.Context, identifier string, scheduleID, taskID int, params *ScheduleTaskParams) *ItemResponse
	DeleteTask(ctx context.Context, identifier string, scheduleID, taskID int) *ActionResponse
}

// NetworkClient manages a server's allocations.
type NetworkClient interface {
	List(identifier string) ListQuery
	Assign(ctx context.Context, identifier string) *ItemResponse
	SetNote(ctx context.Context, identifier string, allocationID int, note string) *ItemResponse
	SetPrimary(ctx context.Context, identifier string, allocationID int) *ItemResponse
	Delete(ctx context.Context, identifier string, allocationID int) *ActionResponse
}

// BackupsClient manages a server's backups.
type BackupsClient interface {
	List(identifier string) ListQuery
	Get(ctx context.Context, identifier, backupUUID string) *ItemResponse
	Download(ctx context.Context, identifier, backupUUID string) *ItemResponse
	Create(ctx context.Context, identifier, name string, ignored []string) *ItemResponse
	Delete(ctx context.Context, identifier, backupUUID string) *ActionResponse
	Restore(ctx context.Context, identifier, backupUUID string, truncate bool) *ActionResponse
	ToggleLock(ctx context.Context, identifier, backupUUID string) *ItemResponse
}

// StartupClient reads and updates startup variables.
type StartupClient interface {
	Variables(ctx context.Context, identifier string) *ListResponse
	UpdateVariable(ctx context.Context, identifier, key, value string) *ItemResponse
}

// SettingsClient changes server settings.
type SettingsClient interface {
	Rename(ctx context.Context, identifier, name string) *ActionResponse
	Reinstall(ctx context.Context, identifier string) *ActionResponse
	SetDockerImage(ctx context.Context, identifier, image string) *ActionResponse
}

// SubusersClient manages who else can access a server.
type SubusersClient interface {
	List(identifier string) ListQuery
	Get(ctx context.Context, identifier, userUUID string) *ItemResponse
	Create(ctx context.Context, identifier, email string, permissions []SubuserPermission) *ItemResponse
	Update(ctx context.Context, identifier, userUUID string, permissions []SubuserPermission) *ItemResponse
	Delete(ctx context.Context, identifier, userUUID string) *ActionResponse
}
