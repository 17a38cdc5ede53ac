package ptero

// ServerInclude is a relationship of an application server.
type ServerInclude string

const (
	ServerIncludeEgg         ServerInclude = "egg"
	ServerIncludeNest        ServerInclude = "nest"
	ServerIncludeAllocations ServerInclude = "allocations"
	ServerIncludeUser        ServerInclude = "user"
	ServerIncludeNode        ServerInclude = "node"
	ServerIncludeLocation    ServerInclude = "location"
)

// Value implements Enum.
func (i ServerInclude) Value() string { return string(i) }

// NodeInclude is a relationship of a node.
type NodeInclude string

const (
	NodeIncludeAllocations NodeInclude = "allocations"
	NodeIncludeLocation    NodeInclude = "location"
	NodeIncludeServers     NodeInclude = "servers"
)

// Value implements Enum.
func (i NodeInclude) Value() string { return string(i) }

// LocationInclude is a relationship of a location.
type LocationInclude string

const (
	LocationIncludeNodes   LocationInclude = "nodes"
	LocationIncludeServers LocationInclude = "servers"
)

// Value implements Enum.
func (i LocationInclude) Value() string { return string(i) }

// NestInclude is a relationship of a nest.
type NestInclude string

const (
	NestIncludeEggs    NestInclude = "eggs"
	NestIncludeServers NestInclude = "servers"
)

// Value implements Enum.
func (i NestInclude) Value() string { return string(i) }

// EggInclude is a relationship of an egg.
type EggInclude string

const (
	EggIncludeNest      EggInclude = "nest"
	EggIncludeVariables EggInclude = "variables"
	EggIncludeServers   EggInclude = "servers"
	EggIncludeConfig    EggInclude = "config"
	EggIncludeScript    EggInclude = "script"
)

// Value implements Enum.
func (i EggInclude) Value() string { return string(i) }

// PowerSignal is sent to a server's power endpoint.
type PowerSignal string

const (
	PowerStart   PowerSignal = "start"
	PowerStop    PowerSignal = "stop"
	PowerRestart PowerSignal = "restart"
	PowerKill    PowerSignal = "kill"
)

// Value implements Enum.
func (s PowerSignal) Value() string { return string(s) }

// Valid reports whether s is one of the four panel signals.
func (s PowerSignal) Valid() bool {
	switch s {
	case PowerStart, PowerStop, PowerRestart, PowerKill:
		return true
	default:
		return false
	}
}

// ScheduleTaskAction is what a schedule task does when it runs.
type ScheduleTaskAction string

const (
	TaskActionCommand ScheduleTaskAction = "command"
	TaskActionPower   ScheduleTaskAction = "power"
	TaskActionBackup  ScheduleTaskAction = "backup"
)

// Value implements Enum.
func (a ScheduleTaskAction) Value() string { return string(a) }

// SubuserPermission is one permission a subuser can hold on a server.
type SubuserPermission string

const (
	PermissionControlConsole SubuserPermission = "control.console"
	PermissionControlStart   SubuserPermission = "control.start"
	PermissionControlStop    SubuserPermission = "control.stop"
	PermissionControlRestart SubuserPermission = "control.restart"
	PermissionControlKill    SubuserPermission = "control.kill"

	PermissionFileRead        SubuserPermission = "file.read"
	PermissionFileReadContent SubuserPermission = "file.read-content"
	PermissionFileCreate      SubuserPermission = "file.create"
	PermissionFileUpdate      SubuserPermission = "file.update"
	PermissionFileDelete      SubuserPermission = "file.delete"
	PermissionFileArchive     SubuserPermission = "file.archive"
	PermissionFileSFTP        SubuserPermission = "file.sftp"

	PermissionDatabaseRead   SubuserPermission = "database.read"
	PermissionDatabaseCreate SubuserPermission = "database.create"
	PermissionDatabaseDelete SubuserPermission = "database.delete"
	PermissionDatabaseUpdate SubuserPermission = "database.update"

	PermissionScheduleRead    SubuserPermission = "schedule.read"
	PermissionScheduleCreate  SubuserPermission = "schedule.create"
	PermissionScheduleUpdate  SubuserPermission = "schedule.update"
	PermissionScheduleDelete  SubuserPermission = "schedule.delete"
	PermissionScheduleExecute SubuserPermission = "schedule.execute"

	PermissionBackupRead     SubuserPermission = "backup.read"
	PermissionBackupCreate   SubuserPermission = "backup.create"
	PermissionBackupDelete   SubuserPermission = "backup.delete"
	PermissionBackupDownload SubuserPermission = "backup.download"
	PermissionBackupRestore  SubuserPermission = "backup.restore"

	PermissionAllocationRead       SubuserPermission = "allocation.read"
	PermissionAllocationCreate     SubuserPermission = "allocation.create"
	PermissionAllocationUpdate     SubuserPermission = "allocation.update"
	PermissionAllocationDelete     SubuserPermission = "allocation.delete"
	PermissionAllocationSetPrimary SubuserPermission = "allocation.set-primary"

	PermissionSettingsRename      SubuserPermission = "settings.rename"
	PermissionSettingsReinstall   SubuserPermission = "settings.reinstall"
	PermissionSettingsDockerImage SubuserPermission = "settings.docker-image"

	PermissionStartupRead   SubuserPermission = "startup.read"
	PermissionStartupUpdate SubuserPermission = "startup.update"

	PermissionUserRead   SubuserPermission = "user.read"
	PermissionUserCreate SubuserPermission = "user.create"
	PermissionUserUpdate SubuserPermission = "user.update"
	PermissionUserDelete SubuserPermission = "user.delete"
)

// Value implements Enum.
func (p SubuserPermission) Value() string { return string(p) }

// PermissionStrings converts permissions to the strings the panel expects.
func PermissionStrings(permissions []SubuserPermission) []string {
	out := make([]string, len(permissions))
	for i, permission := range permissions {
		out[i] = string(permission)
	}

	return out
}
