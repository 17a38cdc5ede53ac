package ptero

import (
	"net/mail"
	"strings"
)

// NodeCreateParams is the body of POST api/application/nodes.
type NodeCreateParams struct {
	Name               string  `json:"name"                  yaml:"name"`
	LocationID         int     `json:"location_id"           yaml:"location_id"`
	FQDN               string  `json:"fqdn"                  yaml:"fqdn"`
	Scheme             string  `json:"scheme"                yaml:"scheme"`
	BehindProxy        bool    `json:"behind_proxy"          yaml:"behind_proxy"`
	MaintenanceMode    bool    `json:"maintenance_mode"      yaml:"maintenance_mode"`
	Memory             int     `json:"memory"                yaml:"memory"`
	MemoryOverallocate int     `json:"memory_overallocate"   yaml:"memory_overallocate"`
	Disk               int     `json:"disk"                  yaml:"disk"`
	DiskOverallocate   int     `json:"disk_overallocate"     yaml:"disk_overallocate"`
	UploadSize         int     `json:"upload_size"           yaml:"upload_size"`
	DaemonListen       int     `json:"daemon_listen"         yaml:"daemon_listen"`
	DaemonSFTP         int     `json:"daemon_sftp"           yaml:"daemon_sftp"`
	Description        *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewNodeCreateParams returns params with the panel defaults: https, behind a
// proxy, 100 MB uploads, daemon on 8080 and SFTP on 2022.
func NewNodeCreateParams(name string, locationID int, fqdn string, memory, memoryOverallocate, disk, diskOverallocate int) *NodeCreateParams {
	return &NodeCreateParams{
		Name:               name,
		LocationID:         locationID,
		FQDN:               fqdn,
		Scheme:             "https",
		BehindProxy:        true,
		Memory:             memory,
		MemoryOverallocate: memoryOverallocate,
		Disk:               disk,
		DiskOverallocate:   diskOverallocate,
		UploadSize:         100,
		DaemonListen:       8080,
		DaemonSFTP:         2022,
	}
}

// NodeUpdateParams is the body of PATCH api/application/nodes/{id}.
type NodeUpdateParams struct {
	Name               *string `json:"name,omitempty"                yaml:"name,omitempty"`
	LocationID         *int    `json:"location_id,omitempty"         yaml:"location_id,omitempty"`
	FQDN               *string `json:"fqdn,omitempty"                yaml:"fqdn,omitempty"`
	Scheme             *string `json:"scheme,omitempty"              yaml:"scheme,omitempty"`
	BehindProxy        *bool   `json:"behind_proxy,omitempty"        yaml:"behind_proxy,omitempty"`
	MaintenanceMode    *bool   `json:"maintenance_mode,omitempty"    yaml:"maintenance_mode,omitempty"`
	Memory             *int    `json:"memory,omitempty"              yaml:"memory,omitempty"`
	MemoryOverallocate *int    `json:"memory_overallocate,omitempty" yaml:"memory_overallocate,omitempty"`
	Disk               *int    `json:"disk,omitempty"                yaml:"disk,omitempty"`
	DiskOverallocate   *int    `json:"disk_overallocate,omitempty"   yaml:"disk_overallocate,omitempty"`
	UploadSize         *int    `json:"upload_size,omitempty"         yaml:"upload_size,omitempty"`
	DaemonListen       *int    `json:"daemon_listen,omitempty"       yaml:"daemon_listen,omitempty"`
	DaemonSFTP         *int    `json:"daemon_sftp,omitempty"         yaml:"daemon_sftp,omitempty"`
	Description        *string `json:"description,omitempty"         yaml:"description,omitempty"`
}

// UserCreateParams is the body of POST api/application/users.
type UserCreateParams struct {
	Email      string  `json:"email"                 yaml:"email"`
	Username   string  `json:"username"              yaml:"username"`
	FirstName  string  `json:"first_name"            yaml:"first_name"`
	LastName   string  `json:"last_name"             yaml:"last_name"`
	Password   *string `json:"password,omitempty"    yaml:"password,omitempty"`
	ExternalID *string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Language   *string `json:"language,omitempty"    yaml:"language,omitempty"`
	RootAdmin  *bool   `json:"root_admin,omitempty"  yaml:"root_admin,omitempty"`
}

// Validate checks the required fields.
func (p *UserCreateParams) Validate() error {
	var problems []string

	if _, err := mail.ParseAddress(p.Email); err != nil {
		problems = append(problems, "email must be a valid address")
	}

	for field, value := range map[string]string{"username": p.Username, "first_name": p.FirstName, "last_name": p.LastName} {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, field+" is required")
		}
	}

	return joinProblems(problems)
}

// UserUpdateParams is the body of PATCH api/application/users/{id}.
type UserUpdateParams struct {
	Email      *string `json:"email,omitempty"       yaml:"email,omitempty"`
	Username   *string `json:"username,omitempty"    yaml:"username,omitempty"`
	FirstName  *string `json:"first_name,omitempty"  yaml:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"   yaml:"last_name,omitempty"`
	Password   *string `json:"password,omitempty"    yaml:"password,omitempty"`
	ExternalID *string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Language   *string `json:"language,omitempty"    yaml:"language,omitempty"`
	RootAdmin  *bool   `json:"root_admin,omitempty"  yaml:"root_admin,omitempty"`
}

// LocationParams is the body for creating or updating a location.
type LocationParams struct {
	Short string `json:"short" yaml:"short"`
	Long  string `json:"long"  yaml:"long"`
}

// AllocationCreateParams adds IP/port allocations to a node. Ports may be
// single ports or ranges such as "25565-25570".
type AllocationCreateParams struct {
	IP    string   `json:"ip"              yaml:"ip"`
	Ports []string `json:"ports"           yaml:"ports"`
	Alias *string  `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// ScheduleParams is the body for creating or updating a schedule. Cron
// fields use panel syntax, e.g. "*/5".
type ScheduleParams struct {
	Name           string `json:"name"             yaml:"name"`
	Minute         string `json:"minute"           yaml:"minute"`
	Hour           string `json:"hour"             yaml:"hour"`
	Month          string `json:"month"            yaml:"month"`
	DayOfWeek      string `json:"day_of_week"      yaml:"day_of_week"`
	DayOfMonth     string `json:"day_of_month"     yaml:"day_of_month"`
	IsActive       bool   `json:"is_active"        yaml:"is_active"`
	OnlyWhenOnline bool   `json:"only_when_online" yaml:"only_when_online"`
}

// NewScheduleParams returns an active schedule that only runs while the
// server is online.
func NewScheduleParams(name, minute, hour, month, dayOfWeek, dayOfMonth string) *ScheduleParams {
	return &ScheduleParams{
		Name:           name,
		Minute:         minute,
		Hour:           hour,
		Month:          month,
		DayOfWeek:      dayOfWeek,
		DayOfMonth:     dayOfMonth,
		IsActive:       true,
		OnlyWhenOnline: true,
	}
}

// ScheduleTaskParams is the body for creating or updating a schedule task.
type ScheduleTaskParams struct {
	Action            ScheduleTaskAction `json:"action"                        yaml:"action"`
	Payload           string             `json:"payload"                       yaml:"payload"`
	TimeOffset        int                `json:"time_offset"                   yaml:"time_offset"`
	ContinueOnFailure *bool              `json:"continue_on_failure,omitempty" yaml:"continue_on_failure,omitempty"`
}
