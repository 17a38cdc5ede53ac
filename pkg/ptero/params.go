package ptero

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// ServerLimits are the resource limits of a server.
type ServerLimits struct {
	Memory  int     `json:"memory"            yaml:"memory"`
	Swap    int     `json:"swap"              yaml:"swap"`
	Disk    int     `json:"disk"              yaml:"disk"`
	IO      int     `json:"io"                yaml:"io"`
	CPU     int     `json:"cpu"               yaml:"cpu"`
	Threads *string `json:"threads,omitempty" yaml:"threads,omitempty"`
}

// FeatureLimits cap the databases, allocations and backups of a server.
type FeatureLimits struct {
	Databases   int `json:"databases"   yaml:"databases"`
	Allocations int `json:"allocations" yaml:"allocations"`
	Backups     int `json:"backups"     yaml:"backups"`
}

// ServerAllocation places a server on explicit allocations.
type ServerAllocation struct {
	Default    int   `json:"default"              yaml:"default"`
	Additional []int `json:"additional,omitempty" yaml:"additional,omitempty"`
}

// ServerDeploy lets the panel pick an allocation in the given locations.
type ServerDeploy struct {
	Locations   []int    `json:"locations"    yaml:"locations"`
	DedicatedIP bool     `json:"dedicated_ip" yaml:"dedicated_ip"`
	PortRange   []string `json:"port_range"   yaml:"port_range"`
}

// CreateServerParams is the body of POST api/application/servers.
//
// Exactly one of Allocation and Deploy must be set.
type CreateServerParams struct {
	Name              string            `json:"name"                  yaml:"name"`
	User              int               `json:"user"                  yaml:"user"`
	Egg               int               `json:"egg"                   yaml:"egg"`
	DockerImage       string            `json:"docker_image"          yaml:"docker_image"`
	Startup           string            `json:"startup"               yaml:"startup"`
	Environment       map[string]string `json:"environment"           yaml:"environment"`
	Limits            ServerLimits      `json:"limits"                yaml:"limits"`
	FeatureLimits     FeatureLimits     `json:"feature_limits"        yaml:"feature_limits"`
	SkipScripts       bool              `json:"skip_scripts"          yaml:"skip_scripts"`
	StartOnCompletion bool              `json:"start_on_completion"   yaml:"start_on_completion"`
	OOMDisabled       bool              `json:"oom_disabled"          yaml:"oom_disabled"`
	Allocation        *ServerAllocation `json:"allocation,omitempty"  yaml:"allocation,omitempty"`
	Deploy            *ServerDeploy     `json:"deploy,omitempty"      yaml:"deploy,omitempty"`
	Description       *string           `json:"description,omitempty" yaml:"description,omitempty"`
	ExternalID        *string           `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// NewCreateServerParams returns params with the panel defaults filled in.
func NewCreateServerParams(name string, user, egg int, dockerImage, startup string) *CreateServerParams {
	return &CreateServerParams{
		Name:              name,
		User:              user,
		Egg:               egg,
		DockerImage:       dockerImage,
		Startup:           startup,
		Environment:       map[string]string{},
		Limits:            ServerLimits{IO: 500},
		FeatureLimits:     FeatureLimits{Allocations: 1},
		StartOnCompletion: true,
	}
}

// SetEnv stores an environment variable. Booleans become "1" or "0", other
// scalars their string form.
func (p *CreateServerParams) SetEnv(key string, value any) *CreateServerParams {
	if p.Environment == nil {
		p.Environment = map[string]string{}
	}

	p.Environment[key] = envString(value)

	return p
}

// UseAllocation places the server on explicit allocations and clears Deploy.
func (p *CreateServerParams) UseAllocation(defaultID int, additional ...int) *CreateServerParams {
	p.Allocation = &ServerAllocation{Default: defaultID, Additional: uniqueInts(additional)}
	p.Deploy = nil

	return p
}

// UseDeploy lets the panel choose an allocation and clears Allocation.
func (p *CreateServerParams) UseDeploy(locations []int, dedicatedIP bool, portRanges ...string) *CreateServerParams {
	if portRanges == nil {
		portRanges = []string{}
	}

	p.Deploy = &ServerDeploy{Locations: uniqueInts(locations), DedicatedIP: dedicatedIP, PortRange: portRanges}
	p.Allocation = nil

	return p
}

// Validate checks the params before they are sent.
//
//nolint:cyclop // one check per panel rule
func (p *CreateServerParams) Validate() error {
	var problems []string

	for field, value := range map[string]string{"name": p.Name, "docker_image": p.DockerImage, "startup": p.Startup} {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, field+" is required")
		}
	}

	if p.User <= 0 {
		problems = append(problems, "user must be > 0")
	}

	if p.Egg <= 0 {
		problems = append(problems, "egg must be > 0")
	}

	if p.Limits.Memory < 1 {
		problems = append(problems, "limits.memory must be >= 1 MB")
	}

	if p.Limits.Disk < 1 {
		problems = append(problems, "limits.disk must be >= 1 MB")
	}

	if p.Limits.IO < 10 || p.Limits.IO > 1000 {
		problems = append(problems, "limits.io must be between 10 and 1000")
	}

	if p.Limits.CPU < 0 {
		problems = append(problems, "limits.cpu must be >= 0")
	}

	if p.FeatureLimits.Databases < 0 || p.FeatureLimits.Allocations < 0 || p.FeatureLimits.Backups < 0 {
		problems = append(problems, "feature_limits must be >= 0")
	}

	switch {
	case p.Allocation == nil && p.Deploy == nil:
		problems = append(problems, "either allocation or deploy must be provided")
	case p.Allocation != nil && p.Deploy != nil:
		problems = append(problems, "allocation and deploy are mutually exclusive")
	case p.Allocation != nil:
		if p.Allocation.Default <= 0 {
			problems = append(problems, "allocation.default must be > 0")
		}

		if !allPositive(p.Allocation.Additional) {
			problems = append(problems, "allocation.additional must be positive IDs")
		}
	default:
		if len(p.Deploy.Locations) == 0 {
			problems = append(problems, "deploy.locations must not be empty")
		} else if !allPositive(p.Deploy.Locations) {
			problems = append(problems, "deploy.locations must be positive IDs")
		}

		if slices.Contains(p.Deploy.PortRange, "") {
			problems = append(problems, "deploy.port_range entries must not be empty")
		}
	}

	return joinProblems(problems)
}

// ServerBuildParams is the body of PATCH servers/{id}/build. Only set fields
// are sent.
type ServerBuildParams struct {
	Allocation *int

	Memory      *int
	Swap        *int
	Disk        *int
	IO          *int
	CPU         *int
	Threads     *string
	OOMDisabled *bool

	Databases   *int
	Allocations *int
	Backups     *int
}

// MarshalJSON nests limits and feature_limits and drops unset fields.
func (p ServerBuildParams) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if p.Allocation != nil {
		out["allocation"] = *p.Allocation
	}

	limits := map[string]any{}
	setIfPresent(limits, "memory", p.Memory)
	setIfPresent(limits, "swap", p.Swap)
	setIfPresent(limits, "disk", p.Disk)
	setIfPresent(limits, "io", p.IO)
	setIfPresent(limits, "cpu", p.CPU)
	setIfPresent(limits, "threads", p.Threads)
	setIfPresent(limits, "oom_disabled", p.OOMDisabled)

	if len(limits) > 0 {
		out["limits"] = limits
	}

	features := map[string]any{}
	setIfPresent(features, "databases", p.Databases)
	setIfPresent(features, "allocations", p.Allocations)
	setIfPresent(features, "backups", p.Backups)

	if len(features) > 0 {
		out["feature_limits"] = features
	}

	return json.Marshal(out)
}

// ServerDetailsParams is the body of PATCH servers/{id}/details.
type ServerDetailsParams struct {
	Name        *string
	User        *int
	Description *string

	// ExternalID is sent when set. ClearExternalID sends an explicit null.
	ExternalID      *string
	ClearExternalID bool
}

// MarshalJSON drops unset fields and keeps an explicit external_id null.
func (p ServerDetailsParams) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	setIfPresent(out, "name", p.Name)
	setIfPresent(out, "user", p.User)
	setIfPresent(out, "description", p.Description)

	switch {
	case p.ExternalID != nil && *p.ExternalID != "":
		out["external_id"] = *p.ExternalID
	case p.ExternalID != nil || p.ClearExternalID:
		out["external_id"] = nil
	}

	return json.Marshal(out)
}

// ServerStartupParams is the body of PATCH servers/{id}/startup.
type ServerStartupParams struct {
	Egg          *int              `json:"egg,omitempty"           yaml:"egg,omitempty"`
	Startup      *string           `json:"startup,omitempty"       yaml:"startup,omitempty"`
	Image        *string           `json:"image,omitempty"         yaml:"image,omitempty"`
	SkipScripts  *bool             `json:"skip_scripts,omitempty"  yaml:"skip_scripts,omitempty"`
	Environment  map[string]string `json:"environment,omitempty"   yaml:"environment,omitempty"`
	DockerImages map[string]string `json:"docker_images,omitempty" yaml:"docker_images,omitempty"`
}

// SetEnv stores an environment variable using the same conversion as
// CreateServerParams.SetEnv.
func (p *ServerStartupParams) SetEnv(key string, value any) *ServerStartupParams {
	if p.Environment == nil {
		p.Environment = map[string]string{}
	}

	p.Environment[key] = envString(value)

	return p
}

func envString(value any) string {
	if b, ok := value.(bool); ok {
		if b {
			return "1"
		}

		return "0"
	}

	return cast.ToString(value)
}

func uniqueInts(values []int) []int {
	if len(values) == 0 {
		return nil
	}

	out := make([]int, 0, len(values))
	for _, value := range values {
		if !slices.Contains(out, value) {
			out = append(out, value)
		}
	}

	return out
}

func allPositive(values []int) bool {
	for _, value := range values {
		if value <= 0 {
			return false
		}
	}

	return true
}

func setIfPresent[T any](out map[string]any, key string, value *T) {
	if value != nil {
		out[key] = *value
	}
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}

	slices.Sort(problems)

	return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(problems, "; "))
}

// Ptr returns a pointer to value, for optional params fields.
func Ptr[T any](value T) *T {
	return &value
}
