package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// MinHTTPTimeout is the lowest timeout a client accepts.
	MinHTTPTimeout = 1 * time.Second
)

// Retry settings. Retries are off unless RetryMax is raised.
const (
	// DefaultRetryMax is the default number of retries after the first attempt.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Panel API layout.
const (
	// ApplicationPrefix is the root of the admin (application) API.
	ApplicationPrefix = "api/application"

	// ClientPrefix is the root of the per-user client API.
	ClientPrefix = "api/client"

	// ClientServersPrefix is the root of per-server client endpoints.
	ClientServersPrefix = ClientPrefix + "/servers"

	// DefaultDataKey is the payload key holding list items.
	DefaultDataKey = "data"

	// DefaultUploadDirectory is where uploads land when no directory is given.
	DefaultUploadDirectory = "/"

	// ShortIdentifierLength is the length of a server's short uuid.
	ShortIdentifierLength = 8
)

// Token prefixes accepted by the panel.
const (
	// ClientTokenPrefix marks a client (account) API key.
	ClientTokenPrefix = "ptlc_"

	// ApplicationTokenPrefix marks an application (admin) API key.
	ApplicationTokenPrefix = "pacc_"
)

// Cache defaults.
const (
	// DefaultCacheSize is the default number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long cached GET responses stay valid.
	DefaultCacheTTL = 30 * time.Second

	// DefaultNATSBucket is the JetStream KV bucket used for caching.
	DefaultNATSBucket = "ptero-cache"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
