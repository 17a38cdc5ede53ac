package ptero

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Client is a configured connection to one panel with one API key.
//
// A Client is immutable after construction and safe for concurrent use.
// WithToken returns a new Client instead of changing the key in place.
type Client interface {
	// Application returns the admin API (api/application).
	Application() ApplicationAPI

	// Account returns the per-user client API (api/client).
	Account() AccountAPI

	// Request issues a raw request relative to the base URL. Only an invalid
	// method produces an error; HTTP and transport failures are normalized.
	Request(ctx context.Context, method, path string, query url.Values, body any) (*Response, error)

	// WithToken returns a copy of the client that authenticates with token.
	WithToken(token string) (Client, error)

	// BaseURL returns the normalized panel URL.
	BaseURL() string
}

// ApplicationAPI groups the admin resource clients.
type ApplicationAPI interface {
	Servers() ServersClient
	Nodes() NodesClient
	Allocations() AllocationsClient
	Users() UsersClient
	Locations() LocationsClient
	Nests() NestsClient
	Eggs() EggsClient
}

// AccountAPI groups the client API resource clients.
type AccountAPI interface {
	// Servers lists the servers the API key can access.
	Servers() ListQuery

	Server() ServerClient
	Files() FilesClient
	Databases() DatabasesClient
	Schedules() SchedulesClient
	Network() NetworkClient
	Backups() BackupsClient
	Startup() StartupClient
	Settings() SettingsClient
	Subusers() SubusersClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ptero.Client.
//
// # Authentication
//
// Token must be a panel API key. Client keys start with "ptlc_" and
// application keys with "pacc_"; anything else is rejected by
// pteroclient.New before a transport is created.
//
// # Timeouts and retries
//
// Timeout applies to every request and is floored at one second. Per-call
// deadlines can still be set through the context. The client does not retry
// by default: a non-2xx response is returned as a non-OK envelope. Setting
// RetryMax above zero retries 429 and 5xx responses with exponential backoff
// between RetryWaitMin and RetryWaitMax.
type Config struct {
	// BaseURL is the panel root, e.g. "https://panel.example.com". A missing
	// scheme defaults to https and a trailing slash is dropped.
	BaseURL string

	// Token is the panel API key sent as a Bearer token.
	Token string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables request and response logging through Logger.
	Debug bool

	// Logger receives transport diagnostics. Nil disables logging.
	Logger Logger

	// HTTPClient replaces the underlying *http.Client. Its Timeout is
	// overwritten by Timeout.
	HTTPClient *http.Client

	// RetryMax is the number of retries after the first attempt.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RequestInterceptors run in order before each request is sent.
	RequestInterceptors []RequestInterceptor

	// ResponseInterceptors run in order after each response is received.
	ResponseInterceptors []ResponseInterceptor

	// Cache, when set, serves repeated successful GET requests.
	Cache Cache

	// CacheTTL is how long cached responses stay valid. Zero means 30 seconds.
	CacheTTL time.Duration
}
