package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ptero/internal/constants"
	"github.com/fivetwenty-io/ptero/internal/http"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// Client implements the ptero.Client interface.
type Client struct {
	httpClient *http.Client
	requester  *requester
	config     ptero.Config

	application *applicationAPI
	account     *accountAPI
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ptero.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if len(config.RequestInterceptors) > 0 || len(config.ResponseInterceptors) > 0 {
		chain := ptero.NewInterceptorChain(config.RequestInterceptors, config.ResponseInterceptors)
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// New creates a panel client. The token is validated before anything else,
// so an invalid key never reaches the network. BaseURL must already be
// normalized; pteroclient.New does that.
func New(config *ptero.Config) (*Client, error) {
	if config == nil {
		return nil, ptero.ErrConfigRequired
	}

	if err := ptero.ValidateToken(config.Token); err != nil {
		return nil, err
	}

	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, ptero.ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.Token, createHTTPClientOptions(config)...)

	return newClient(httpClient, *config), nil
}

func newClient(httpClient *http.Client, config ptero.Config) *Client {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	client := &Client{
		httpClient: httpClient,
		config:     config,
		requester: &requester{
			transport: httpClient,
			cache:     config.Cache,
			ttl:       ttl,
			scope:     tokenScope(config.Token),
			logger:    config.Logger,
			stats:     &cacheStats{},
		},
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.application = newApplicationAPI(c.requester)
	c.account = newAccountAPI(c.requester, c.httpClient)
}

// Application implements ptero.Client.Application.
func (c *Client) Application() ptero.ApplicationAPI {
	return c.application
}

// Account implements ptero.Client.Account.
func (c *Client) Account() ptero.AccountAPI {
	return c.account
}

// Request implements ptero.Client.Request.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (*ptero.Response, error) {
	normalized, err := ptero.ValidateMethod(method)
	if err != nil {
		return nil, err
	}

	return c.requester.Do(ctx, normalized, path, query, body), nil
}

// WithToken implements ptero.Client.WithToken. The new client shares the
// connection pool and cache with the receiver; cache keys are scoped per
// token.
func (c *Client) WithToken(token string) (ptero.Client, error) {
	if err := ptero.ValidateToken(token); err != nil {
		return nil, err
	}

	config := c.config
	config.Token = token

	return newClient(c.httpClient.WithToken(token), config), nil
}

// BaseURL implements ptero.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.httpClient.BaseURL()
}

// Requester exposes the normalizing requester, for helpers such as
// ptero.ForEachPage.
func (c *Client) Requester() ptero.Requester {
	return c.requester
}

// CacheStats returns cache hit and miss counters. They stay zero when no
// cache is configured.
func (c *Client) CacheStats() ptero.CacheStats {
	return c.requester.stats.snapshot()
}
