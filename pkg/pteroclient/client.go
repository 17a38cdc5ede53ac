package pteroclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ptero/internal/client"
	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

// New creates a panel client. The caller's config is not modified.
func New(config *ptero.Config) (ptero.Client, error) {
	if config == nil {
		return nil, ptero.ErrConfigRequired
	}

	if err := ptero.ValidateToken(config.Token); err != nil {
		return nil, err
	}

	normalized := *config

	baseURL, err := NormalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	normalized.BaseURL = baseURL

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client with default settings.
func NewWithToken(baseURL, token string) (ptero.Client, error) {
	return New(&ptero.Config{BaseURL: baseURL, Token: token})
}

// NormalizeBaseURL trims whitespace and trailing slashes and adds https://
// when no scheme is given. Only http and https panels are accepted.
func NormalizeBaseURL(raw string) (string, error) {
	baseURL := strings.TrimSpace(raw)
	if strings.Trim(baseURL, "/") == "" {
		return "", ptero.ErrBaseURLRequired
	}

	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing panel URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ptero.ErrUnsupportedScheme, parsed.Scheme)
	}

	if parsed.Hostname() == "" || (strings.HasSuffix(parsed.Host, ":") && parsed.Port() == "") {
		return "", ptero.ErrNoHostInURL
	}

	return strings.TrimRight(baseURL, "/"), nil
}
