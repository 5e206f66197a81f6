package openai

import (
	"net/http"
	"time"

	"github.com/petal-labs/chatstream/core"
)

// Config holds configuration for the client.
type Config struct {
	// APIKey is the bearer token (required).
	APIKey core.Secret

	// BaseURL is the service root without the /v1 prefix.
	// Defaults to https://api.openai.com
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// OrgID is the optional organization sent as OpenAI-Organization.
	OrgID string

	// ProjectID is the optional project sent as OpenAI-Project.
	ProjectID string

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout bounds each HTTP exchange, including reading a stream to its
	// end. Zero means no limit beyond the context.
	Timeout time.Duration

	// Telemetry receives request lifecycle events. Defaults to a no-op hook.
	Telemetry core.TelemetryHook
}

// DefaultBaseURL is the default service root.
const DefaultBaseURL = "https://api.openai.com"

// Option configures the client.
type Option func(*Config)

// WithBaseURL sets the service root, e.g. a proxy or a test server.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithOrgID sets the OpenAI-Organization header.
func WithOrgID(org string) Option {
	return func(c *Config) {
		c.OrgID = org
	}
}

// WithProjectID sets the OpenAI-Project header.
func WithProjectID(project string) Option {
	return func(c *Config) {
		c.ProjectID = project
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout sets the per-exchange timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.Telemetry = h
		}
	}
}
