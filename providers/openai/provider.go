package openai

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/petal-labs/chatstream/core"
)

// Environment variables read by NewFromEnv.
const (
	DefaultAPIKeyEnvVar  = "OPENAI_API_KEY"
	DefaultOrgIDEnvVar   = "OPENAI_ORG_ID"
	DefaultBaseURLEnvVar = "OPENAI_BASE_URL"
)

// ErrAPIKeyNotFound is returned when the API key environment variable is not set.
var ErrAPIKeyNotFound = errors.New("openai: OPENAI_API_KEY environment variable not set")

// providerID names this client in errors and telemetry.
const providerID = "openai"

// NewFromEnv creates a client from OPENAI_API_KEY, plus OPENAI_ORG_ID and
// OPENAI_BASE_URL when present. Explicit options win over the environment:
//
//	client, err := openai.NewFromEnv(openai.WithTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv(DefaultAPIKeyEnvVar)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}

	var envOpts []Option
	if org := os.Getenv(DefaultOrgIDEnvVar); org != "" {
		envOpts = append(envOpts, WithOrgID(org))
	}
	if baseURL := os.Getenv(DefaultBaseURLEnvVar); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	}
	return New(apiKey, append(envOpts, opts...)...), nil
}

// Client talks to the chat/text/image/audio generation service.
// Client is safe for concurrent use; calls share no mutable state.
type Client struct {
	config Config
}

// New creates a new client with the given API key and options.
func New(apiKey string, opts ...Option) *Client {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Telemetry:  core.NoopTelemetryHook{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout > 0 {
		hc := *cfg.HTTPClient
		hc.Timeout = cfg.Timeout
		cfg.HTTPClient = &hc
	}

	return &Client{config: cfg}
}

// ID returns the provider identifier.
func (c *Client) ID() string {
	return providerID
}

// BaseURL returns the service root in use.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}
