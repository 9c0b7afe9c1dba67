package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/chatboot/internal/config"
	apierrors "github.com/diogo/chatboot/internal/errors"
	"github.com/diogo/chatboot/internal/models"
)

// HTTPDoer is the part of an HTTP client the chat client needs.
// tls_client.HttpClient satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to an Ollama-compatible /api/chat endpoint using Basic auth
type Client struct {
	httpClient   HTTPDoer
	endpoint     string
	credentials  *config.Credentials
	model        string
	systemPrompt string
	options      models.SamplingOptions
	timeout      time.Duration
	logger       *zap.Logger
	mu           sync.RWMutex
	closed       bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithModel sets the model requested from the endpoint
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithSystemPrompt replaces the system prompt sent before every user message
func WithSystemPrompt(prompt string) ClientOption {
	return func(c *Client) {
		if prompt != "" {
			c.systemPrompt = prompt
		}
	}
}

// WithSamplingOptions sets the generation parameters
func WithSamplingOptions(opts models.SamplingOptions) ClientOption {
	return func(c *Client) {
		c.options = opts
	}
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects the HTTP client (used in tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for endpoint. creds may be nil, in which case
// an empty credential pair is sent.
func NewClient(endpoint string, creds *config.Credentials, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, apierrors.NewConfigError("url", "inference URL is required", apierrors.ErrMissingURL)
	}
	if creds == nil {
		creds = config.NewCredentials("", "")
	}

	client := &Client{
		endpoint:     endpoint,
		credentials:  creds,
		model:        models.DefaultModel,
		systemPrompt: models.DefaultSystemPrompt,
		options:      models.DefaultSamplingOptions(),
		timeout:      300 * time.Second,
		logger:       zap.NewNop(),
	}

	// Apply options
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	if creds.IsEmpty() {
		client.logger.Warn("no credentials configured, sending empty Basic auth",
			zap.String("url", endpoint))
	} else if (config.Config{URL: endpoint}).IsInsecureTransport() {
		client.logger.Warn("Basic credentials will be sent unencrypted over http",
			zap.String("url", endpoint))
	}

	return client, nil
}

// NewClientFromConfig creates a client from the user configuration
func NewClientFromConfig(cfg config.Config, logger *zap.Logger, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []ClientOption{
		WithModel(cfg.Model),
		WithSystemPrompt(cfg.SystemPrompt),
		WithSamplingOptions(cfg.Options),
		WithTimeout(cfg.Timeout()),
		WithLogger(logger),
	}
	return NewClient(cfg.URL, cfg.Credentials(), append(base, opts...)...)
}

// Close shuts down the client and releases idle connections
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if closer, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the requested model
func (c *Client) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel changes the requested model
func (c *Client) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Endpoint returns the inference URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SystemPrompt returns the system prompt sent with every request
func (c *Client) SystemPrompt() string {
	return c.systemPrompt
}

// Options returns the sampling options sent with every request
func (c *Client) Options() models.SamplingOptions {
	return c.options
}
