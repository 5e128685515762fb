package jellyfin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reelkeeper/internal/config"
	"reelkeeper/internal/services"
)

// HTTPDoer describes the HTTP client used by the Jellyfin service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service defines the Jellyfin operations reelkeeper uses.
type Service interface {
	Refresh(ctx context.Context) error
}

type noopService struct{}

func (noopService) Refresh(context.Context) error { return nil }

// Client talks to the Jellyfin HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

var _ Service = (*Client)(nil)

// NewConfiguredService returns a Jellyfin client when the integration is
// enabled and fully configured, otherwise a no-op.
func NewConfiguredService(cfg *config.Config) Service {
	if cfg == nil || !cfg.Jellyfin.Enabled {
		return noopService{}
	}
	baseURL := strings.TrimSpace(cfg.Jellyfin.URL)
	apiKey := strings.TrimSpace(cfg.Jellyfin.APIKey)
	if baseURL == "" || apiKey == "" {
		return noopService{}
	}
	return NewClient(baseURL, apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewClient constructs an HTTP-backed Jellyfin client.
func NewClient(baseURL, apiKey string, client HTTPDoer) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

// Refresh triggers a scan of all libraries.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/Library/Refresh")
	if err != nil {
		return fmt.Errorf("refresh jellyfin library: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrStatus, "jellyfin", "refresh", fmt.Sprintf("returned %d", resp.StatusCode), nil)
	}
	return nil
}

// Ping verifies connectivity and that the API key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/Users")
	if err != nil {
		return fmt.Errorf("jellyfin auth check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return services.Wrap(services.ErrConfiguration, "jellyfin", "auth check", "invalid api key", nil)
	default:
		return services.Wrap(services.ErrStatus, "jellyfin", "auth check", fmt.Sprintf("returned %d", resp.StatusCode), nil)
	}
}

func (c *Client) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.ClassifyTransport(err)
	}
	return resp, nil
}
