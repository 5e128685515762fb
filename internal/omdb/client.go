package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"reelkeeper/internal/services"
)

// Kind selects the OMDb title type filter.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

const (
	defaultTimeout           = 10 * time.Second
	defaultRequestsPerSecond = 5
	notAvailable             = "N/A"
	maxErrorBody             = 4 << 10
)

// Result is the outcome of a successful round trip. Found is true only when
// OMDb matched the title and reported a usable poster URL.
type Result struct {
	Found     bool
	PosterURL string
	Title     string
	Year      string
	IMDbID    string
}

// response models the subset of the OMDb payload we read.
type response struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	IMDbID   string `json:"imdbID"`
	Type     string `json:"Type"`
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Looker is the lookup surface consumed by the poster sources.
type Looker interface {
	Lookup(ctx context.Context, title string, kind Kind) (Result, error)
}

// Client queries OMDb by exact title.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Looker = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps lookups at rps requests per second. A non-positive value
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(defaultRequestsPerSecond, 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup asks OMDb for title restricted to kind. A title OMDb does not know,
// or one without a poster, is a Result with Found=false and a nil error.
func (c *Client) Lookup(ctx context.Context, title string, kind Kind) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, errors.New("omdb lookup: title must not be empty")
	}
	if kind != KindMovie && kind != KindSeries {
		return Result{}, fmt.Errorf("omdb lookup: unsupported kind %q", kind)
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return Result{}, fmt.Errorf("parse omdb url: %w", err)
	}
	params := endpoint.Query()
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", string(kind))
	endpoint.RawQuery = params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{}, fmt.Errorf("omdb rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Result{}, fmt.Errorf("omdb %s lookup (latency=%v): %w", kind, latency, services.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := readErrorDetail(resp.Body)
		return Result{}, services.Wrap(services.ErrStatus, "omdb", string(kind)+" lookup",
			fmt.Sprintf("status %d%s (latency=%v)", resp.StatusCode, detail, latency), nil)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, services.Wrap(services.ErrDecode, "omdb", string(kind)+" lookup", "decode response", err)
	}
	return payload.result(), nil
}

func (r response) result() Result {
	out := Result{
		Title:  r.Title,
		Year:   r.Year,
		IMDbID: r.IMDbID,
	}
	poster := strings.TrimSpace(r.Poster)
	if strings.EqualFold(r.Response, "True") && poster != "" && poster != notAvailable {
		out.Found = true
		out.PosterURL = poster
	}
	return out
}

// readErrorDetail pulls OMDb's "Error" field out of a failed response, e.g.
// "Invalid API key!".
func readErrorDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload response
	if json.Unmarshal(data, &payload) != nil || strings.TrimSpace(payload.Error) == "" {
		return ""
	}
	return ": " + strings.TrimSpace(payload.Error)
}
