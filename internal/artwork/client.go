package artwork

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reelkeeper/internal/services"
)

const (
	defaultTimeout = 10 * time.Second
	// MaxImageBytes caps a single download. Posters are well under a megabyte.
	MaxImageBytes = 20 << 20
	seedModulus   = 1000
)

// Downloader fetches image bytes by URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Client downloads artwork over HTTP.
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	userAgent  string
}

var _ Downloader = (*Client)(nil)

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

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithMaxBytes overrides MaxImageBytes.
func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// New creates an artwork client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxBytes:   MaxImageBytes,
		userAgent:  "reelkeeper",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download GETs url and returns the body. Only HTTP 200 with a non-empty body
// succeeds; redirects are followed by the HTTP client.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("artwork download: empty url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artwork download %s: %w", url, services.ClassifyTransport(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, services.Wrap(services.ErrStatus, "artwork", "download", fmt.Sprintf("%s returned %d", url, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("artwork download %s: read body: %w", url, services.ClassifyTransport(err))
	}
	if int64(len(data)) > c.maxBytes {
		return nil, services.Wrap(services.ErrDecode, "artwork", "download", fmt.Sprintf("%s exceeds %d bytes", url, c.maxBytes), nil)
	}
	if len(data) == 0 {
		return nil, services.Wrap(services.ErrDecode, "artwork", "download", url+" returned an empty body", nil)
	}
	return data, nil
}

// SeedFor derives the placeholder seed for a title: FNV-1a 32 of the UTF-8
// bytes, reduced modulo 1000. The value is stable across runs and platforms.
func SeedFor(title string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return h.Sum32() % seedModulus
}

// PlaceholderURL returns <base>/seed/<seed>/<w>/<h>.
func PlaceholderURL(base string, seed uint32, width, height int) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(strings.TrimSpace(base), "/"))
	b.WriteString("/seed/")
	b.WriteString(strconv.FormatUint(uint64(seed), 10))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(width))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(height))
	return b.String()
}

// DetectFormat names the image container by magic bytes: jpeg, png, webp,
// gif, bmp or unknown.
func DetectFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "webp"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "gif"
	case bytes.HasPrefix(data, []byte("BM")):
		return "bmp"
	default:
		return "unknown"
	}
}
