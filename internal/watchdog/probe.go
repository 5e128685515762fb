package watchdog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"reelkeeper/internal/services"
)

// ProbeResult is the endpoint health observed by one probe.
type ProbeResult struct {
	Up         bool
	Kind       services.Kind
	StatusCode int
	Latency    time.Duration
	Err        error
}

// Prober checks endpoint health.
type Prober interface {
	Probe(ctx context.Context) ProbeResult
}

// HTTPProber issues a single GET per probe. Only HTTP 200 counts as up.
type HTTPProber struct {
	url    string
	client *http.Client
}

var _ Prober = (*HTTPProber)(nil)

// NewHTTPProber returns a prober for url with the given request timeout.
func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProber{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the probed endpoint.
func (p *HTTPProber) URL() string { return p.url }

// Probe performs one request. It never retries and never returns an error
// separately from the result.
func (p *HTTPProber) Probe(ctx context.Context) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return ProbeResult{Kind: services.KindOther, Err: fmt.Errorf("build probe request: %w", err)}
	}
	req.Header.Set("User-Agent", "reelkeeper-watchdog")

	start := time.Now()
	resp, err := p.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		err = services.ClassifyTransport(err)
		return ProbeResult{Kind: services.KindOf(err), Latency: latency, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	result := ProbeResult{StatusCode: resp.StatusCode, Latency: latency}
	if resp.StatusCode == http.StatusOK {
		result.Up = true
		result.Kind = services.KindSuccess
		return result
	}
	result.Kind = services.KindStatus
	result.Err = services.Wrap(services.ErrStatus, "watchdog", "probe", fmt.Sprintf("%s returned %d", p.url, resp.StatusCode), nil)
	return result
}
