package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"reelkeeper/internal/config"
	"reelkeeper/internal/deps"
	"reelkeeper/internal/omdb"
	"reelkeeper/internal/services"
	"reelkeeper/internal/services/jellyfin"
	"reelkeeper/internal/watchdog"
)

// CheckTunnelBinary verifies the tunnel client is on PATH.
func CheckTunnelBinary(cfg *config.Config) Result {
	const name = "Tunnel binary"
	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if len(statuses) == 0 {
		return Result{Name: name, Detail: "not configured"}
	}
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Path}
}

// CheckTunnelConfig verifies the tunnel client config exists and parses.
// Warnings keep the check passing but are listed in the detail.
func CheckTunnelConfig(path, tunnelName string) Result {
	const name = "Tunnel config"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "tunnel.config_path not set"}
	}
	tf, err := watchdog.LoadTunnelFile(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	detail := path
	if warnings := tf.Warnings(tunnelName); len(warnings) > 0 {
		detail = fmt.Sprintf("%s (warning: %s)", path, strings.Join(warnings, "; "))
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckEndpoint probes the watchdog URL once.
func CheckEndpoint(ctx context.Context, url string, timeoutSeconds int) Result {
	const name = "Endpoint"
	res := watchdog.NewHTTPProber(url, time.Duration(timeoutSeconds)*time.Second).Probe(ctx)
	if res.Up {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (200 in %s)", url, res.Latency.Round(time.Millisecond))}
	}
	if res.StatusCode != 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (down: status %d)", url, res.StatusCode)}
	}
	return Result{Name: name, Detail: fmt.Sprintf("%s (down: %s)", url, res.Kind)}
}

// CheckOMDb verifies the API key with one lookup.
func CheckOMDb(ctx context.Context, apiKey, baseURL string) Result {
	const name = "OMDb"
	client, err := omdb.New(apiKey, baseURL, omdb.WithTimeout(10*time.Second))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := client.Lookup(checkCtx, "The Matrix", omdb.KindMovie); err != nil {
		if services.KindOf(err) == services.KindStatus {
			return Result{Name: name, Detail: fmt.Sprintf("lookup rejected (%v)", err)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%s)", services.KindOf(err))}
	}
	return Result{Name: name, Passed: true, Detail: "API key accepted"}
}

// CheckJellyfin verifies Jellyfin connectivity and authentication.
func CheckJellyfin(ctx context.Context, baseURL, apiKey string) Result {
	const name = "Jellyfin"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := jellyfin.NewClient(base, apiKey, nil)
	if err := client.Ping(checkCtx); err != nil {
		if errors.Is(err, services.ErrConfiguration) {
			return Result{Name: name, Detail: "auth failed (invalid api key)"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
