package preflight

import (
	"context"
	"strings"

	"reelkeeper/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding tool is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	// Watchdog
	if strings.TrimSpace(cfg.Watchdog.URL) != "" {
		results = append(results, CheckTunnelBinary(cfg))
		results = append(results, CheckTunnelConfig(cfg.Tunnel.ConfigPath, cfg.Tunnel.Name))
		results = append(results, CheckEndpoint(ctx, cfg.Watchdog.URL, cfg.Watchdog.RequestTimeoutSeconds))
	}

	// Poster backfill
	if strings.TrimSpace(cfg.Posters.RootDir) != "" {
		results = append(results, CheckDirectoryAccess("Library root", cfg.Posters.RootDir))
		results = append(results, CheckOMDb(ctx, cfg.OMDb.APIKey, cfg.OMDb.BaseURL))
	}

	if cfg.Jellyfin.Enabled {
		results = append(results, CheckJellyfin(ctx, cfg.Jellyfin.URL, cfg.Jellyfin.APIKey))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
