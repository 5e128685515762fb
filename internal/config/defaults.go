package config

import "runtime"

const (
	defaultLogDir                 = "~/.local/share/reelkeeper/logs"
	defaultWatchdogInterval       = 120
	defaultWatchdogRequestTimeout = 10
	defaultTunnelBinary           = "cloudflared"
	defaultTunnelConfigPath       = "../config/cloudflared.yml"
	defaultPosterName             = "img.jpg"
	defaultPostersRequestTimeout  = 10
	defaultOMDbBaseURL            = "https://www.omdbapi.com/"
	defaultOMDbRequestsPerSecond  = 5
	defaultFallbackBaseURL        = "https://picsum.photos"
	defaultFallbackWidth          = 300
	defaultFallbackHeight         = 450
	defaultNotifyRequestTimeout   = 10
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultLogMaxSizeMB           = 20
	defaultLogMaxBackups          = 5
	defaultLogMaxAgeDays          = 30
)

// DefaultVideoExtensions lists the file extensions that mark a directory as a title directory.
var DefaultVideoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	exts := make([]string, len(DefaultVideoExtensions))
	copy(exts, DefaultVideoExtensions)
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Watchdog: Watchdog{
			IntervalSeconds:       defaultWatchdogInterval,
			RequestTimeoutSeconds: defaultWatchdogRequestTimeout,
		},
		Tunnel: Tunnel{
			Binary:     defaultTunnelBinary,
			ConfigPath: defaultTunnelConfigPath,
		},
		Posters: Posters{
			PosterName:            defaultPosterName,
			VideoExtensions:       exts,
			RequestTimeoutSeconds: defaultPostersRequestTimeout,
		},
		OMDb: OMDb{
			BaseURL:           defaultOMDbBaseURL,
			RequestsPerSecond: defaultOMDbRequestsPerSecond,
		},
		Fallback: Fallback{
			BaseURL: defaultFallbackBaseURL,
			Width:   defaultFallbackWidth,
			Height:  defaultFallbackHeight,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			TunnelStarted:  true,
			Backfill:       true,
			Errors:         true,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

// processNameFor derives the process table name of a binary. Windows lists
// executables with their .exe suffix.
func processNameFor(binary string) string {
	if runtime.GOOS == "windows" {
		return binary + ".exe"
	}
	return binary
}
