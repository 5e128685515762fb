package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration shared by both tools.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Watchdog contains configuration for the endpoint availability loop.
type Watchdog struct {
	URL                   string `toml:"url"`
	IntervalSeconds       int    `toml:"interval_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Tunnel describes the tunnel client the watchdog launches when the endpoint
// is unreachable.
type Tunnel struct {
	Binary      string `toml:"binary"`
	ConfigPath  string `toml:"config_path"`
	Name        string `toml:"name"`
	ProcessName string `toml:"process_name"`
	LogFile     string `toml:"log_file"`
}

// Posters contains configuration for the poster backfill pass.
type Posters struct {
	RootDir               string   `toml:"root_dir"`
	PosterName            string   `toml:"poster_name"`
	VideoExtensions       []string `toml:"video_extensions"`
	CleanTitles           bool     `toml:"clean_titles"`
	KeepGoing             bool     `toml:"keep_going"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
}

// OMDb contains configuration for the Open Movie Database API.
type OMDb struct {
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Fallback configures the seeded placeholder image service used when no
// metadata poster exists.
type Fallback struct {
	BaseURL string `toml:"base_url"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
}

// Jellyfin contains configuration for Jellyfin Media Server integration.
type Jellyfin struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	TunnelStarted  bool   `toml:"tunnel_started"`
	Backfill       bool   `toml:"backfill"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config encapsulates all configuration values for reelkeeper.
//
// Configuration sections by subsystem:
//   - Paths: log and lock file directory
//   - Watchdog: probed URL, poll interval and probe timeout
//   - Tunnel: tunnel client binary, config file, tunnel name and process name
//   - Posters: library root, poster filename and video extensions
//   - OMDb: metadata lookups for movie and series posters
//   - Fallback: seeded placeholder image service
//   - Jellyfin: library refresh after posters change
//   - Notifications: ntfy push notification settings
//   - Logging: log format, level and file rotation
type Config struct {
	Paths         Paths         `toml:"paths"`
	Watchdog      Watchdog      `toml:"watchdog"`
	Tunnel        Tunnel        `toml:"tunnel"`
	Posters       Posters       `toml:"posters"`
	OMDb          OMDb          `toml:"omdb"`
	Fallback      Fallback      `toml:"fallback"`
	Jellyfin      Jellyfin      `toml:"jellyfin"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelkeeper/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. Tool specific checks live in ValidateWatchdog
// and ValidatePosters so one tool can run without the other being configured.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelkeeper.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories reelkeeper writes logs and lock files to.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LockPath returns the watchdog single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "watchdog.lock")
}

// TunnelArgs returns the argument vector passed to the tunnel client binary.
func (c *Config) TunnelArgs() []string {
	return []string{"tunnel", "--config", c.Tunnel.ConfigPath, "run", c.Tunnel.Name}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// executableDir reports the directory holding the running binary. Tests
// replace it to pin relative tunnel config resolution.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// expandRelativeToExecutable resolves relative paths against the executable's
// directory; absolute and ~ paths use the normal rules.
func expandRelativeToExecutable(pathValue string) (string, error) {
	if pathValue == "" || strings.HasPrefix(pathValue, "~") || filepath.IsAbs(pathValue) {
		return expandPath(pathValue)
	}
	dir, err := executableDir()
	if err != nil {
		return "", fmt.Errorf("resolve executable directory: %w", err)
	}
	return filepath.Clean(filepath.Join(dir, pathValue)), nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
