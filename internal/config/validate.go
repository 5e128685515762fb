package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the settings shared by both tools are usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateFallback(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

// ValidateWatchdog checks the settings the availability watchdog requires.
func (c *Config) ValidateWatchdog() error {
	if err := validateHTTPURL("watchdog.url", c.Watchdog.URL); err != nil {
		return err
	}
	if err := ensurePositiveMap(map[string]int{
		"watchdog.interval_seconds":        c.Watchdog.IntervalSeconds,
		"watchdog.request_timeout_seconds": c.Watchdog.RequestTimeoutSeconds,
	}); err != nil {
		return err
	}
	if strings.TrimSpace(c.Tunnel.Binary) == "" {
		return errors.New("tunnel.binary must be set")
	}
	if strings.TrimSpace(c.Tunnel.Name) == "" {
		return errors.New("tunnel.name must be set")
	}
	if strings.TrimSpace(c.Tunnel.ConfigPath) == "" {
		return errors.New("tunnel.config_path must be set")
	}
	if strings.TrimSpace(c.Tunnel.ProcessName) == "" {
		return errors.New("tunnel.process_name must be set")
	}
	return nil
}

// ValidatePosters checks the settings the poster backfill requires.
func (c *Config) ValidatePosters() error {
	if strings.TrimSpace(c.Posters.RootDir) == "" {
		return errors.New("posters.root_dir must be set (or pass --root)")
	}
	if c.OMDb.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/reelkeeper/config.toml"
		}
		return fmt.Errorf("omdb.api_key is required. Set OMDB_API_KEY env var or edit %s (create with 'reelkeeper config init')", defaultPath)
	}
	name := strings.TrimSpace(c.Posters.PosterName)
	if name == "" {
		return errors.New("posters.poster_name must be set")
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("posters.poster_name must be a file name, not a path")
	}
	if len(c.Posters.VideoExtensions) == 0 {
		return errors.New("posters.video_extensions must not be empty")
	}
	if c.Posters.RequestTimeoutSeconds <= 0 {
		return errors.New("posters.request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation values must not be negative")
	}
	return nil
}

func (c *Config) validateOMDb() error {
	if c.OMDb.RequestsPerSecond <= 0 {
		return errors.New("omdb.requests_per_second must be positive")
	}
	return validateHTTPURL("omdb.base_url", c.OMDb.BaseURL)
}

func (c *Config) validateFallback() error {
	if err := validateHTTPURL("fallback.base_url", c.Fallback.BaseURL); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"fallback.width":  c.Fallback.Width,
		"fallback.height": c.Fallback.Height,
	})
}

func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Jellyfin.URL) == "" {
		return errors.New("jellyfin.url must be set when jellyfin.enabled is true")
	}
	if strings.TrimSpace(c.Jellyfin.APIKey) == "" {
		return errors.New("jellyfin.api_key must be set when jellyfin.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func validateHTTPURL(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s must be set", key)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
