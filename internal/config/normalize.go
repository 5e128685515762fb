package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWatchdog()
	if err := c.normalizeTunnel(); err != nil {
		return err
	}
	if err := c.normalizePosters(); err != nil {
		return err
	}
	c.normalizeOMDb()
	c.normalizeFallback()
	c.normalizeJellyfin()
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWatchdog() {
	c.Watchdog.URL = strings.TrimSpace(c.Watchdog.URL)
	if c.Watchdog.RequestTimeoutSeconds == 0 {
		c.Watchdog.RequestTimeoutSeconds = defaultWatchdogRequestTimeout
	}
}

func (c *Config) normalizeTunnel() error {
	c.Tunnel.Binary = strings.TrimSpace(c.Tunnel.Binary)
	if c.Tunnel.Binary == "" {
		c.Tunnel.Binary = defaultTunnelBinary
	}
	c.Tunnel.Name = strings.TrimSpace(c.Tunnel.Name)

	var err error
	if c.Tunnel.ConfigPath, err = expandRelativeToExecutable(strings.TrimSpace(c.Tunnel.ConfigPath)); err != nil {
		return fmt.Errorf("tunnel.config_path: %w", err)
	}

	c.Tunnel.ProcessName = strings.TrimSpace(c.Tunnel.ProcessName)
	if c.Tunnel.ProcessName == "" {
		base := filepath.Base(c.Tunnel.Binary)
		if strings.HasSuffix(strings.ToLower(base), ".exe") {
			c.Tunnel.ProcessName = base
		} else {
			c.Tunnel.ProcessName = processNameFor(base)
		}
	}

	c.Tunnel.LogFile = strings.TrimSpace(c.Tunnel.LogFile)
	if c.Tunnel.LogFile == "" {
		c.Tunnel.LogFile = filepath.Join(c.Paths.LogDir, "tunnel.log")
	}
	if c.Tunnel.LogFile, err = expandPath(c.Tunnel.LogFile); err != nil {
		return fmt.Errorf("tunnel.log_file: %w", err)
	}
	return nil
}

func (c *Config) normalizePosters() error {
	var err error
	if c.Posters.RootDir, err = expandPath(strings.TrimSpace(c.Posters.RootDir)); err != nil {
		return fmt.Errorf("posters.root_dir: %w", err)
	}
	c.Posters.PosterName = strings.TrimSpace(c.Posters.PosterName)
	if c.Posters.PosterName == "" {
		c.Posters.PosterName = defaultPosterName
	}
	if c.Posters.RequestTimeoutSeconds == 0 {
		c.Posters.RequestTimeoutSeconds = defaultPostersRequestTimeout
	}

	exts := make([]string, 0, len(c.Posters.VideoExtensions))
	seen := make(map[string]struct{}, len(c.Posters.VideoExtensions))
	for _, ext := range c.Posters.VideoExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, DefaultVideoExtensions...)
	}
	c.Posters.VideoExtensions = exts
	return nil
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if c.OMDb.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDb.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.RequestsPerSecond == 0 {
		c.OMDb.RequestsPerSecond = defaultOMDbRequestsPerSecond
	}
}

func (c *Config) normalizeFallback() {
	c.Fallback.BaseURL = strings.TrimRight(strings.TrimSpace(c.Fallback.BaseURL), "/")
	if c.Fallback.BaseURL == "" {
		c.Fallback.BaseURL = defaultFallbackBaseURL
	}
	if c.Fallback.Width == 0 {
		c.Fallback.Width = defaultFallbackWidth
	}
	if c.Fallback.Height == 0 {
		c.Fallback.Height = defaultFallbackHeight
	}
}

func (c *Config) normalizeJellyfin() {
	if c.Jellyfin.APIKey == "" {
		if value, ok := os.LookupEnv("JELLYFIN_API_KEY"); ok {
			c.Jellyfin.APIKey = strings.TrimSpace(value)
		}
	}
	c.Jellyfin.URL = strings.TrimSpace(c.Jellyfin.URL)
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("REELKEEPER_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(c.Paths.LogDir, "reelkeeper.log")
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
