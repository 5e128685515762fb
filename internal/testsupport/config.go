package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"reelkeeper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory. The
// library root exists and the tunnel config file is written so both
// ValidateWatchdog and ValidatePosters pass out of the box.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.File = filepath.Join(cfgVal.Paths.LogDir, "reelkeeper.log")
	cfgVal.Tunnel.LogFile = filepath.Join(cfgVal.Paths.LogDir, "tunnel.log")
	cfgVal.Posters.RootDir = filepath.Join(base, "library")
	cfgVal.OMDb.APIKey = "test"
	cfgVal.Watchdog.URL = "http://127.0.0.1:1/"
	cfgVal.Tunnel.Name = "media-tunnel"
	cfgVal.Tunnel.ProcessName = cfgVal.Tunnel.Binary
	cfgVal.Tunnel.ConfigPath = filepath.Join(base, "cloudflared.yml")

	if err := os.MkdirAll(cfgVal.Posters.RootDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}
	tunnelYAML := []byte("tunnel: media-tunnel\ncredentials-file: creds.json\n")
	if err := os.WriteFile(cfgVal.Tunnel.ConfigPath, tunnelYAML, 0o644); err != nil {
		t.Fatalf("write tunnel config: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOMDbKey sets the OMDb API key on the test config.
func WithOMDbKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = key
	}
}

// WithWatchdogURL points the watchdog probe at url.
func WithWatchdogURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Watchdog.URL = url
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty the tunnel binary is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Tunnel.Binary}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Posters.RootDir)
}
