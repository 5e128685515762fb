package watchdog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelkeeper/internal/services"
	"reelkeeper/internal/watchdog"
)

func TestLoadTunnelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudflared.yml")
	content := `tunnel: 6ff42ae2-765d-4adf-8112-31c55c1551ef
credentials-file: /root/.cloudflared/6ff42ae2.json
ingress:
  - hostname: media.example.com
    service: http://localhost:8096
  - service: http_status:404
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tf, err := watchdog.LoadTunnelFile(path)
	if err != nil {
		t.Fatalf("LoadTunnelFile: %v", err)
	}
	if tf.Tunnel != "6ff42ae2-765d-4adf-8112-31c55c1551ef" {
		t.Fatalf("unexpected tunnel %q", tf.Tunnel)
	}
	if hosts := tf.Hostnames(); len(hosts) != 1 || hosts[0] != "media.example.com" {
		t.Fatalf("unexpected hostnames %v", hosts)
	}
	if warnings := tf.Warnings("media"); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestLoadTunnelFileWarnsOnEmptyTunnel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudflared.yml")
	if err := os.WriteFile(path, []byte("ingress: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tf, err := watchdog.LoadTunnelFile(path)
	if err != nil {
		t.Fatalf("LoadTunnelFile: %v", err)
	}
	if warnings := tf.Warnings("media"); len(warnings) != 2 {
		t.Fatalf("expected tunnel and credentials warnings, got %v", warnings)
	}
}

func TestLoadTunnelFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := watchdog.LoadTunnelFile(filepath.Join(dir, "missing.yml")); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("tunnel: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := watchdog.LoadTunnelFile(bad); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for bad yaml, got %v", err)
	}
}
