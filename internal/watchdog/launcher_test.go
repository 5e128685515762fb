//go:build !windows

package watchdog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reelkeeper/internal/services"
	"reelkeeper/internal/watchdog"
)

func TestTunnelLauncherStartsDetachedAndLogs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "tunnel.log")
	launcher := watchdog.NewTunnelLauncher("sh", []string{"-c", "echo tunnel-output"}, logPath, nil)

	pid, err := launcher.Launch(context.Background())
	if err != nil {
		t.Fatalf("Launch returned error: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("expected pid, got %d", pid)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		data, _ := os.ReadFile(logPath)
		if strings.Contains(string(data), "tunnel-output") {
			if !strings.Contains(string(data), "starting sh -c echo tunnel-output") {
				t.Fatalf("expected launch header in log, got %q", data)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("child output never reached the log, got %q", data)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestTunnelLauncherMissingBinary(t *testing.T) {
	launcher := watchdog.NewTunnelLauncher("reelkeeper-no-such-binary", nil, "", nil)
	_, err := launcher.Launch(context.Background())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTunnelLauncherCommandLine(t *testing.T) {
	launcher := watchdog.NewTunnelLauncher("cloudflared",
		[]string{"tunnel", "--config", "/etc/cloudflared.yml", "run", "media"}, "", nil)
	if got := launcher.CommandLine(); got != "cloudflared tunnel --config /etc/cloudflared.yml run media" {
		t.Fatalf("unexpected command line %q", got)
	}
}
