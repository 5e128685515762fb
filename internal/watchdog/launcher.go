package watchdog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"reelkeeper/internal/logging"
	"reelkeeper/internal/services"
)

// Launcher starts the tunnel client.
type Launcher interface {
	Launch(ctx context.Context) (pid int, err error)
}

// TunnelLauncher starts the tunnel client detached: in its own session with
// stdin closed and output appended to LogFile (discarded when empty).
type TunnelLauncher struct {
	Binary  string
	Args    []string
	LogFile string
	logger  *slog.Logger
}

var _ Launcher = (*TunnelLauncher)(nil)

// NewTunnelLauncher builds a launcher for `binary args...`.
func NewTunnelLauncher(binary string, args []string, logFile string, logger *slog.Logger) *TunnelLauncher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TunnelLauncher{Binary: binary, Args: args, LogFile: logFile, logger: logger}
}

// CommandLine renders the launched command for logs.
func (l *TunnelLauncher) CommandLine() string {
	return strings.TrimSpace(l.Binary + " " + strings.Join(l.Args, " "))
}

// Launch starts the process and returns its pid without waiting for it to
// become healthy. The child outlives ctx and the watchdog itself; a
// background Wait only reaps it if it exits first.
func (l *TunnelLauncher) Launch(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := exec.LookPath(l.Binary)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "watchdog", "launch tunnel",
			fmt.Sprintf("%s not found on PATH", l.Binary), err)
	}

	cmd := exec.Command(path, l.Args...)
	cmd.Stdin = nil
	cmd.SysProcAttr = detachedProcAttr()

	var logFile *os.File
	if l.LogFile != "" {
		logFile, err = openAppend(l.LogFile)
		if err != nil {
			return 0, fmt.Errorf("open tunnel log %s: %w", l.LogFile, err)
		}
		defer logFile.Close()
		fmt.Fprintf(logFile, "--- %s starting %s\n", time.Now().Format(time.RFC3339), l.CommandLine())
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "watchdog", "launch tunnel", l.CommandLine(), err)
	}
	pid := cmd.Process.Pid
	go func() {
		_ = cmd.Wait()
	}()
	l.logger.Debug("tunnel process spawned", logging.Int("pid", pid), logging.String("command", l.CommandLine()))
	return pid, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
