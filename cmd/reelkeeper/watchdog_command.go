package main

import (
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelkeeper/internal/config"
	"reelkeeper/internal/logging"
	"reelkeeper/internal/notifications"
	"reelkeeper/internal/watchdog"
)

func newWatchdogCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watchdog",
		Short: "Keep the public endpoint reachable by restarting the tunnel client",
		Long: "Probe the configured URL on an interval. When it does not answer HTTP 200 and the\n" +
			"tunnel client is not running, start it in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateWatchdog(); err != nil {
				return fmt.Errorf("watchdog config: %w", err)
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			lock, err := watchdog.AcquireLock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					logger.Warn("release watchdog lock", logging.Error(err))
				}
			}()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			dog := buildWatchdog(cfg, logger)
			if once {
				result := dog.Cycle(signalCtx)
				printCycleResult(cmd.OutOrStdout(), result)
				return nil
			}
			return dog.Run(signalCtx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single probe cycle and exit")
	return cmd
}

// buildWatchdog assembles the probe, process table and launcher from cfg.
// Problems in the tunnel config file are logged, not fatal.
func buildWatchdog(cfg *config.Config, logger *slog.Logger) *watchdog.Watchdog {
	tunnelFile, err := watchdog.LoadTunnelFile(cfg.Tunnel.ConfigPath)
	if err != nil {
		logging.WarnWithContext(logger, "tunnel config unreadable", "tunnel_config_unreadable",
			logging.Error(err),
			logging.String("path", cfg.Tunnel.ConfigPath),
			logging.String(logging.FieldErrorHint, "check tunnel.config_path; the tunnel client will fail to start"),
		)
	} else {
		for _, warning := range tunnelFile.Warnings(cfg.Tunnel.Name) {
			logger.Warn("tunnel config", logging.String("warning", warning), logging.String("path", cfg.Tunnel.ConfigPath))
		}
	}

	timeout := time.Duration(cfg.Watchdog.RequestTimeoutSeconds) * time.Second
	prober := watchdog.NewHTTPProber(cfg.Watchdog.URL, timeout)
	table := watchdog.NewSystemProcessTable(logger)
	launcher := watchdog.NewTunnelLauncher(cfg.Tunnel.Binary, cfg.TunnelArgs(), cfg.Tunnel.LogFile, logger)

	return watchdog.New(prober, table, launcher, watchdog.Options{
		Endpoint:    cfg.Watchdog.URL,
		ProcessName: cfg.Tunnel.ProcessName,
		Interval:    time.Duration(cfg.Watchdog.IntervalSeconds) * time.Second,
		Logger:      logger,
		Notifier:    notifications.NewService(cfg),
	})
}

func printCycleResult(out io.Writer, result watchdog.CycleResult) {
	switch result.Action {
	case watchdog.ActionNone:
		fmt.Fprintf(out, "Endpoint up (HTTP %d)\n", result.Probe.StatusCode)
	case watchdog.ActionAlreadyRunning:
		fmt.Fprintf(out, "Endpoint down (%s); tunnel already running\n", result.Probe.Kind)
	case watchdog.ActionStarted:
		fmt.Fprintf(out, "Endpoint down (%s); tunnel started (pid %d)\n", result.Probe.Kind, result.PID)
	case watchdog.ActionStartFailed:
		fmt.Fprintf(out, "Endpoint down (%s); tunnel start failed: %v\n", result.Probe.Kind, result.Err)
	}
}
