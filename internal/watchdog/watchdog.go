package watchdog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reelkeeper/internal/logging"
	"reelkeeper/internal/services"
)

// DefaultInterval is the pause between cycles.
const DefaultInterval = 120 * time.Second

// Action is what a cycle did about the endpoint's state.
type Action string

const (
	// ActionNone means the endpoint was up; the process table was not queried.
	ActionNone           Action = "none"
	ActionAlreadyRunning Action = "already_running"
	ActionStarted        Action = "started"
	ActionStartFailed    Action = "start_failed"
)

// CycleResult describes one probe/decide/act cycle.
type CycleResult struct {
	ID     string
	Probe  ProbeResult
	Action Action
	PID    int
	Err    error
}

// Notifier receives tunnel start events. notifications.Service satisfies it.
type Notifier interface {
	NotifyTunnelStarted(ctx context.Context, endpoint string, pid int) error
	NotifyError(ctx context.Context, err error, context string) error
}

// Options configures a Watchdog.
type Options struct {
	Endpoint    string
	ProcessName string
	Interval    time.Duration
	Logger      *slog.Logger
	Notifier    Notifier
}

// Watchdog runs the availability loop.
type Watchdog struct {
	prober   Prober
	table    ProcessTable
	launcher Launcher
	opts     Options
	logger   *slog.Logger
	newID    func() string
}

// New assembles a watchdog from its collaborators.
func New(prober Prober, table ProcessTable, launcher Launcher, opts Options) *Watchdog {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watchdog{
		prober:   prober,
		table:    table,
		launcher: launcher,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "watchdog"),
		newID:    uuid.NewString,
	}
}

// Run executes a cycle immediately and then every interval until ctx is
// cancelled. Cancellation, including mid-sleep, returns nil.
func (w *Watchdog) Run(ctx context.Context) error {
	w.logger.Info("watchdog started",
		logging.String("url", w.opts.Endpoint),
		logging.String("process", w.opts.ProcessName),
		logging.Duration("interval", w.opts.Interval),
	)
	for {
		if ctx.Err() != nil {
			break
		}
		w.Cycle(ctx)

		timer := time.NewTimer(w.opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
	w.logger.Info("watchdog stopped")
	return nil
}

// Cycle probes once and, when the endpoint is down and the tunnel is not
// running, launches it.
func (w *Watchdog) Cycle(ctx context.Context) CycleResult {
	result := CycleResult{ID: w.newID()}
	ctx = services.WithRequestID(ctx, result.ID)
	logger := logging.WithContext(ctx, w.logger)

	logger.Info("checking endpoint", logging.String("url", w.opts.Endpoint))
	result.Probe = w.prober.Probe(ctx)

	if result.Probe.Up {
		result.Action = ActionNone
		logger.Info("endpoint up",
			logging.Int("status", result.Probe.StatusCode),
			logging.Duration("latency", result.Probe.Latency.Round(time.Millisecond)),
		)
		return result
	}

	downAttrs := []logging.Attr{
		logging.FailureKind(result.Probe.Kind),
		logging.Int("status", result.Probe.StatusCode),
	}
	if result.Probe.Err != nil {
		downAttrs = append(downAttrs, logging.String("probe_error", result.Probe.Err.Error()))
	}

	if w.table.Running(ctx, w.opts.ProcessName) {
		result.Action = ActionAlreadyRunning
		logger.Info("endpoint down; tunnel already running",
			append(logging.Args(downAttrs...), logging.String("process", w.opts.ProcessName))...)
		return result
	}

	pid, err := w.launcher.Launch(ctx)
	if err != nil {
		result.Action = ActionStartFailed
		result.Err = err
		logging.ErrorWithContext(logger, "endpoint down; tunnel start failed", "tunnel_start_failed",
			append(downAttrs,
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run 'reelkeeper check' to verify the tunnel binary and config"),
			)...,
		)
		w.notifyError(ctx, err)
		return result
	}

	result.Action = ActionStarted
	result.PID = pid
	logger.Warn("endpoint down; tunnel started",
		append(logging.Args(downAttrs...),
			logging.String(logging.FieldEventType, "tunnel_started"),
			logging.Int("pid", pid),
		)...)
	if w.opts.Notifier != nil {
		if err := w.opts.Notifier.NotifyTunnelStarted(ctx, w.opts.Endpoint, pid); err != nil {
			logger.Debug("tunnel start notification failed", logging.Error(err))
		}
	}
	return result
}

func (w *Watchdog) notifyError(ctx context.Context, err error) {
	if w.opts.Notifier == nil {
		return
	}
	if notifyErr := w.opts.Notifier.NotifyError(ctx, err, "tunnel start"); notifyErr != nil {
		w.logger.Debug("error notification failed", logging.Error(notifyErr))
	}
}
