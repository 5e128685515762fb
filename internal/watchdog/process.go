package watchdog

import (
	"context"
	"log/slog"

	"github.com/shirou/gopsutil/v3/process"

	"reelkeeper/internal/logging"
)

// ProcessTable answers whether a process with an exact executable name is
// running.
type ProcessTable interface {
	Running(ctx context.Context, name string) bool
}

// SystemProcessTable queries the OS process table.
type SystemProcessTable struct {
	logger *slog.Logger
	list   func(ctx context.Context) ([]*process.Process, error)
}

var _ ProcessTable = (*SystemProcessTable)(nil)

// NewSystemProcessTable returns a ProcessTable backed by gopsutil.
func NewSystemProcessTable(logger *slog.Logger) *SystemProcessTable {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SystemProcessTable{logger: logger, list: process.ProcessesWithContext}
}

// Running reports whether any process is named exactly name. Enumeration
// failures count as not running; processes that vanish or deny access while
// being inspected are skipped.
func (t *SystemProcessTable) Running(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	procs, err := t.list(ctx)
	if err != nil {
		t.logger.Debug("process table query failed", logging.Error(err))
		return false
	}
	for _, p := range procs {
		procName, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if procName == name {
			t.logger.Debug("process found", logging.String("name", name), logging.Int("pid", int(p.Pid)))
			return true
		}
	}
	return false
}
