package watchdog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"reelkeeper/internal/services"
)

type fakeProber struct {
	results []ProbeResult
	calls   int
}

func (f *fakeProber) Probe(context.Context) ProbeResult {
	f.calls++
	if len(f.results) == 0 {
		return ProbeResult{Up: true, StatusCode: 200}
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r
}

type fakeTable struct {
	running bool
	calls   int
	names   []string
}

func (f *fakeTable) Running(_ context.Context, name string) bool {
	f.calls++
	f.names = append(f.names, name)
	return f.running
}

type fakeLauncher struct {
	pid   int
	err   error
	calls atomic.Int32
}

func (f *fakeLauncher) Launch(context.Context) (int, error) {
	f.calls.Add(1)
	return f.pid, f.err
}

type fakeNotifier struct {
	started []int
	errs    []error
}

func (f *fakeNotifier) NotifyTunnelStarted(_ context.Context, _ string, pid int) error {
	f.started = append(f.started, pid)
	return nil
}

func (f *fakeNotifier) NotifyError(_ context.Context, err error, _ string) error {
	f.errs = append(f.errs, err)
	return nil
}

func down(kind services.Kind) ProbeResult {
	return ProbeResult{Kind: kind, Err: fmt.Errorf("probe failed: %w", services.ErrNetwork)}
}

func TestCycleUpNeverQueriesTableOrLaunches(t *testing.T) {
	for _, running := range []bool{true, false} {
		table := &fakeTable{running: running}
		launcher := &fakeLauncher{pid: 10}
		w := New(&fakeProber{}, table, launcher, Options{ProcessName: "cloudflared"})

		res := w.Cycle(context.Background())
		if res.Action != ActionNone {
			t.Fatalf("expected ActionNone, got %s", res.Action)
		}
		if table.calls != 0 {
			t.Fatalf("process table must not be queried when up (running=%v)", running)
		}
		if launcher.calls.Load() != 0 {
			t.Fatalf("launch must not happen when up (running=%v)", running)
		}
	}
}

func TestCycleDownAndRunningDoesNotSpawn(t *testing.T) {
	table := &fakeTable{running: true}
	launcher := &fakeLauncher{pid: 10}
	w := New(&fakeProber{results: []ProbeResult{down(services.KindStatus)}}, table, launcher, Options{ProcessName: "cloudflared"})

	res := w.Cycle(context.Background())
	if res.Action != ActionAlreadyRunning {
		t.Fatalf("expected ActionAlreadyRunning, got %s", res.Action)
	}
	if launcher.calls.Load() != 0 {
		t.Fatal("launch must not happen while the tunnel is running")
	}
	if len(table.names) != 1 || table.names[0] != "cloudflared" {
		t.Fatalf("expected exact process name lookup, got %v", table.names)
	}
}

func TestCycleDownAndNotRunningLaunches(t *testing.T) {
	notifier := &fakeNotifier{}
	launcher := &fakeLauncher{pid: 4242}
	w := New(&fakeProber{results: []ProbeResult{down(services.KindNetwork)}}, &fakeTable{}, launcher,
		Options{ProcessName: "cloudflared", Notifier: notifier})

	res := w.Cycle(context.Background())
	if res.Action != ActionStarted || res.PID != 4242 {
		t.Fatalf("unexpected result %+v", res)
	}
	if launcher.calls.Load() != 1 {
		t.Fatalf("expected one launch, got %d", launcher.calls.Load())
	}
	if len(notifier.started) != 1 || notifier.started[0] != 4242 {
		t.Fatalf("expected tunnel started notification, got %v", notifier.started)
	}
	if res.ID == "" {
		t.Fatal("expected correlation id")
	}
}

func TestCycleLaunchFailureIsReportedNotFatal(t *testing.T) {
	notifier := &fakeNotifier{}
	launchErr := errors.New("exec: not found")
	w := New(&fakeProber{results: []ProbeResult{down(services.KindTimeout)}}, &fakeTable{}, &fakeLauncher{err: launchErr},
		Options{ProcessName: "cloudflared", Notifier: notifier})

	res := w.Cycle(context.Background())
	if res.Action != ActionStartFailed || !errors.Is(res.Err, launchErr) {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(notifier.errs) != 1 {
		t.Fatalf("expected error notification, got %d", len(notifier.errs))
	}
}

func TestRunCyclesUntilCancelled(t *testing.T) {
	prober := &fakeProber{results: []ProbeResult{down(services.KindNetwork)}}
	launcher := &fakeLauncher{pid: 1}
	w := New(prober, &fakeTable{}, launcher, Options{ProcessName: "cloudflared", Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("watchdog did not cycle")
		case <-time.After(5 * time.Millisecond):
		}
		if launcher.calls.Load() >= 3 {
			break
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunReturnsPromptlyDuringSleep(t *testing.T) {
	prober := &fakeProber{}
	w := New(prober, &fakeTable{}, &fakeLauncher{}, Options{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run blocked in sleep after cancellation")
	}
	if prober.calls != 1 {
		t.Fatalf("expected the first cycle to run immediately, got %d probes", prober.calls)
	}
}
