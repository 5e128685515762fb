package watchdog_test

import (
	"errors"
	"path/filepath"
	"testing"

	"reelkeeper/internal/watchdog"
)

func TestAcquireLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "watchdog.lock")

	first, err := watchdog.AcquireLock(path)
	if err != nil {
		t.Fatalf("first AcquireLock: %v", err)
	}
	if _, err := watchdog.AcquireLock(path); !errors.Is(err, watchdog.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := watchdog.AcquireLock(path)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	if second.Path() != path {
		t.Fatalf("unexpected path %q", second.Path())
	}
	_ = second.Release()
	if err := second.Release(); err != nil {
		t.Fatalf("second Release should be a no-op, got %v", err)
	}
}
