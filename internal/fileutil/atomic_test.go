package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"reelkeeper/internal/fileutil"
)

func TestWriteFileAtomicCreatesParentAndFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "Alpha", "img.jpg")

	if err := fileutil.WriteFileAtomic(target, []byte("poster"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(got) != "poster" {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestWriteFileAtomicReplacesExistingAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "img.jpg")
	if err := os.WriteFile(target, []byte("placeholder"), 0o644); err != nil {
		t.Fatalf("seed target: %v", err)
	}

	if err := fileutil.WriteFileAtomic(target, []byte("replacement"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(got) != "replacement" {
		t.Fatalf("unexpected contents %q", got)
	}

	for _, leftover := range []string{target + ".tmp", target + ".bak"} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be removed, stat err=%v", leftover, err)
		}
	}
}
