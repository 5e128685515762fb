// Package fileutil contains filesystem helpers shared by reelkeeper tools.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces target with data without leaving a truncated file
// behind if the process dies mid-write.
//
// Data is written to <target>.tmp and synced. An existing target is moved to
// <target>.bak, the temp file is renamed into place and the backup removed.
// When the rename fails the backup is restored.
func WriteFileAtomic(target string, data []byte, perm os.FileMode) error {
	tmpPath := target + ".tmp"
	bakPath := target + ".bak"

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if err := writeSynced(tmpPath, data, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	hadTarget := false
	if _, err := os.Stat(target); err == nil {
		if err := renameOrCopy(target, bakPath); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("back up existing file: %w", err)
		}
		hadTarget = true
	}

	if err := renameOrCopy(tmpPath, target); err != nil {
		if hadTarget {
			_ = renameOrCopy(bakPath, target)
		}
		_ = os.Remove(tmpPath)
		return fmt.Errorf("move temp file into place: %w", err)
	}

	if hadTarget {
		_ = os.Remove(bakPath)
	}
	return nil
}

func writeSynced(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// renameOrCopy falls back to copy+delete when rename crosses devices.
func renameOrCopy(oldPath, newPath string) error {
	err := os.Rename(oldPath, newPath)
	if err == nil {
		return nil
	}
	if copyErr := copySynced(oldPath, newPath); copyErr != nil {
		return fmt.Errorf("copy fallback: %w (rename error: %w)", copyErr, err)
	}
	_ = os.Remove(oldPath)
	return nil
}

func copySynced(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
