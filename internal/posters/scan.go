package posters

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reelkeeper/internal/logging"
)

// Title is one media directory: a directory directly containing at least one
// recognized video file.
type Title struct {
	// Name is the raw directory name.
	Name string
	// Query is the name used for metadata lookups. Empty means Name.
	Query      string
	Dir        string
	PosterPath string
	Videos     []string
}

// LookupName returns the title used for metadata queries.
func (t Title) LookupName() string {
	if q := strings.TrimSpace(t.Query); q != "" {
		return q
	}
	return t.Name
}

// Scanner walks a library tree looking for titles.
type Scanner struct {
	PosterName string
	Extensions []string
	// KeepGoing logs and skips directories that cannot be read instead of
	// aborting the walk.
	KeepGoing bool
	Logger    *slog.Logger
}

// NewScanner returns a scanner matching exts case-insensitively.
func NewScanner(posterName string, exts []string, logger *slog.Logger) *Scanner {
	return &Scanner{
		PosterName: posterName,
		Extensions: exts,
		Logger:     logger,
	}
}

// Scan walks root depth first in lexical order, root included, calling visit
// for every directory that contains a video file. An error from visit stops
// the walk and is returned. Cancelling ctx stops the walk between directories.
func (s *Scanner) Scan(ctx context.Context, root string, visit func(Title) error) error {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("library root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("library root %s: not a directory", root)
	}

	exts := s.extensionSet()
	logger := logging.NewComponentLogger(s.Logger, "posters")
	posterName := s.PosterName
	if posterName == "" {
		posterName = "img.jpg"
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if s.KeepGoing && path != root {
				logging.WarnWithContext(logger, "skipping unreadable directory", "scan_skipped",
					logging.String("path", path),
					logging.Error(walkErr),
					logging.String(logging.FieldErrorHint, "check directory permissions"),
					logging.String(logging.FieldImpact, "titles below this directory were not checked"),
				)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return fmt.Errorf("walk %s: %w", path, walkErr)
		}
		if !d.IsDir() {
			return nil
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			if s.KeepGoing && path != root {
				logging.WarnWithContext(logger, "skipping unreadable directory", "scan_skipped",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check directory permissions"),
					logging.String(logging.FieldImpact, "titles below this directory were not checked"),
				)
				return filepath.SkipDir
			}
			return fmt.Errorf("read directory %s: %w", path, err)
		}

		var videos []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, ok := exts[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
				videos = append(videos, entry.Name())
			}
		}
		if len(videos) == 0 {
			return nil
		}

		return visit(Title{
			Name:       filepath.Base(path),
			Dir:        path,
			PosterPath: filepath.Join(path, posterName),
			Videos:     videos,
		})
	})
}

func (s *Scanner) extensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Extensions))
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// IsWalkAbort reports whether err came from a cancelled context rather than
// the filesystem.
func IsWalkAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
