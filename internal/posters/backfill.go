package posters

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"reelkeeper/internal/artwork"
	"reelkeeper/internal/fileutil"
	"reelkeeper/internal/logging"
	"reelkeeper/internal/services"
	"reelkeeper/internal/textutil"
)

// Status is the per-title result of a backfill pass.
type Status string

const (
	StatusPresent    Status = "present"
	StatusUnreadable Status = "unreadable"
	StatusWritten    Status = "written"
	StatusDryRun     Status = "would_fetch"
	StatusFailed     Status = "failed"
)

// Report describes what happened to one title.
type Report struct {
	Title      Title
	Inspection Inspection
	Status     Status
	// Source names the source whose bytes were written.
	Source   string
	Bytes    int
	Attempts []SourceOutcome
	Err      error
}

// Summary aggregates a backfill pass.
type Summary struct {
	RunID      string
	Root       string
	Titles     int
	Present    int
	Unreadable int
	Written    int
	DryRun     int
	Failed     int
	// Placeholders counts titles whose existing poster was the placeholder.
	Placeholders int
	BySource     map[string]int
	Failures     []Report
	Duration     time.Duration
}

func (s *Summary) add(r Report) {
	s.Titles++
	if r.Inspection.State == PosterPlaceholder {
		s.Placeholders++
	}
	switch r.Status {
	case StatusPresent:
		s.Present++
	case StatusUnreadable:
		s.Unreadable++
	case StatusWritten:
		s.Written++
		if s.BySource == nil {
			s.BySource = make(map[string]int)
		}
		s.BySource[r.Source]++
	case StatusDryRun:
		s.DryRun++
	case StatusFailed:
		s.Failed++
		s.Failures = append(s.Failures, r)
	}
}

// Backfiller fills in missing and placeholder posters.
type Backfiller struct {
	scanner     *Scanner
	sources     []Source
	logger      *slog.Logger
	dryRun      bool
	cleanTitles bool
	writeFile   func(path string, data []byte, perm os.FileMode) error
	now         func() time.Time
}

// Option configures a Backfiller.
type Option func(*Backfiller)

// WithLogger sets the logger. Lines are tagged with the posters component.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backfiller) {
		if logger != nil {
			b.logger = logging.NewComponentLogger(logger, "posters")
		}
	}
}

// WithDryRun inspects and reports without fetching or writing.
func WithDryRun(dryRun bool) Option {
	return func(b *Backfiller) { b.dryRun = dryRun }
}

// WithCleanTitles normalizes release style directory names before lookups.
func WithCleanTitles(clean bool) Option {
	return func(b *Backfiller) { b.cleanTitles = clean }
}

// NewBackfiller wires a scanner to an ordered source chain.
func NewBackfiller(scanner *Scanner, sources []Source, opts ...Option) *Backfiller {
	b := &Backfiller{
		scanner:   scanner,
		sources:   sources,
		logger:    logging.NewNop(),
		writeFile: fileutil.WriteFileAtomic,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run performs one pass over root. Per-title failures are counted in the
// summary; the returned error is a traversal error or ctx cancellation.
func (b *Backfiller) Run(ctx context.Context, root string) (Summary, error) {
	runID := uuid.NewString()
	ctx = services.WithRequestID(ctx, runID)
	logger := logging.WithContext(ctx, b.logger)
	start := b.now()

	summary := Summary{RunID: runID, Root: root}
	logger.Info("poster backfill started",
		logging.String("root", root),
		logging.Bool("dry_run", b.dryRun),
		logging.Int("sources", len(b.sources)),
	)

	err := b.scanner.Scan(ctx, root, func(title Title) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.add(b.ProcessTitle(ctx, title))
		return nil
	})
	summary.Duration = b.now().Sub(start)

	attrs := []logging.Attr{
		logging.Int("titles", summary.Titles),
		logging.Int("written", summary.Written),
		logging.Int("failed", summary.Failed),
		logging.Int("present", summary.Present),
		logging.Duration("duration", summary.Duration),
	}
	switch {
	case err == nil:
		logger.Info("poster backfill finished", logging.Args(attrs...)...)
	case errors.Is(err, context.Canceled):
		logger.Warn("poster backfill interrupted", logging.Args(attrs...)...)
	default:
		attrs = append(attrs,
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix directory permissions or rerun with --keep-going"),
		)
		logging.ErrorWithContext(logger, "poster backfill aborted", "backfill_aborted", attrs...)
	}
	return summary, err
}

// ProcessTitle inspects one title and, when needed, walks the source chain.
func (b *Backfiller) ProcessTitle(ctx context.Context, title Title) Report {
	if b.cleanTitles && title.Query == "" {
		title.Query = textutil.CleanTitle(title.Name)
	}
	ctx = services.WithTitle(ctx, title.Name)
	logger := logging.WithContext(ctx, b.logger)

	report := Report{Title: title, Inspection: Inspect(title.PosterPath)}
	switch report.Inspection.State {
	case PosterReal:
		report.Status = StatusPresent
		logger.Debug("poster present",
			logging.Int("width", report.Inspection.Width),
			logging.Int("height", report.Inspection.Height),
		)
		return report
	case PosterUnreadable:
		report.Status = StatusUnreadable
		report.Err = report.Inspection.Err
		logging.WarnWithContext(logger, "poster unreadable; leaving it in place", "poster_unreadable",
			logging.String("path", title.PosterPath),
			logging.Error(report.Inspection.Err),
			logging.String(logging.FieldErrorHint, "delete the file to let the next run replace it"),
			logging.String(logging.FieldImpact, "title keeps its current poster"),
		)
		return report
	}

	reason := "missing"
	if report.Inspection.State == PosterPlaceholder {
		reason = "placeholder"
	}
	if b.dryRun {
		report.Status = StatusDryRun
		logger.Info("poster needed (dry run)", logging.String("reason", reason))
		return report
	}
	logger.Info("poster needed", logging.String("reason", reason), logging.String("query", title.LookupName()))

	for _, source := range b.sources {
		if err := ctx.Err(); err != nil {
			report.Status = StatusFailed
			report.Err = err
			return report
		}
		data, outcome := source.Fetch(ctx, title)
		report.Attempts = append(report.Attempts, outcome)
		if !outcome.OK() {
			logger.Info("poster source failed",
				logging.String("source", outcome.Source),
				logging.FailureKind(outcome.Kind),
				logging.Error(outcome.Err),
			)
			report.Err = outcome.Err
			continue
		}

		if err := b.writeFile(title.PosterPath, data, 0o644); err != nil {
			report.Status = StatusFailed
			report.Err = err
			logging.ErrorWithContext(logger, "write poster failed", "poster_write_failed",
				logging.String("path", title.PosterPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check write permission on the title directory"),
			)
			return report
		}
		report.Status = StatusWritten
		report.Source = outcome.Source
		report.Bytes = len(data)
		report.Err = nil
		logger.Info("poster written",
			logging.String(logging.FieldEventType, "poster_written"),
			logging.String("source", outcome.Source),
			logging.String("url", outcome.URL),
			logging.String("format", artwork.DetectFormat(data)),
			logging.Int("bytes", len(data)),
		)
		return report
	}

	report.Status = StatusFailed
	logging.WarnWithContext(logger, "no poster source succeeded", "poster_unavailable",
		logging.Int("attempts", len(report.Attempts)),
		logging.Error(report.Err),
		logging.String(logging.FieldErrorHint, "check network access and the OMDb API key"),
		logging.String(logging.FieldImpact, "title keeps its current poster"),
	)
	return report
}
