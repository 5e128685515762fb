package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"reelkeeper/internal/artwork"
	"reelkeeper/internal/config"
	"reelkeeper/internal/logging"
	"reelkeeper/internal/notifications"
	"reelkeeper/internal/omdb"
	"reelkeeper/internal/posters"
	"reelkeeper/internal/services/jellyfin"
)

type postersOptions struct {
	root      string
	dryRun    bool
	keepGoing bool
}

func newPostersCommand(ctx *commandContext) *cobra.Command {
	var opts postersOptions

	cmd := &cobra.Command{
		Use:   "posters",
		Short: "Fill in missing and placeholder poster images",
		Long: "Walk the library root once. Every directory holding a video file gets a poster:\n" +
			"OMDb movie lookup first, then series, then a seeded placeholder image.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if root := strings.TrimSpace(opts.root); root != "" {
				expanded, err := config.ExpandPath(root)
				if err != nil {
					return fmt.Errorf("resolve --root: %w", err)
				}
				cfg.Posters.RootDir = expanded
			}
			if opts.keepGoing {
				cfg.Posters.KeepGoing = true
			}
			if err := cfg.ValidatePosters(); err != nil {
				return fmt.Errorf("posters config: %w", err)
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			backfiller, err := buildBackfiller(cfg, logger, opts.dryRun)
			if err != nil {
				return err
			}
			summary, runErr := backfiller.Run(signalCtx, cfg.Posters.RootDir)

			out := cmd.OutOrStdout()
			printSummary(out, summary, opts.dryRun)

			if errors.Is(runErr, context.Canceled) {
				return runErr
			}
			if runErr != nil {
				notifier := notifications.NewService(cfg)
				if err := notifier.NotifyError(signalCtx, runErr, "poster backfill"); err != nil {
					logger.Debug("error notification failed", logging.Error(err))
				}
				return fmt.Errorf("poster backfill: %w", runErr)
			}
			afterBackfill(signalCtx, cfg, logger, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "Library root to scan (overrides posters.root_dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would be fetched without downloading or writing")
	cmd.Flags().BoolVar(&opts.keepGoing, "keep-going", false, "Skip unreadable directories instead of aborting")
	return cmd
}

// buildBackfiller wires the OMDb movie and series sources and the seeded
// fallback, in that order, to a scanner configured from cfg.
func buildBackfiller(cfg *config.Config, logger *slog.Logger, dryRun bool) (*posters.Backfiller, error) {
	timeout := time.Duration(cfg.Posters.RequestTimeoutSeconds) * time.Second
	lookup, err := omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
		omdb.WithRateLimit(cfg.OMDb.RequestsPerSecond),
		omdb.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("omdb client: %w", err)
	}
	downloader := artwork.New(artwork.WithTimeout(timeout))

	sources := []posters.Source{
		posters.MovieSource(lookup, downloader),
		posters.SeriesSource(lookup, downloader),
		&posters.FallbackSource{
			BaseURL:    cfg.Fallback.BaseURL,
			Width:      cfg.Fallback.Width,
			Height:     cfg.Fallback.Height,
			Downloader: downloader,
		},
	}

	scanner := posters.NewScanner(cfg.Posters.PosterName, cfg.Posters.VideoExtensions, logger)
	scanner.KeepGoing = cfg.Posters.KeepGoing

	return posters.NewBackfiller(scanner, sources,
		posters.WithLogger(logger),
		posters.WithDryRun(dryRun),
		posters.WithCleanTitles(cfg.Posters.CleanTitles),
	), nil
}

// afterBackfill refreshes Jellyfin when posters changed and sends the run
// summary. Neither failure changes the exit status.
func afterBackfill(ctx context.Context, cfg *config.Config, logger *slog.Logger, summary posters.Summary) {
	if summary.Written > 0 {
		if err := jellyfin.NewConfiguredService(cfg).Refresh(ctx); err != nil {
			logging.WarnWithContext(logger, "jellyfin refresh failed", "jellyfin_refresh_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "new posters appear after the next scheduled library scan"),
				logging.String(logging.FieldErrorHint, "check jellyfin.url and jellyfin.api_key in config"),
			)
		}
	}
	stats := notifications.BackfillStats{
		Root:     summary.Root,
		Titles:   summary.Titles,
		Written:  summary.Written,
		Failed:   summary.Failed,
		Duration: summary.Duration,
	}
	if err := notifications.NewService(cfg).NotifyBackfillCompleted(ctx, stats); err != nil {
		logger.Debug("backfill notification failed", logging.Error(err))
	}
}

func printSummary(out io.Writer, summary posters.Summary, dryRun bool) {
	columns := []tableColumn{{header: "Outcome", align: text.AlignLeft}, {header: "Titles", align: text.AlignRight}}
	rows := [][]string{
		{"Scanned", strconv.Itoa(summary.Titles)},
		{"Poster present", strconv.Itoa(summary.Present)},
		{"Poster unreadable", strconv.Itoa(summary.Unreadable)},
		{"Placeholder found", strconv.Itoa(summary.Placeholders)},
	}
	if dryRun {
		rows = append(rows, []string{"Would fetch", strconv.Itoa(summary.DryRun)})
	} else {
		rows = append(rows, []string{"Written", strconv.Itoa(summary.Written)})
		for _, source := range sortedKeys(summary.BySource) {
			rows = append(rows, []string{"  via " + source, strconv.Itoa(summary.BySource[source])})
		}
	}
	rows = append(rows, []string{"Failed", strconv.Itoa(summary.Failed)})

	fmt.Fprintln(out, renderTable(columns, rows))
	for _, failure := range summary.Failures {
		fmt.Fprintf(out, "failed: %s: %v\n", failure.Title.Dir, failure.Err)
	}
	fmt.Fprintf(out, "Completed in %s\n", summary.Duration.Round(time.Millisecond))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
