package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelkeeper/internal/config"
	"reelkeeper/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the tunnel client, library access and remote services",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, line := range checkLines(newStatusPrinter(out), ctx.configPath, cfg, results) {
				fmt.Fprintln(out, line)
			}
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func checkLines(p statusPrinter, configPath string, cfg *config.Config, results []preflight.Result) []string {
	lines := p.section("Configuration")
	lines = append(lines,
		p.line("Config file", statusInfo, configPath),
		p.line("Watchdog", statusInfo, configuredLabel(cfg.Watchdog.URL)),
		p.line("Poster backfill", statusInfo, configuredLabel(cfg.Posters.RootDir)),
		p.line("Jellyfin refresh", statusInfo, yesNo(cfg.Jellyfin.Enabled)),
		p.line("Notifications", statusInfo, yesNo(strings.TrimSpace(cfg.Notifications.NtfyTopic) != "")),
		"",
	)
	lines = append(lines, p.section("Checks")...)
	failed := 0
	for _, result := range results {
		kind := statusOK
		if !result.Passed {
			kind = statusError
			failed++
		}
		lines = append(lines, p.line(result.Name, kind, result.Detail))
	}
	if failed > 0 {
		lines = append(lines, "", p.line("Summary", statusError, fmt.Sprintf("%d of %d checks failed", failed, len(results))))
	} else {
		lines = append(lines, "", p.line("Summary", statusOK, fmt.Sprintf("all %d checks passed", len(results))))
	}
	return lines
}

func configuredLabel(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not configured"
	}
	return value
}
