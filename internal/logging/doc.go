// Package logging assembles structured slog loggers and formatting helpers used
// by the watchdog and the poster backfill.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (stdout plus an optional rotating log file), and exposes
// context-aware helpers so code can tag log lines with correlation IDs and the
// media title being processed. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
