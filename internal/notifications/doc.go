// Package notifications sends ntfy push messages when the watchdog starts the
// tunnel, when a poster backfill finishes and when either tool hits an error.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers never need nil checks. Individual events can be muted through the
// [notifications] toggles.
package notifications
