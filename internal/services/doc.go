// Package services defines shared utilities consumed by the watchdog, the
// poster backfill and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and media titles for
//     logging.
//   - Structured error markers plus the Wrap helper, and the Kind
//     classification that turns transport, status and decode failures into a
//     value tests and callers can branch on.
//
// Use these helpers when wiring new HTTP integrations so failure reporting
// stays uniform across both tools.
package services
