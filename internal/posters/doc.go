// Package posters implements the poster backfill pass.
//
// A Scanner walks a library root and reports every directory that holds at
// least one video file as a Title. The Backfiller inspects each title's
// poster file; when it is missing or is the known blue 300x450 placeholder,
// it tries an ordered chain of Sources (OMDb movie, OMDb series, seeded
// placeholder service) and atomically writes the first image fetched.
//
// One title failing never stops the pass. Only traversal errors abort it,
// and Scanner.KeepGoing downgrades those to warnings.
package posters
