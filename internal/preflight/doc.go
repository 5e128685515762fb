// Package preflight provides readiness checks for the binaries, files,
// directories and services reelkeeper depends on.
//
// The CLI "reelkeeper check" command runs RunAll and renders each Result as a
// status line. Checks for disabled features are skipped.
package preflight
