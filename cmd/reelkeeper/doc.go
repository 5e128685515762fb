// Package main hosts the reelkeeper CLI entrypoint and command graph.
//
// The Cobra command tree exposes the availability watchdog, the poster
// backfill pass, preflight checks and configuration scaffolding. It
// centralizes configuration resolution and logger setup so subcommands only
// assemble collaborators from internal packages and render results.
package main
