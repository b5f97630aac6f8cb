// Package main hosts the cleanarr CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, converts it into the
// option values the internal packages accept, and renders results for the
// terminal. Subcommands stay thin: reconciliation, scanning, preflight checks,
// run history, and notifications live in internal packages.
package main
