// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/waytiled/main.go
// Summary: Process entry point.
// Notes: Grounded on bnema-dumber/cmd/dumber/main.go's ldflags-populated
// version/commit/buildDate var block.

package main

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	Execute()
}
