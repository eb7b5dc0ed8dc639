// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ipc/executor.go
// Summary: Dispatches a parsed command AST onto the Policy (spec.md §4.F
// "Execution": "posts the AST to the compositor serial queue for
// execution... A focus <direction> command routes to the active Output's
// select(direction)").
// Notes: CommandTarget is the narrow seam this package depends on instead of
// importing package wm directly, mirroring framegrace-texelation/protocol's
// stance of depending only on small interfaces (EventSink) rather than
// concrete server types — it keeps ipc testable against a fake without
// pulling in the whole window-manager graph.

package ipc

import "waytile/config"

// CommandTarget is the subset of wm.Policy the command executor needs.
// This package only carries the parsed criteria predicate through; the
// implementation decides what it matches. wm.Policy matches only the
// all/floating/tiling keys and treats a block with any other key as absent,
// acting on the focused window.
type CommandTarget interface {
	// FocusDirection routes "focus up/down/left/right" to the active
	// Output's select(direction).
	FocusDirection(dir string) bool
	// FocusAdjacent routes "focus next"/"focus prev" to a walk of
	// insertion order within the current Parent.
	FocusAdjacent(next bool) bool
	// RunCommand executes every other command keyword against the
	// windows matching criteria (nil criteria means "the focused
	// window", per i3 semantics). Returns an error to report a runtime
	// (not parse) failure.
	RunCommand(cmd Command, criteria []Criterion) error
	// HandleKey dispatches one keyboard chord delivered over a
	// TypeRunBinding frame against the configured custom and default
	// bindings.
	HandleKey(modifier config.ModifierMask, keycode uint32) bool
}

// Result is one scoped command list's outcome, marshaled into the COMMAND
// reply array (spec.md §4.F: "JSON array of {success:bool,
// parse_error?:bool} per scoped command list").
type Result struct {
	Success    bool `json:"success"`
	ParseError bool `json:"parse_error,omitempty"`
}

// Execute parses and runs script against target, returning one Result per
// scoped command list in script order. A parse error in one scoped list
// does not stop later ones from running (spec.md §7 edge case 5).
func Execute(script string, target CommandTarget) []Result {
	lists, errs := ParseScript(script)
	results := make([]Result, len(lists))

	for i, list := range lists {
		if errs[i] != nil {
			results[i] = Result{Success: false, ParseError: true}
			continue
		}
		if list == nil {
			results[i] = Result{Success: true}
			continue
		}
		results[i] = runScopedList(list, target)
	}
	return results
}

func runScopedList(list *ScopedList, target CommandTarget) Result {
	for _, cmd := range list.Commands {
		if !runCommand(cmd, list.Criteria, target) {
			return Result{Success: false}
		}
	}
	return Result{Success: true}
}

func runCommand(cmd Command, criteria []Criterion, target CommandTarget) bool {
	if cmd.Keyword == "focus" && len(cmd.Args) == 1 {
		switch cmd.Args[0] {
		case "up", "down", "left", "right":
			return target.FocusDirection(cmd.Args[0])
		case "next":
			return target.FocusAdjacent(true)
		case "prev":
			return target.FocusAdjacent(false)
		}
	}
	return target.RunCommand(cmd, criteria) == nil
}
