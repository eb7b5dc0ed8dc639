// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: windowctl/windowctl.go
// Summary: WindowController, the capability interface through which the
// tiling core mutates actual toolkit windows (spec.md §3 "WindowController",
// explicitly out of scope to implement against a real compositor — see
// spec.md Non-goals: no pixel-format/GPU-buffer/input-device work here).
// Notes: Grounded on framegrace-texelation/texel/runtime_interfaces.go's
// ScreenDriver/EventRouter/AppLifecycleManager pattern: the tree/workspace/
// output/wm packages depend only on this interface, never on a concrete
// Wayland client, so the core stays testable and the toolkit backend stays a
// pluggable collaborator.

package windowctl

import "waytile/container"

// State mirrors container.WindowState at the collaborator boundary so
// WindowController implementations don't need to import package container.
type State int

const (
	StateRestored State = iota
	StateFullscreen
	StateMinimized
	StateHidden
)

// Info is the read-only snapshot a WindowController reports back for a
// window, used to answer IPC GET_TREE-style queries (spec.md §4.E).
type Info struct {
	ID       container.WindowID
	Title    string
	AppID    string
	Class    string
	State    State
	Rect     Rect
	Fullscreen bool
}

// Rect avoids an import-cycle-prone dependency on internal/geom from this
// collaborator-facing package; callers convert at the boundary.
type Rect struct {
	X, Y, W, H int
}

// WindowController is the capability surface the tiling core uses to affect
// real toolkit windows. It is the single seam between the pure layout
// algorithms (container/tree/workspace/output) and a live Wayland
// compositor; spec.md explicitly scopes a concrete Wayland implementation
// out, so this package ships the interface plus a Recorder fake for tests.
type WindowController interface {
	// Open maps a window for the first time; afterward the controller
	// refers to it by the same id.
	Open(id container.WindowID) error
	// Close unmaps and destroys the window.
	Close(id container.WindowID) error

	// SetRectangle places the window's content area at rect (the tiling
	// core's computed LogicalArea minus border/gap decoration).
	SetRectangle(id container.WindowID, rect Rect) error
	// Clip restricts visible content to clipRect (used for tabbed/stacked
	// parents showing only one child's full rect while others are clipped
	// to zero height, and for animation in-flight partial reveals).
	Clip(id container.WindowID, clipRect Rect) error
	// NoClip removes any clip previously applied by Clip.
	NoClip(id container.WindowID) error

	// Raise brings the window to the top of its stacking context (used by
	// Stacked/Tabbed Parents to reveal the selected child).
	Raise(id container.WindowID) error
	// SendToBack lowers the window out of view without unmapping it.
	SendToBack(id container.WindowID) error

	// SelectActive gives the window input focus.
	SelectActive(id container.WindowID) error

	// ChangeState transitions the window's lifecycle state (e.g. entering
	// or leaving fullscreen, minimizing).
	ChangeState(id container.WindowID, state State) error
	// GetState reports the window's last-known lifecycle state.
	GetState(id container.WindowID) (State, error)
	// IsFullscreen reports whether the window currently occupies the
	// output exclusively.
	IsFullscreen(id container.WindowID) (bool, error)

	// InfoFor reports the window's current metadata, used to answer IPC
	// tree/workspace queries without the tiling core itself tracking
	// title/app-id/class (those belong to the toolkit, not the layout).
	InfoFor(id container.WindowID) (Info, error)
}
