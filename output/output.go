// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: output/output.go
// Summary: One physical display: an ordered list of Workspaces, the active
// key, and animated workspace switching (spec.md §4.C).
// Notes: Grounded on framegrace-texelation/texel/desktop_engine_core.go's
// SwitchToWorkspace (single-output, single-workspace-map switch), generalized
// to N outputs (the teacher has exactly one implicit output) and to the
// virtual-strip src/dst rectangle computation spec.md §4.C requires.
// Supplements spec.md per original_source/src/output_content.cpp: workspace
// 1 is never auto-destroyed even when empty.

package output

import (
	"sort"

	"waytile/container"
	"waytile/internal/geom"
	"waytile/tree"
	"waytile/workspace"
)

// pinnedEmptyKey is the workspace that original_source/output_content.cpp
// keeps alive even when empty, so an Output is never left with zero
// workspaces.
const pinnedEmptyKey workspace.Key = 1

// LayoutHint selects a newly created workspace's default tiling mode
// (spec.md §4.C step 1, spec.md §6 "per-workspace layout hint").
type LayoutHint int

const (
	LayoutTiled LayoutHint = iota
	LayoutFloating
)

// Observer receives workspace-focus notifications, fired before the switch
// animation starts (spec.md §4.C: "Observers are fired before animation
// starts").
type Observer interface {
	OnFocused(prev *workspace.Workspace, prevKey workspace.Key, cur *workspace.Workspace, curKey workspace.Key)
}

// Switch describes an in-flight workspace-switch animation request handed
// to an external animator (package output never runs the animation loop
// itself — that's the Animator's job).
type Switch struct {
	From, To       workspace.Key
	SrcOffset      geom.Point
	DstOffset      geom.Point
}

// Output is one physical display.
type Output struct {
	Geometry   geom.Rect
	Workspaces map[workspace.Key]*workspace.Workspace
	Order      []workspace.Key
	ActiveKey  workspace.Key

	PositionOffset geom.Point
	Transform      geom.Mat4

	LayoutHintFor func(workspace.Key) LayoutHint
	Observer       Observer

	// ShellArena and Shells hold panel/layer-shell windows (spec.md §3
	// "Shell"), which live at the Output rather than any one Workspace —
	// like a real desktop panel, they don't switch away with the active
	// workspace and never enter a tiling tree.
	ShellArena *container.Arena
	Shells     []container.ID
}

// New creates an Output with the given display geometry.
func New(geometry geom.Rect) *Output {
	return &Output{
		Geometry:   geometry,
		Workspaces: make(map[workspace.Key]*workspace.Workspace),
		Transform:  geom.Identity(),
		ShellArena: container.NewArena(),
	}
}

// AddShell registers a panel/layer-shell window at rect, outside any
// tiling tree (spec.md §3 "Shell: one window handle for panels/layers that
// must not participate in tiling"). Grounded on
// original_source/shell_component_container.cpp: its logical and visible
// areas are identical and set directly from the toolkit, never recomputed
// by a layout pass.
func (o *Output) AddShell(win container.WindowID, rect geom.Rect) container.ID {
	c := o.ShellArena.New(container.KindShell)
	c.Window = win
	c.LogicalArea = rect
	c.VisibleArea = rect
	o.Shells = append(o.Shells, c.ID)
	return c.ID
}

// RemoveShellByWindow unregisters the Shell container carrying win, if any.
func (o *Output) RemoveShellByWindow(win container.WindowID) bool {
	for i, id := range o.Shells {
		c, ok := o.ShellArena.Get(id)
		if ok && c.Window == win {
			o.Shells = append(o.Shells[:i], o.Shells[i+1:]...)
			o.ShellArena.Remove(id)
			return true
		}
	}
	return false
}

func (o *Output) hint(k workspace.Key) LayoutHint {
	if o.LayoutHintFor != nil {
		return o.LayoutHintFor(k)
	}
	return LayoutTiled
}

// Workspace returns the workspace keyed k on this Output, creating it (per
// the configured layout hint) if it doesn't exist yet — e.g. for a
// move-to-workspace intent targeting a workspace nobody has switched to.
func (o *Output) Workspace(k workspace.Key) *workspace.Workspace {
	return o.ensureWorkspace(k)
}

// ensureWorkspace creates a workspace for k if it doesn't exist yet,
// inserting it into Order in sorted position.
func (o *Output) ensureWorkspace(k workspace.Key) *workspace.Workspace {
	if ws, ok := o.Workspaces[k]; ok {
		return ws
	}
	ws := workspace.New(k)
	ws.OutputKey = int(k)
	ws.DefaultFloating = o.hint(k) == LayoutFloating
	o.Workspaces[k] = ws
	o.Order = append(o.Order, k)
	sort.Slice(o.Order, func(i, j int) bool { return o.Order[i] < o.Order[j] })
	return ws
}

// stripOffset is workspace k's position on the virtual scrolling strip
// (spec.md §4.C: "workspace i sits at x = i × output_width"). Index is the
// workspace's position within Order, not its Key.
func (o *Output) stripOffset(k workspace.Key) geom.Point {
	for i, key := range o.Order {
		if key == k {
			return geom.Point{X: i * o.Geometry.W, Y: 0}
		}
	}
	return geom.Point{}
}

// RequestWorkspace implements spec.md §4.C. It returns the *Switch describing
// the animation to submit to an Animator, or nil if no animation is needed
// (k was already active, or this is the first workspace ever shown on this
// Output). Callers must call FinishSwitch(k) once the animation completes.
func (o *Output) RequestWorkspace(k workspace.Key) *Switch {
	to := o.ensureWorkspace(k)

	if o.ActiveKey == k {
		return nil
	}

	from, hadFrom := o.Workspaces[o.ActiveKey]
	prevKey := o.ActiveKey

	if hadFrom {
		for _, id := range from.PinnedFloats() {
			from.TransferFloat(id, to)
		}
	}

	if o.Observer != nil {
		o.Observer.OnFocused(from, prevKey, to, k)
	}

	if hadFrom {
		from.Show()
	}
	to.Show()

	srcOffset := o.stripOffset(prevKey)
	dstOffset := o.stripOffset(k)

	o.ActiveKey = k

	if !hadFrom {
		return nil
	}
	return &Switch{From: prevKey, To: k, SrcOffset: srcOffset, DstOffset: dstOffset}
}

// FinishSwitch hides every workspace except the active one and deletes any
// workspace left empty by the switch (other than the pinned-empty
// workspace), per spec.md §4.C step 3 ("on completion, all workspaces
// except to are hidden") and §3's Workspace lifecycle.
func (o *Output) FinishSwitch(except workspace.Key) {
	for _, k := range o.Order {
		if k == except {
			continue
		}
		ws := o.Workspaces[k]
		ws.Hide()
	}
	o.pruneEmpty(except)
}

func (o *Output) pruneEmpty(except workspace.Key) {
	var toDestroy []workspace.Key
	for _, k := range o.Order {
		if k == except || k == pinnedEmptyKey {
			continue
		}
		if o.Workspaces[k].Empty() {
			toDestroy = append(toDestroy, k)
		}
	}
	for _, k := range toDestroy {
		o.destroyWorkspace(k)
	}
}

func (o *Output) destroyWorkspace(k workspace.Key) {
	delete(o.Workspaces, k)
	for i, key := range o.Order {
		if key == k {
			o.Order = append(o.Order[:i], o.Order[i+1:]...)
			return
		}
	}
}

// Active returns the currently active workspace, or nil if none yet.
func (o *Output) Active() *workspace.Workspace {
	return o.Workspaces[o.ActiveKey]
}

// SelectOnActive routes a focus/select request to the active workspace's
// tree, per spec.md §4.F: "focus <direction> routes to the active Output's
// select(direction)".
func (o *Output) SelectOnActive(d SelectDirection) bool {
	ws := o.Active()
	if ws == nil {
		return false
	}
	return ws.Tree.Select(treeDirection(d))
}

// SelectDirection mirrors tree.Direction at the Output API boundary so
// callers outside package tree don't need to import it just to call
// SelectOnActive.
type SelectDirection int

const (
	SelectUp SelectDirection = iota
	SelectDown
	SelectLeft
	SelectRight
)

func treeDirection(d SelectDirection) tree.Direction {
	switch d {
	case SelectUp:
		return tree.DirUp
	case SelectDown:
		return tree.DirDown
	case SelectLeft:
		return tree.DirLeft
	default:
		return tree.DirRight
	}
}

// LayoutActive recomputes the active workspace's tiling geometry against
// this Output's visible area, accounting for the current scroll offset
// during an in-flight workspace_switch animation.
func (o *Output) LayoutActive() {
	ws := o.Active()
	if ws == nil {
		return
	}
	area := o.Geometry
	area.X += o.PositionOffset.X
	area.Y += o.PositionOffset.Y
	ws.Layout(area)
}
