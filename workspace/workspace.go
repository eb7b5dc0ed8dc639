// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/workspace.go
// Summary: One tiling tree + floating list + pinned-window set + fullscreen
// state (spec.md §3 "Workspace", §4.B state machine).
// Notes: Grounded on framegrace-texelation/texel/workspace.go's Workspace
// (moveActivePane/CloseActivePane/PerformSplit wrapping a single *Node tree),
// generalized to wrap package tree's Tree and to add the floating-window list
// and pinned-transfer bookkeeping the teacher's single-tree model never
// needed (it had no floating layer).

package workspace

import (
	"waytile/container"
	"waytile/internal/geom"
	"waytile/tree"
)

// Key is a workspace's user-addressable number (conventionally 1..9, 0).
type Key int

// Workspace owns one tiling tree plus an ordered floating-window list.
// OutputKey identifies the Output currently hosting it (spec.md §3: "A
// reference to its Output (may be moved between Outputs)"); it is an opaque
// int rather than a pointer back into package output so the two packages
// don't import each other — package output is the one place that interprets
// it.
type Workspace struct {
	Key       Key
	Arena     *container.Arena
	Tree      *tree.Tree
	Floating  []container.ID
	OutputKey int

	// DefaultFloating is the config layout hint (spec.md §4.C step 1,
	// §6 "per-workspace layout hint"), set when the workspace is created.
	// Nothing reads it when a window arrives: wm.Policy.OnNewWindow tiles
	// new windows whatever its value.
	DefaultFloating bool
}

// New creates an empty workspace with its own arena.
func New(key Key) *Workspace {
	arena := container.NewArena()
	return &Workspace{
		Key:   key,
		Arena: arena,
		Tree:  tree.New(arena),
	}
}

// Empty reports whether the workspace has no tiled or floating windows
// (spec.md §3 Workspace lifecycle: "destroyed when empty after being
// switched away from").
func (w *Workspace) Empty() bool {
	return w.Tree.Empty() && len(w.Floating) == 0
}

// InsertTiled adds a new tiled Leaf for win, per the tree's insertion
// algorithm (spec.md §4.B).
func (w *Workspace) InsertTiled(win container.WindowID, dir container.SplitDirection) container.ID {
	return w.Tree.Insert(win, dir)
}

// AddFloating creates a new FloatingWindow for win and appends it to the
// floating list.
func (w *Workspace) AddFloating(win container.WindowID, rect geom.Rect) container.ID {
	c := w.Arena.New(container.KindFloatingWindow)
	c.Window = win
	c.SetLogicalArea(rect)
	w.Floating = append(w.Floating, c.ID)
	return c.ID
}

// NewFloatingTree creates a FloatingTree container: its own small tiling
// tree hosted inside a free-floating rectangle (spec.md §3), seeded with one
// window. dir is not stored: the FloatingTree keeps no split direction, and
// SplitFloatingTree takes the direction of each later insertion as its own
// argument.
// Grounded on original_source/floating_tree_container.cpp's
// FloatingTreeContainer, which wraps a TilingWindowTree of its own rather
// than reusing the workspace's.
func (w *Workspace) NewFloatingTree(win container.WindowID, dir container.SplitDirection) container.ID {
	c := w.Arena.New(container.KindFloatingTree)
	nested := tree.New(w.Arena)
	nested.DefaultSplit = dir
	nested.Insert(win, dir)
	c.NestedRoot = nested.Root
	c.NestedActive = nested.ActiveLeaf
	w.Floating = append(w.Floating, c.ID)
	return c.ID
}

// SplitFloatingTree inserts win next to a FloatingTree's active nested leaf,
// reusing the same insertion algorithm (spec.md §4.B) the workspace's own
// tiling tree uses, and re-lays the nested tree out against the FloatingTree
// container's current logical area.
func (w *Workspace) SplitFloatingTree(id container.ID, win container.WindowID, dir container.SplitDirection) bool {
	c, ok := w.Arena.Get(id)
	if !ok || c.Kind != container.KindFloatingTree {
		return false
	}
	nested := &tree.Tree{Arena: w.Arena, Root: c.NestedRoot, ActiveLeaf: c.NestedActive, DefaultSplit: dir}
	nested.Insert(win, dir)
	c.NestedRoot = nested.Root
	c.NestedActive = nested.ActiveLeaf
	nested.Layout(c.LogicalArea)
	return true
}

// RemoveFloating detaches and deletes a FloatingWindow by ID.
func (w *Workspace) RemoveFloating(id container.ID) bool {
	for i, fid := range w.Floating {
		if fid == id {
			w.Floating = append(w.Floating[:i], w.Floating[i+1:]...)
			w.Arena.Remove(id)
			return true
		}
	}
	return false
}

// RemoveFloatingByWindow removes the floating window carrying win, if any.
func (w *Workspace) RemoveFloatingByWindow(win container.WindowID) bool {
	for _, id := range w.Floating {
		if c, ok := w.Arena.Get(id); ok && c.Window == win {
			return w.RemoveFloating(id)
		}
	}
	return false
}

// PinnedFloats returns the IDs of floating windows pinned to this workspace
// (spec.md §4.C: pinned floats transfer on workspace switch instead of
// being hidden).
func (w *Workspace) PinnedFloats() []container.ID {
	var pinned []container.ID
	for _, id := range w.Floating {
		if c, ok := w.Arena.Get(id); ok && c.Pinned {
			pinned = append(pinned, id)
		}
	}
	return pinned
}

// TransferFloat moves a FloatingWindow container from w to dst: its ID moves
// from w's floating list to dst's, and the container itself is adopted into
// dst's arena under the same ID and removed from w's arena.
func (w *Workspace) TransferFloat(id container.ID, dst *Workspace) bool {
	for i, fid := range w.Floating {
		if fid == id {
			w.Floating = append(w.Floating[:i], w.Floating[i+1:]...)
			dst.Floating = append(dst.Floating, id)
			if c, ok := w.Arena.Get(id); ok {
				dst.Arena.Adopt(c)
				w.Arena.Remove(id)
			}
			return true
		}
	}
	return false
}

// Hide saves and hides every non-pinned window (spec.md §4.B: "On active →
// hidden: every visible window has its prior state saved... pinned floats
// skip this"). Only each window's logical area is saved, not its State.
func (w *Workspace) Hide() {
	w.Tree.Traverse(func(c *container.Container) {
		if c.Kind == container.KindLeaf {
			c.SaveBeforeHide()
			c.State = container.StateHidden
		}
	})
	for _, id := range w.Floating {
		c, ok := w.Arena.Get(id)
		if !ok || c.Pinned {
			continue
		}
		c.SaveBeforeHide()
		c.State = container.StateHidden
	}
}

// Show restores every window saved by Hide (spec.md §4.B: "On hidden →
// active: saved states are restored; pinned floats remain unchanged").
// The saved logical area is restored and every hidden window is set to
// StateRestored, so a window that was fullscreen before Hide comes back
// restored rather than fullscreen.
func (w *Workspace) Show() {
	w.Tree.Traverse(func(c *container.Container) {
		if c.Kind == container.KindLeaf && c.State == container.StateHidden {
			c.RestoreAfterShow()
			c.State = container.StateRestored
		}
	})
	for _, id := range w.Floating {
		c, ok := w.Arena.Get(id)
		if !ok || c.Pinned {
			continue
		}
		if c.State == container.StateHidden {
			c.RestoreAfterShow()
			c.State = container.StateRestored
		}
	}
}

// Layout recomputes the tiling tree's geometry for the given visible area.
func (w *Workspace) Layout(area geom.Rect) {
	w.Tree.Layout(area)
}
