// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: container/ops.go
// Summary: Per-container operations from the uniform contract (spec.md §4.A)
// that do not require walking the surrounding tree. Tree-scoped algorithms
// (move, resize, select_next, split promotion) live in package tree, which
// calls back into these helpers.

package container

import "waytile/internal/geom"

// Gaps describes the inner/outer pixel gaps read from config, used when
// computing a Leaf's visible area from its logical area (spec.md §3: visible
// area is "logical area minus half-gaps on sides with neighbors").
type Gaps struct {
	InnerX, InnerY int
	OuterX, OuterY int
}

// SetLogicalArea assigns c's logical area directly. Callers that need
// sibling-proportional resizing of a Parent's children use tree's layout
// recursion instead; this is the terminal, single-node assignment it bottoms
// out in.
func (c *Container) SetLogicalArea(r geom.Rect) {
	c.LogicalArea = r
}

// ApplyVisibleArea computes c's visible area from its logical area and which
// sides border a sibling, per spec.md §3 invariant and §8's gap boundary
// case. edgeHasNeighbor order is [left, top, right, bottom].
func (c *Container) ApplyVisibleArea(g Gaps, edgeHasNeighbor [4]bool) {
	left, top, right, bottom := g.OuterX, g.OuterY, g.OuterX, g.OuterY
	if edgeHasNeighbor[0] {
		left = halfGap(g.InnerX)
	}
	if edgeHasNeighbor[1] {
		top = halfGap(g.InnerY)
	}
	if edgeHasNeighbor[2] {
		right = halfGap(g.InnerX)
	}
	if edgeHasNeighbor[3] {
		bottom = halfGap(g.InnerY)
	}
	c.VisibleArea = c.LogicalArea.Shrink(left, top, right, bottom)
}

func halfGap(gap int) int {
	return (gap + 1) / 2
}

// Movable reports whether this Kind participates in tree move/resize/select.
// Group and Shell reject (§4.A: "rejects on non-movable variants").
func (c *Container) Movable() bool {
	switch c.Kind {
	case KindLeaf, KindFloatingWindow, KindFloatingTree:
		return true
	default:
		return false
	}
}

// ToggleFullscreen flips a Leaf between restored and fullscreen, recording
// the prior logical area so it can be restored (spec.md §3 invariant 4,
// §8 round-trip property). Returns false for non-Leaf kinds.
func (c *Container) ToggleFullscreen() bool {
	if c.Kind != KindLeaf {
		return false
	}
	if c.State == StateFullscreen {
		c.State = StateRestored
		if c.HadSavedState {
			c.LogicalArea = c.SavedRect
			c.HadSavedState = false
		}
		return true
	}
	c.SavedRect = c.LogicalArea
	c.HadSavedState = true
	c.State = StateFullscreen
	return true
}

// SetPinned implements §4.A's `pinned(bool)`, valid only on FloatingWindow.
func (c *Container) SetPinned(pinned bool) bool {
	if c.Kind != KindFloatingWindow {
		return false
	}
	c.Pinned = pinned
	return true
}

// SaveBeforeHide records the container's current logical area so a
// workspace hide/show cycle can restore it (spec.md §4.B state machine).
// The container's State is not saved.
func (c *Container) SaveBeforeHide() {
	c.SavedRect = c.LogicalArea
	c.HadSavedState = true
}

// RestoreAfterShow undoes SaveBeforeHide. A no-op if nothing was saved.
func (c *Container) RestoreAfterShow() {
	if !c.HadSavedState {
		return
	}
	c.LogicalArea = c.SavedRect
	c.HadSavedState = false
}
