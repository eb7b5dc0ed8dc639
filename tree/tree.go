// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/tree.go
// Summary: TilingWindowTree — the per-workspace container tree and its
// layout recursion.
// Usage: One Tree per Workspace (and one small Tree per FloatingTree
// container, per spec.md §3). Owns an *container.Arena plus a Root and
// ActiveLeaf ID.
// Notes: Grounded on framegrace-texelation/texel/tree.go (Node/Children/
// SplitRatios, SplitActive/CloseActiveLeaf/MoveActive/findNeighbor), adapted
// from a two-pane-terminal-split model with an explicit float64 ratio slice
// per Parent to spec.md §4.B's arena-of-Containers model, where a Parent's
// children proportions live implicitly in their current pixel extents (no
// separate ratio field is needed — set_logical_area recomputes each child's
// share of the new extent from its share of the old one).

package tree

import (
	"waytile/container"
	"waytile/internal/geom"
)

// MinExtent is the minimum pixel size (§4.B resize algorithm) a sibling may
// be shrunk to along the resized axis.
const MinExtent = 50

// Tree is a per-workspace tiling tree. The zero value is not usable; use New.
type Tree struct {
	Arena        *container.Arena
	Root         container.ID
	ActiveLeaf   container.ID
	DefaultSplit container.SplitDirection
}

// New creates an empty tree backed by the given arena (or a fresh one if nil).
func New(arena *container.Arena) *Tree {
	if arena == nil {
		arena = container.NewArena()
	}
	return &Tree{Arena: arena, DefaultSplit: container.SplitHorizontal}
}

// Empty reports whether the tree has no containers at all.
func (t *Tree) Empty() bool {
	return t.Root == 0
}

func (t *Tree) get(id container.ID) (*container.Container, bool) {
	return t.Arena.Get(id)
}

// parentOf returns c's parent Container, or nil if c is the root.
func (t *Tree) parentOf(id container.ID) *container.Container {
	c, ok := t.get(id)
	if !ok || c.Parent == 0 {
		return nil
	}
	p, ok := t.get(c.Parent)
	if !ok {
		return nil
	}
	return p
}

// indexIn returns id's index within parent's Children, or -1.
func indexIn(parent *container.Container, id container.ID) int {
	for i, childID := range parent.Children {
		if childID == id {
			return i
		}
	}
	return -1
}

// axisAligned reports whether a Parent's split direction operates along the
// same axis as Direction d. Stacked/Tabbed Parents have no spatial axis, so
// per SPEC_FULL.md they're treated as aligned with both axes for selection
// and resize purposes, resolved in list order.
func axisAligned(split container.SplitDirection, d Direction) bool {
	switch split {
	case container.SplitHorizontal:
		return d == DirLeft || d == DirRight
	case container.SplitVertical:
		return d == DirUp || d == DirDown
	case container.SplitStacked, container.SplitTabbed:
		return true
	default:
		return false
	}
}

// Direction is a move/resize/select direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// IsPositive reports whether d points toward increasing coordinates
// (Right/Down) as opposed to decreasing ones (Left/Up).
func (d Direction) IsPositive() bool {
	return d == DirRight || d == DirDown
}

// Layout recomputes logical areas for the whole tree given the workspace's
// area, preserving each child's proportional share of its parent's extent
// (spec.md §3 invariant 3, §4.A set_logical_area contract).
func (t *Tree) Layout(area geom.Rect) {
	if t.Root == 0 {
		return
	}
	t.layoutNode(t.Root, area)
}

func (t *Tree) layoutNode(id container.ID, area geom.Rect) {
	c, ok := t.get(id)
	if !ok {
		return
	}
	oldArea := c.LogicalArea
	c.SetLogicalArea(area)

	if c.Kind != container.KindParent || len(c.Children) == 0 {
		return
	}

	switch c.Split {
	case container.SplitStacked, container.SplitTabbed:
		for _, childID := range c.Children {
			t.layoutNode(childID, area)
		}
		return
	case container.SplitHorizontal:
		t.layoutAxis(c, oldArea, area, true)
	case container.SplitVertical:
		t.layoutAxis(c, oldArea, area, false)
	}
}

// layoutAxis redistributes c's children along the main axis (horizontal:
// x/width, vertical: y/height), preserving each child's fraction of the old
// extent and giving the final child the rounding slack.
func (t *Tree) layoutAxis(c *container.Container, oldArea, newArea geom.Rect, horizontal bool) {
	n := len(c.Children)
	oldExtent := oldArea.W
	newExtent := newArea.W
	if !horizontal {
		oldExtent = oldArea.H
		newExtent = newArea.H
	}
	if oldExtent <= 0 {
		oldExtent = newExtent
	}

	shares := make([]int, n)
	used := 0
	for i, childID := range c.Children {
		child, ok := t.get(childID)
		childExtent := oldExtent / n
		if ok {
			if horizontal {
				childExtent = child.LogicalArea.W
			} else {
				childExtent = child.LogicalArea.H
			}
		}
		if childExtent <= 0 {
			childExtent = oldExtent / n
		}
		share := int(float64(childExtent) / float64(oldExtent) * float64(newExtent))
		if i == n-1 {
			share = newExtent - used
		}
		shares[i] = share
		used += share
	}

	pos := 0
	if horizontal {
		pos = newArea.X
	} else {
		pos = newArea.Y
	}
	for i, childID := range c.Children {
		var childRect geom.Rect
		if horizontal {
			childRect = geom.Rect{X: pos, Y: newArea.Y, W: shares[i], H: newArea.H}
		} else {
			childRect = geom.Rect{X: newArea.X, Y: pos, W: newArea.W, H: shares[i]}
		}
		t.layoutNode(childID, childRect)
		pos += shares[i]
	}
}

// Traverse calls fn for every container reachable from the root, depth first.
func (t *Tree) Traverse(fn func(*container.Container)) {
	if t.Root == 0 {
		return
	}
	t.traverse(t.Root, fn)
}

func (t *Tree) traverse(id container.ID, fn func(*container.Container)) {
	c, ok := t.get(id)
	if !ok {
		return
	}
	fn(c)
	for _, childID := range c.Children {
		t.traverse(childID, fn)
	}
}

// FirstLeaf descends to the first Leaf reachable from id (first child at
// every level), or 0 if none is reachable.
func (t *Tree) FirstLeaf(id container.ID) container.ID {
	c, ok := t.get(id)
	if !ok {
		return 0
	}
	for c.Kind == container.KindParent && len(c.Children) > 0 {
		c, ok = t.get(c.Children[0])
		if !ok {
			return 0
		}
	}
	if c.Kind == container.KindLeaf {
		return c.ID
	}
	return 0
}

// FindLeafAt returns the Leaf whose logical area contains p, or 0.
func (t *Tree) FindLeafAt(p geom.Point) container.ID {
	if t.Root == 0 {
		return 0
	}
	return t.findLeafAt(t.Root, p)
}

func (t *Tree) findLeafAt(id container.ID, p geom.Point) container.ID {
	c, ok := t.get(id)
	if !ok {
		return 0
	}
	if c.Kind == container.KindLeaf {
		if c.LogicalArea.Contains(p) {
			return c.ID
		}
		return 0
	}
	for _, childID := range c.Children {
		if hit := t.findLeafAt(childID, p); hit != 0 {
			return hit
		}
	}
	return 0
}
