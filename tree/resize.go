// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/resize.go
// Summary: Resize a container along one axis by a pixel delta (spec.md
// §4.B).
// Notes: Grounded on framegrace-texelation/texel/workspace.go's
// findBorderToResize/adjustBorder (ratio-based border drag generalized to
// absolute pixels), with the sibling weighting resolved from
// original_source/tiling_window_tree.cpp: a shrinking sibling gives up a
// share of the delta proportional to its own extent over the combined
// extent of all siblings being shrunk, so large panes absorb more of the
// change than small ones.

package tree

import "waytile/container"

// Resize grows or shrinks src by delta pixels (positive grows) along d's
// axis. It walks up from src to the nearest Parent aligned with d's axis
// that has at least two children, then redistributes delta across the
// ancestor-of-src child and its siblings. Returns false if no such ancestor
// exists, or the change would shrink any sibling below MinExtent.
func (t *Tree) Resize(src container.ID, d Direction, delta int) bool {
	_, ok := t.get(src)
	if !ok {
		return false
	}

	parent, child := t.findResizeAncestor(src, d)
	if parent == nil {
		return false
	}

	horizontal := d == DirLeft || d == DirRight
	if !plan(t, parent, child, horizontal, delta) {
		return false
	}
	return true
}

// findResizeAncestor ascends from src looking for a Parent aligned with d's
// axis with >=2 children, returning that Parent and the direct child of it
// that is (or contains) src.
func (t *Tree) findResizeAncestor(src container.ID, d Direction) (*container.Container, container.ID) {
	cur := src
	for {
		c, ok := t.get(cur)
		if !ok || c.Parent == 0 {
			return nil, 0
		}
		parent, ok := t.get(c.Parent)
		if !ok {
			return nil, 0
		}
		if axisAligned(parent.Split, d) && len(parent.Children) >= 2 {
			return parent, cur
		}
		cur = parent.ID
	}
}

// plan redistributes delta pixels of growth to child (a direct child of
// parent) taken from its siblings, weighted by each sibling's current
// extent relative to the combined extent of all siblings. Rejects the whole
// operation if any sibling would fall below MinExtent.
func plan(t *Tree, parent *container.Container, child container.ID, horizontal bool, delta int) bool {
	extent := func(id container.ID) int {
		c, ok := t.get(id)
		if !ok {
			return 0
		}
		if horizontal {
			return c.LogicalArea.W
		}
		return c.LogicalArea.H
	}

	siblings := make([]container.ID, 0, len(parent.Children)-1)
	totalSiblingExtent := 0
	for _, id := range parent.Children {
		if id == child {
			continue
		}
		siblings = append(siblings, id)
		totalSiblingExtent += extent(id)
	}
	if len(siblings) == 0 || totalSiblingExtent == 0 {
		return false
	}

	childExtent := extent(child)
	if childExtent+delta < MinExtent {
		return false
	}

	shrink := make(map[container.ID]int, len(siblings))
	remaining := delta
	for i, id := range siblings {
		var share int
		if i == len(siblings)-1 {
			share = remaining
		} else {
			share = int(float64(extent(id)) / float64(totalSiblingExtent) * float64(delta))
			remaining -= share
		}
		shrink[id] = share
		if extent(id)-share < MinExtent {
			return false
		}
	}

	area := parent.LogicalArea
	pos := area.X
	if !horizontal {
		pos = area.Y
	}
	for _, id := range parent.Children {
		c, _ := t.get(id)
		newExtent := extent(id)
		if id == child {
			newExtent += delta
		} else {
			newExtent -= shrink[id]
		}
		var r = c.LogicalArea
		if horizontal {
			r.X, r.W = pos, newExtent
		} else {
			r.Y, r.H = pos, newExtent
		}
		t.layoutNode(id, r)
		pos += newExtent
	}
	return true
}
