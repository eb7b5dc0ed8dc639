// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/fullscreen.go
// Summary: Tree-wide fullscreen bookkeeping (spec.md §3: at most one
// fullscreen Leaf per workspace).

package tree

import "waytile/container"

// SetFullscreen enters or leaves fullscreen on leaf. Entering fullscreen
// first restores any other Leaf already fullscreen in this tree, so the
// one-fullscreen-per-workspace invariant never breaks.
func (t *Tree) SetFullscreen(leaf container.ID, fullscreen bool) bool {
	c, ok := t.get(leaf)
	if !ok || c.Kind != container.KindLeaf {
		return false
	}
	if fullscreen && c.State != container.StateFullscreen {
		if prev := t.FullscreenLeaf(); prev != 0 && prev != leaf {
			if pc, ok := t.get(prev); ok {
				pc.ToggleFullscreen()
			}
		}
	}
	if fullscreen == (c.State == container.StateFullscreen) {
		return true
	}
	return c.ToggleFullscreen()
}

// FullscreenLeaf returns the tree's current fullscreen Leaf, or 0.
func (t *Tree) FullscreenLeaf() container.ID {
	var found container.ID
	t.Traverse(func(c *container.Container) {
		if found == 0 && c.Kind == container.KindLeaf && c.State == container.StateFullscreen {
			found = c.ID
		}
	})
	return found
}
