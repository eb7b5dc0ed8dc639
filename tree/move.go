// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/move.go
// Summary: Move a container in a direction (spec.md §4.B).
// Notes: Grounded on framegrace-texelation/texel/tree.go's MoveActive/
// SwapActivePane (same-parent index swap), generalized with the detach/graft
// path for moves that cross Parent boundaries, and a root-edge case for
// moving past every existing sibling (prepend/append to an axis-aligned
// root, generalized from the teacher's single always-horizontal root).

package tree

import "waytile/container"

// Move relocates src one step in direction d: swapping with its neighbor if
// they share a parent, detaching and grafting next to the neighbor
// otherwise, or prepending/appending at the root if src is already at the
// edge of an axis-aligned root Parent. Returns false if src cannot move
// further in d.
func (t *Tree) Move(src container.ID, d Direction) bool {
	c, ok := t.get(src)
	if !ok || !c.Movable() {
		return false
	}

	target := t.SelectNext(src, d)
	if target != 0 {
		return t.moveTowards(src, target, d)
	}
	return t.moveToRootEdge(src, d)
}

func (t *Tree) moveTowards(src, target container.ID, d Direction) bool {
	srcParent := t.parentOf(src)
	targetParent := t.parentOf(target)
	if srcParent == nil || targetParent == nil {
		return false
	}

	if srcParent.ID == targetParent.ID {
		i := indexIn(srcParent, src)
		j := indexIn(srcParent, target)
		if i < 0 || j < 0 {
			return false
		}
		srcParent.Children[i], srcParent.Children[j] = srcParent.Children[j], srcParent.Children[i]
		return true
	}

	t.detach(src)
	// Re-resolve targetParent: detach may have collapsed an ancestor chain
	// that did not include targetParent, so its identity is stable, but look
	// it back up defensively in case target itself moved during collapse.
	tp := t.parentOf(target)
	if tp == nil {
		return false
	}
	idx := indexIn(tp, target)
	if idx < 0 {
		return false
	}
	insertAt := idx + 1
	if !d.IsPositive() {
		insertAt = idx
	}

	srcC, _ := t.get(src)
	srcC.Parent = tp.ID
	tp.Children = append(tp.Children, 0)
	copy(tp.Children[insertAt+1:], tp.Children[insertAt:])
	tp.Children[insertAt] = src
	return true
}

// moveToRootEdge handles src already being at the edge of its tree: if the
// root is a Parent aligned with d's axis, src is detached and
// prepended/appended to the root's children.
func (t *Tree) moveToRootEdge(src container.ID, d Direction) bool {
	root, ok := t.get(t.Root)
	if !ok || root.Kind != container.KindParent || !axisAligned(root.Split, d) {
		return false
	}
	if srcParent := t.parentOf(src); srcParent != nil && srcParent.ID == root.ID {
		// Already a direct child of root and at the edge: nothing further.
		idx := indexIn(root, src)
		if (d.IsPositive() && idx == len(root.Children)-1) || (!d.IsPositive() && idx == 0) {
			return false
		}
	}

	t.detach(src)
	root, ok = t.get(t.Root)
	if !ok {
		return false
	}
	srcC, _ := t.get(src)
	srcC.Parent = root.ID
	if d.IsPositive() {
		root.Children = append(root.Children, src)
	} else {
		root.Children = append([]container.ID{src}, root.Children...)
	}
	return true
}
