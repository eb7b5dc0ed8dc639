// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/insert.go
// Summary: Window insertion and split-direction promotion (spec.md §4.B).

package tree

import (
	"waytile/container"
	"waytile/internal/geom"
)

// Insert places a new Leaf for win into the tree, next to the currently
// active Leaf (or as the sole root if the tree is empty), and makes it the
// new active Leaf. dir is the split direction to use if a new root Parent
// must be created (the tree had exactly one container before this call).
func (t *Tree) Insert(win container.WindowID, dir container.SplitDirection) container.ID {
	leaf := t.Arena.New(container.KindLeaf)
	leaf.Window = win

	if t.Root == 0 {
		t.Root = leaf.ID
		t.ActiveLeaf = leaf.ID
		return leaf.ID
	}

	parent := t.insertionParent(dir)
	idx := len(parent.Children)
	if t.ActiveLeaf != 0 {
		if i := indexIn(parent, t.ActiveLeaf); i >= 0 {
			idx = i + 1
		}
	}

	oldExtents := make(map[container.ID]int, len(parent.Children))
	horizontal := parent.Split == container.SplitHorizontal
	for _, id := range parent.Children {
		oldExtents[id] = t.extentOf(id, horizontal)
	}

	leaf.Parent = parent.ID
	parent.Children = append(parent.Children, 0)
	copy(parent.Children[idx+1:], parent.Children[idx:])
	parent.Children[idx] = leaf.ID

	t.redistributeInsert(parent, leaf.ID, oldExtents)

	t.ActiveLeaf = leaf.ID
	return leaf.ID
}

func (t *Tree) extentOf(id container.ID, horizontal bool) int {
	c, ok := t.get(id)
	if !ok {
		return 0
	}
	if horizontal {
		return c.LogicalArea.W
	}
	return c.LogicalArea.H
}

// redistributeInsert implements §4.B's insertion share formula: the new
// child gets floor(extent/(n+1)) of the parent's main-axis extent, and each
// existing child gives up a proportional slice of that, with the final
// existing child absorbing whatever rounding slack is left so the total
// still sums exactly to the parent's extent.
func (t *Tree) redistributeInsert(parent *container.Container, newChild container.ID, oldExtents map[container.ID]int) {
	area := parent.LogicalArea
	if parent.Split == container.SplitStacked || parent.Split == container.SplitTabbed {
		for _, id := range parent.Children {
			t.layoutNode(id, area)
		}
		return
	}

	horizontal := parent.Split == container.SplitHorizontal
	totalExtent := area.W
	if !horizontal {
		totalExtent = area.H
	}
	n := len(parent.Children)
	newShare := totalExtent / n
	remaining := totalExtent - newShare

	oldTotal := 0
	numOld := 0
	lastOld := container.ID(0)
	for _, id := range parent.Children {
		if id == newChild {
			continue
		}
		oldTotal += oldExtents[id]
		numOld++
		lastOld = id
	}

	shares := make(map[container.ID]int, n)
	oldUsed := 0
	for _, id := range parent.Children {
		switch {
		case id == newChild:
			shares[id] = newShare
		case id == lastOld:
			shares[id] = remaining - oldUsed
		case oldTotal > 0:
			s := int(float64(oldExtents[id]) / float64(oldTotal) * float64(remaining))
			shares[id] = s
			oldUsed += s
		default:
			// No prior extent data to weight by (e.g. inserting before the
			// tree has ever been laid out): split the old children evenly.
			s := remaining / numOld
			shares[id] = s
			oldUsed += s
		}
	}

	pos := area.X
	if !horizontal {
		pos = area.Y
	}
	for _, id := range parent.Children {
		var r geom.Rect
		if horizontal {
			r = geom.Rect{X: pos, Y: area.Y, W: shares[id], H: area.H}
		} else {
			r = geom.Rect{X: area.X, Y: pos, W: area.W, H: shares[id]}
		}
		t.layoutNode(id, r)
		pos += shares[id]
	}
}

// insertionParent returns the Parent that a new window should be inserted
// into: the active Leaf's parent, or a freshly created root Parent if the
// tree's root is currently a bare Leaf with no Parent wrapper.
func (t *Tree) insertionParent(dir container.SplitDirection) *container.Container {
	if t.ActiveLeaf != 0 {
		if p := t.parentOf(t.ActiveLeaf); p != nil {
			return p
		}
		// ActiveLeaf has no parent: it IS the root. Wrap it.
		return t.wrapRoot(dir)
	}

	root, ok := t.get(t.Root)
	if !ok {
		return nil
	}
	if root.Kind == container.KindParent {
		return root
	}
	return t.wrapRoot(dir)
}

// wrapRoot promotes a bare root Leaf into a new root Parent of the given
// direction, with the old root as its sole child, and returns the new
// Parent.
func (t *Tree) wrapRoot(dir container.SplitDirection) *container.Container {
	old, ok := t.get(t.Root)
	if !ok {
		return nil
	}
	np := t.Arena.New(container.KindParent)
	np.Split = dir
	np.DefaultSplit = dir
	np.LogicalArea = old.LogicalArea
	np.Children = []container.ID{old.ID}
	old.Parent = np.ID
	t.Root = np.ID
	return np
}

// RequestSplit implements the split-promotion half of §4.B: if leaf sits
// under a Parent whose direction differs from dir and has siblings, a new
// Parent of direction dir is spliced in between, with leaf as its sole
// child. If leaf is alone (no siblings, or it is the bare root), its
// effective direction is simply recorded for the next insertion instead.
func (t *Tree) RequestSplit(leaf container.ID, dir container.SplitDirection) bool {
	c, ok := t.get(leaf)
	if !ok || c.Kind != container.KindLeaf {
		return false
	}

	parent := t.parentOf(leaf)
	if parent == nil {
		t.DefaultSplit = dir
		return true
	}
	if parent.Split == dir {
		return true
	}
	if len(parent.Children) == 1 {
		parent.Split = dir
		parent.DefaultSplit = dir
		return true
	}

	idx := indexIn(parent, leaf)
	if idx < 0 {
		return false
	}

	np := t.Arena.New(container.KindParent)
	np.Split = dir
	np.DefaultSplit = dir
	np.Parent = parent.ID
	np.LogicalArea = c.LogicalArea
	np.Children = []container.ID{leaf}
	c.Parent = np.ID

	parent.Children[idx] = np.ID
	return true
}
