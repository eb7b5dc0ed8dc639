// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"testing"

	"waytile/container"
	"waytile/internal/geom"
)

func TestEmptyReportsNoTiledOrFloating(t *testing.T) {
	w := New(1)
	if !w.Empty() {
		t.Fatal("fresh workspace should be empty")
	}
	w.InsertTiled("win1", container.SplitHorizontal)
	if w.Empty() {
		t.Fatal("workspace with a tiled leaf should not be empty")
	}
}

func TestHideShowRoundTripsNonPinnedWindows(t *testing.T) {
	w := New(1)
	leaf := w.InsertTiled("win1", container.SplitHorizontal)
	w.Layout(geom.Rect{X: 0, Y: 0, W: 800, H: 600})

	before, _ := w.Arena.Get(leaf)
	beforeArea := before.LogicalArea

	w.Hide()
	if before.State != container.StateHidden {
		t.Fatal("expected leaf to be hidden")
	}

	w.Show()
	if before.State != container.StateRestored || before.LogicalArea != beforeArea {
		t.Fatalf("expected exact restore, got state=%v area=%v", before.State, before.LogicalArea)
	}
}

func TestPinnedFloatsSurviveHide(t *testing.T) {
	w := New(1)
	id := w.AddFloating("popup", geom.Rect{X: 10, Y: 10, W: 200, H: 200})
	c, _ := w.Arena.Get(id)
	c.SetPinned(true)

	w.Hide()
	if c.State == container.StateHidden {
		t.Fatal("pinned float should not be hidden")
	}
}

func TestTransferFloatMovesOwnership(t *testing.T) {
	src := New(1)
	dst := New(2)
	id := src.AddFloating("popup", geom.Rect{X: 0, Y: 0, W: 100, H: 100})

	if !src.TransferFloat(id, dst) {
		t.Fatal("expected transfer to succeed")
	}
	if len(src.Floating) != 0 {
		t.Fatal("source workspace should no longer list the float")
	}
	if len(dst.Floating) != 1 || dst.Floating[0] != id {
		t.Fatal("destination workspace should now list the float")
	}
	if _, ok := dst.Arena.Get(id); !ok {
		t.Fatal("destination arena should own the container")
	}
}

func TestNewFloatingTreeSeedsOneNestedLeaf(t *testing.T) {
	w := New(1)
	id := w.NewFloatingTree("win1", container.SplitVertical)

	c, ok := w.Arena.Get(id)
	if !ok || c.Kind != container.KindFloatingTree {
		t.Fatalf("expected a FloatingTree container, got %+v", c)
	}
	if c.NestedRoot == 0 || c.NestedRoot != c.NestedActive {
		t.Fatalf("expected the sole seed window to be both root and active, got root=%v active=%v", c.NestedRoot, c.NestedActive)
	}
	root, ok := w.Arena.Get(c.NestedRoot)
	if !ok || root.Kind != container.KindLeaf || root.Window != "win1" {
		t.Fatalf("expected the nested root to be win1's leaf, got %+v", root)
	}
	if len(w.Floating) != 1 || w.Floating[0] != id {
		t.Fatal("expected the FloatingTree to be registered in the floating list")
	}
}

func TestSplitFloatingTreeInsertsSecondNestedLeaf(t *testing.T) {
	w := New(1)
	id := w.NewFloatingTree("win1", container.SplitVertical)
	c, _ := w.Arena.Get(id)
	c.SetLogicalArea(geom.Rect{X: 100, Y: 100, W: 640, H: 480})

	if !w.SplitFloatingTree(id, "win2", container.SplitVertical) {
		t.Fatal("expected the second window to split into the FloatingTree")
	}

	c, _ = w.Arena.Get(id)
	parent, ok := w.Arena.Get(c.NestedRoot)
	if !ok || parent.Kind != container.KindParent || len(parent.Children) != 2 {
		t.Fatalf("expected a 2-child nested parent, got %+v", parent)
	}
	var sawWin1, sawWin2 bool
	for _, childID := range parent.Children {
		child, _ := w.Arena.Get(childID)
		if child.Window == "win1" {
			sawWin1 = true
		}
		if child.Window == "win2" {
			sawWin2 = true
		}
		if child.LogicalArea.H == 0 {
			t.Fatalf("expected the nested layout pass to size %v, got zero height", child.Window)
		}
	}
	if !sawWin1 || !sawWin2 {
		t.Fatal("expected both windows to be nested leaves")
	}
}

func TestSplitFloatingTreeRejectsNonFloatingTree(t *testing.T) {
	w := New(1)
	id := w.AddFloating("popup", geom.Rect{W: 100, H: 100})
	if w.SplitFloatingTree(id, "win2", container.SplitVertical) {
		t.Fatal("expected SplitFloatingTree to reject a plain FloatingWindow")
	}
}
