// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package container

import (
	"testing"

	"waytile/internal/geom"
)

func TestArenaNewAssignsStableIDs(t *testing.T) {
	a := NewArena()
	c1 := a.New(KindLeaf)
	c2 := a.New(KindLeaf)
	if c1.ID == c2.ID {
		t.Fatalf("expected distinct IDs, got %v and %v", c1.ID, c2.ID)
	}
	got, ok := a.Get(c1.ID)
	if !ok || got != c1 {
		t.Fatalf("Get did not return the same container")
	}
}

func TestArenaRemoveAndExists(t *testing.T) {
	a := NewArena()
	c := a.New(KindLeaf)
	if !a.Exists(c.ID) {
		t.Fatal("expected container to exist")
	}
	a.Remove(c.ID)
	if a.Exists(c.ID) {
		t.Fatal("expected container to be gone")
	}
	if _, ok := a.Get(c.ID); ok {
		t.Fatal("Get should fail after removal")
	}
}

func TestSweepGroupDropsExpiredMembers(t *testing.T) {
	a := NewArena()
	l1 := a.New(KindLeaf)
	l2 := a.New(KindLeaf)
	g := a.New(KindGroup)
	g.Members = []ID{l1.ID, l2.ID}

	a.Remove(l1.ID)
	live := a.SweepGroup(g)

	if len(live) != 1 || live[0] != l2.ID {
		t.Fatalf("expected only l2 to survive, got %v", live)
	}
}

func TestGroupToggleFullscreenBroadcastsToLiveMembers(t *testing.T) {
	a := NewArena()
	l1 := a.New(KindLeaf)
	l2 := a.New(KindLeaf)
	l3 := a.New(KindLeaf)
	g := a.New(KindGroup)
	g.Members = []ID{l1.ID, l2.ID, l3.ID}

	a.Remove(l3.ID)

	if !a.GroupToggleFullscreen(g) {
		t.Fatal("expected the broadcast to succeed for the two surviving Leaf members")
	}
	if l1.State != StateFullscreen || l2.State != StateFullscreen {
		t.Fatalf("expected both surviving members to be fullscreen, got %v and %v", l1.State, l2.State)
	}
	if len(g.Members) != 2 {
		t.Fatalf("expected the expired member to be swept, got %v", g.Members)
	}
}

func TestGroupToggleFullscreenRejectsNonGroup(t *testing.T) {
	a := NewArena()
	leaf := a.New(KindLeaf)
	if a.GroupToggleFullscreen(leaf) {
		t.Fatal("expected a non-Group container to reject the broadcast")
	}
}

func TestToggleFullscreenRoundTrip(t *testing.T) {
	a := NewArena()
	leaf := a.New(KindLeaf)
	original := geom.Rect{X: 10, Y: 20, W: 300, H: 400}
	leaf.SetLogicalArea(original)

	if !leaf.ToggleFullscreen() {
		t.Fatal("expected fullscreen toggle to succeed on a Leaf")
	}
	if leaf.State != StateFullscreen {
		t.Fatal("expected Leaf to be fullscreen")
	}

	// The tree would draw it at output extent, but the tree-position area
	// is preserved for restore (spec.md §3 invariant 4).
	if leaf.LogicalArea != original {
		t.Fatal("entering fullscreen must not mutate the saved logical area")
	}

	if !leaf.ToggleFullscreen() {
		t.Fatal("expected un-fullscreen to succeed")
	}
	if leaf.State != StateRestored || leaf.LogicalArea != original {
		t.Fatalf("expected exact restore, got state=%v area=%v", leaf.State, leaf.LogicalArea)
	}
}

func TestToggleFullscreenRejectsNonLeaf(t *testing.T) {
	a := NewArena()
	p := a.New(KindParent)
	if p.ToggleFullscreen() {
		t.Fatal("expected Parent to reject toggle_fullscreen")
	}
}

func TestPinnedOnlyValidOnFloatingWindow(t *testing.T) {
	a := NewArena()
	fw := a.New(KindFloatingWindow)
	if !fw.SetPinned(true) || !fw.Pinned {
		t.Fatal("expected FloatingWindow to accept pinned(true)")
	}

	leaf := a.New(KindLeaf)
	if leaf.SetPinned(true) {
		t.Fatal("expected tiled Leaf to reject pinned()")
	}
}

func TestApplyVisibleAreaSubtractsHalfGapOnSharedEdges(t *testing.T) {
	c := &Container{LogicalArea: geom.Rect{X: 0, Y: 0, W: 100, H: 100}}
	g := Gaps{InnerX: 10, InnerY: 10, OuterX: 5, OuterY: 5}
	// Has a neighbor to the right only.
	c.ApplyVisibleArea(g, [4]bool{false, false, true, false})
	want := geom.Rect{X: 5, Y: 5, W: 100 - 5 - 5, H: 100 - 5 - 5}
	if c.VisibleArea != want {
		t.Fatalf("got %+v, want %+v", c.VisibleArea, want)
	}
}

func TestMovableByKind(t *testing.T) {
	a := NewArena()
	cases := []struct {
		kind Kind
		want bool
	}{
		{KindLeaf, true},
		{KindFloatingWindow, true},
		{KindFloatingTree, true},
		{KindParent, false},
		{KindGroup, false},
		{KindShell, false},
	}
	for _, tc := range cases {
		c := a.New(tc.kind)
		if got := c.Movable(); got != tc.want {
			t.Errorf("Kind %v: Movable() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
