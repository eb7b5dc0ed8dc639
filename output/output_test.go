// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"testing"

	"waytile/container"
	"waytile/internal/geom"
)

func TestRequestWorkspaceFirstCallHasNoAnimation(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	sw := o.RequestWorkspace(1)
	if sw != nil {
		t.Fatal("expected no animation for the first workspace shown")
	}
	if o.ActiveKey != 1 {
		t.Fatalf("expected workspace 1 active, got %v", o.ActiveKey)
	}
}

func TestRequestWorkspaceSameKeyIsNoop(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(1)
	if sw := o.RequestWorkspace(1); sw != nil {
		t.Fatal("expected re-requesting the active workspace to no-op")
	}
}

func TestRequestWorkspaceComputesStripOffsets(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(1)
	sw := o.RequestWorkspace(2)
	if sw == nil {
		t.Fatal("expected a switch animation request")
	}
	if sw.SrcOffset.X != 0 {
		t.Errorf("src offset: got %d, want 0", sw.SrcOffset.X)
	}
	if sw.DstOffset.X != 1280 {
		t.Errorf("dst offset: got %d, want 1280", sw.DstOffset.X)
	}
}

func TestPinnedFloatTransfersOnSwitch(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(1)
	ws1 := o.Workspaces[1]
	id := ws1.AddFloating("popup", geom.Rect{X: 0, Y: 0, W: 100, H: 100})
	c, _ := ws1.Arena.Get(id)
	c.SetPinned(true)

	o.RequestWorkspace(2)
	ws2 := o.Workspaces[2]
	if len(ws2.Floating) != 1 {
		t.Fatal("expected the pinned float to transfer to workspace 2")
	}
	if len(ws1.Floating) != 0 {
		t.Fatal("expected workspace 1 to no longer list the float")
	}
}

func TestEmptyNonPinnedWorkspaceIsDestroyedAfterSwitch(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(3)
	o.RequestWorkspace(4)
	o.FinishSwitch(4)
	if _, ok := o.Workspaces[3]; ok {
		t.Fatal("expected empty workspace 3 to be destroyed")
	}
}

func TestWorkspaceOneSurvivesEmptyAfterSwitch(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(1)
	o.RequestWorkspace(2)
	o.FinishSwitch(2)
	if _, ok := o.Workspaces[1]; !ok {
		t.Fatal("expected pinned-empty workspace 1 to survive")
	}
}

func TestAddShellRegistersOutsideAnyWorkspace(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	rect := geom.Rect{X: 0, Y: 0, W: 1280, H: 32}
	id := o.AddShell("panel", rect)

	c, ok := o.ShellArena.Get(id)
	if !ok || c.Kind != container.KindShell {
		t.Fatalf("expected a Shell container, got %+v", c)
	}
	if c.LogicalArea != rect || c.VisibleArea != rect {
		t.Fatalf("expected logical and visible area to both be the toolkit rect, got %+v/%+v", c.LogicalArea, c.VisibleArea)
	}
	if len(o.Shells) != 1 {
		t.Fatalf("expected 1 registered shell, got %d", len(o.Shells))
	}
}

func TestRemoveShellByWindowUnregisters(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.AddShell("panel", geom.Rect{W: 1280, H: 32})

	if !o.RemoveShellByWindow("panel") {
		t.Fatal("expected RemoveShellByWindow to find and remove the panel")
	}
	if len(o.Shells) != 0 {
		t.Fatalf("expected 0 registered shells after removal, got %d", len(o.Shells))
	}
	if o.RemoveShellByWindow("panel") {
		t.Fatal("expected a second removal to report false")
	}
}

func TestSelectOnActiveRoutesToActiveWorkspaceTree(t *testing.T) {
	o := New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	o.RequestWorkspace(1)
	ws := o.Workspaces[1]
	ws.InsertTiled("win1", container.SplitHorizontal)
	ws.InsertTiled("win2", container.SplitHorizontal)
	ws.Layout(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})

	if !o.SelectOnActive(SelectLeft) {
		t.Fatal("expected select left to find win1")
	}
}
