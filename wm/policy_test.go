// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package wm

import (
	"testing"

	"waytile/container"
	"waytile/internal/geom"
	"waytile/ipc"
	"waytile/output"
	"waytile/windowctl"
)

func newTestPolicy() (*Policy, *output.Output) {
	m := NewManager()
	o := output.New(geom.Rect{X: 0, Y: 0, W: 1280, H: 720})
	m.AddOutput(o)
	m.FocusWorkspace(1)
	rec := windowctl.NewRecorder()
	p := NewPolicy(m, rec)
	p.FocusOutput(o)
	return p, o
}

func TestOnNewWindowInsertsTiledLeaf(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")

	ws := o.Active()
	if ws.Tree.Empty() {
		t.Fatal("expected the tree to have windows after OnNewWindow")
	}
}

func TestOnWindowClosedRemovesLeaf(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")
	p.OnWindowClosed("win1")

	ws := o.Active()
	found := false
	ws.Tree.Traverse(func(c *container.Container) {
		if c.Kind == container.KindLeaf && c.Window == "win1" {
			found = true
		}
	})
	if found {
		t.Fatal("expected win1's leaf to be gone after OnWindowClosed")
	}
}

func TestFocusDirectionRoutesToTreeSelect(t *testing.T) {
	p, _ := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")

	if !p.FocusDirection("left") {
		t.Fatal("expected focus left to find a neighboring leaf")
	}
}

func TestToggleFloatDetachesActiveLeafAndReturnsItToTheTree(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")

	ws := o.Active()
	if !p.ToggleFloat() {
		t.Fatal("expected ToggleFloat to float the active window")
	}
	if len(ws.Floating) != 1 {
		t.Fatalf("expected 1 floating window, got %d", len(ws.Floating))
	}
	if !ws.Tree.Empty() {
		t.Fatal("expected win1's leaf to be gone from the tree once floated")
	}

	if !p.ToggleFloat() {
		t.Fatal("expected a second ToggleFloat to re-tile the floating window")
	}
	if len(ws.Floating) != 0 {
		t.Fatalf("expected 0 floating windows after toggling back, got %d", len(ws.Floating))
	}
	if ws.Tree.Empty() {
		t.Fatal("expected win1 to be back in the tree after the second toggle")
	}
}

func TestTogglePinnedFlipsTheActiveFloatingWindow(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.ToggleFloat()

	ws := o.Active()
	id := ws.Floating[len(ws.Floating)-1]

	if !p.TogglePinned() {
		t.Fatal("expected TogglePinned to succeed on a floating window")
	}
	c, _ := ws.Arena.Get(id)
	if !c.Pinned {
		t.Fatal("expected the floating window to be pinned")
	}
	p.TogglePinned()
	c, _ = ws.Arena.Get(id)
	if c.Pinned {
		t.Fatal("expected a second TogglePinned to unpin")
	}
}

func TestRunCommandFloatingTogglesAndRespectsEnableDisable(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	ws := o.Active()

	if err := p.RunCommand(ipc.Command{Keyword: "floating", Args: []string{"enable"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Floating) != 1 {
		t.Fatalf("expected floating enable to float the active window, got %d floating", len(ws.Floating))
	}

	// enable again should be a no-op: still exactly one floating window.
	if err := p.RunCommand(ipc.Command{Keyword: "floating", Args: []string{"enable"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Floating) != 1 {
		t.Fatalf("expected floating enable on an already-floating window to be a no-op, got %d floating", len(ws.Floating))
	}

	if err := p.RunCommand(ipc.Command{Keyword: "floating", Args: []string{"disable"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Floating) != 0 {
		t.Fatalf("expected floating disable to re-tile the window, got %d floating", len(ws.Floating))
	}
}

func TestOnNewShellWindowRegistersOnOutputNotWorkspace(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewShellWindow("panel", geom.Rect{W: 1280, H: 32})

	if len(o.Shells) != 1 {
		t.Fatalf("expected 1 shell on the output, got %d", len(o.Shells))
	}
	ws := o.Active()
	found := false
	ws.Tree.Traverse(func(c *container.Container) {
		if c.Window == "panel" {
			found = true
		}
	})
	if found {
		t.Fatal("expected the panel to never enter the tiling tree")
	}

	if !p.OnShellWindowClosed("panel") {
		t.Fatal("expected OnShellWindowClosed to find and remove the panel")
	}
	if len(o.Shells) != 0 {
		t.Fatalf("expected 0 shells after close, got %d", len(o.Shells))
	}
}

func TestRunCommandFullscreenBroadcastsAcrossCriteriaGroup(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")
	ws := o.Active()

	err := p.RunCommand(
		ipc.Command{Keyword: "fullscreen", Args: []string{"toggle"}},
		[]ipc.Criterion{{Key: "all"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	ws.Tree.Traverse(func(c *container.Container) {
		if c.Kind == container.KindLeaf && c.State == container.StateFullscreen {
			count++
		}
	})
	if count != 2 {
		t.Fatalf("expected both windows to be fullscreen after an [all] broadcast, got %d", count)
	}
}

func TestRunCommandFloatingWithCriteriaFloatsEveryTiledWindow(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")
	ws := o.Active()

	err := p.RunCommand(
		ipc.Command{Keyword: "floating", Args: []string{"enable"}},
		[]ipc.Criterion{{Key: "tiling"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ws.Floating) != 2 {
		t.Fatalf("expected both tiled windows to float, got %d floating", len(ws.Floating))
	}
	if !ws.Tree.Empty() {
		t.Fatal("expected the tree to be empty after floating every tiled window")
	}
}

func TestRunCommandSplitOnFloatingWindowPromotesFloatingTree(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.ToggleFloat()
	ws := o.Active()

	if err := p.RunCommand(ipc.Command{Keyword: "split", Args: []string{"v"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ws.Floating) != 1 {
		t.Fatalf("expected exactly 1 floating container after promotion, got %d", len(ws.Floating))
	}
	id := ws.Floating[0]
	c, ok := ws.Arena.Get(id)
	if !ok || c.Kind != container.KindFloatingTree {
		t.Fatalf("expected the floating window to be promoted to a FloatingTree, got %+v", c)
	}
	if c.NestedRoot == 0 {
		t.Fatal("expected the FloatingTree to carry the original window as its nested root")
	}
}

func TestRunCommandSplitOnFloatingTreeInsertsNestedLeaf(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.ToggleFloat()
	ws := o.Active()

	if err := p.RunCommand(ipc.Command{Keyword: "split", Args: []string{"v"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := ws.Floating[0]
	if !ws.SplitFloatingTree(id, "win2", container.SplitVertical) {
		t.Fatal("expected a direct second split to succeed once the FloatingTree exists")
	}

	// A further `split` command while this FloatingTree is the most
	// recently floated container re-splits its active nested leaf rather
	// than erroring or being ignored.
	if err := p.RunCommand(ipc.Command{Keyword: "split", Args: []string{"h"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := ws.Arena.Get(id)
	if c.Kind != container.KindFloatingTree {
		t.Fatalf("expected the container to remain a FloatingTree, got %v", c.Kind)
	}
}

func TestRunCommandSplitPromotesNestedParent(t *testing.T) {
	p, o := newTestPolicy()
	p.OnNewWindow("win1")
	p.OnNewWindow("win2")

	ws := o.Active()
	leaf := ws.Tree.ActiveLeaf
	c, _ := ws.Tree.Arena.Get(leaf)
	beforeParent := c.Parent

	if err := p.RunCommand(ipc.Command{Keyword: "split", Args: []string{"v"}}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ = ws.Tree.Arena.Get(leaf)
	if c.Parent == beforeParent {
		t.Fatal("expected split v on a leaf with a sibling to promote a new vertical parent")
	}
}
