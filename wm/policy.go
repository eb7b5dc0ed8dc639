// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/policy.go
// Summary: Policy — the top-level event sink (spec.md §2 component F):
// receives toolkit window-lifecycle callbacks and user intents, and routes
// each to the right Output/Workspace/Tree. Also implements
// ipc.CommandTarget so the IPC layer can dispatch parsed command scripts
// without depending on this package's concrete types.
// Notes: Grounded on framegrace-texelation/texel/desktop_engine_core.go's
// DesktopEngine (the single struct toolkit callbacks and key bindings both
// call into, which then delegates to a Tree/Workspace), adapted to route
// across multiple Outputs via wm.Manager instead of the teacher's one
// implicit desktop.

package wm

import (
	"fmt"

	"waytile/animator"
	"waytile/config"
	"waytile/container"
	"waytile/internal/geom"
	"waytile/ipc"
	"waytile/output"
	"waytile/tree"
	"waytile/windowctl"
	"waytile/workspace"
)

// Policy is the single entry point every toolkit callback and IPC command
// ultimately reaches the tiling core through.
type Policy struct {
	Manager    *Manager
	Controller windowctl.WindowController

	// Animator and Animations drive SwitchWorkspace's slide (spec.md
	// §4.C/§4.D). Both are optional: a nil Animator (the default for
	// tests) completes workspace switches synchronously.
	Animator   *animator.Animator
	Animations config.AnimationsConfig

	// Bindings resolves a raw (modifier, keycode) chord delivered by
	// HandleKey to a command (spec.md §6 "default key commands",
	// "custom commands"). Zero value means no key is bound to anything.
	Bindings config.BindingsConfig

	// focused tracks the Output currently holding input focus, so
	// direction-only intents (focus left, split, resize) know which tree
	// to act on without an explicit workspace key.
	focused *output.Output

	// resizeMode tracks whether CmdToggleResize's "resize mode" is active;
	// CmdResize{Up,Down,Left,Right} only resize while it is (spec.md §6
	// "ToggleResize, Resize{Up,Down,Left,Right}" — i3's resize submode,
	// flattened into a single sticky toggle since this core has no modal
	// keybinding table of its own).
	resizeMode bool
}

// resizeStepPixels is the delta a single Resize{Up,Down,Left,Right}
// keybinding applies while resize mode is active.
const resizeStepPixels = 20

// NewPolicy creates a Policy routing through manager and controller.
func NewPolicy(manager *Manager, controller windowctl.WindowController) *Policy {
	return &Policy{Manager: manager, Controller: controller}
}

func (p *Policy) activeOutput() *output.Output {
	if p.focused != nil {
		return p.focused
	}
	outs := p.Manager.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[0]
}

func (p *Policy) activeWorkspace() *workspace.Workspace {
	o := p.activeOutput()
	if o == nil {
		return nil
	}
	return o.Active()
}

// FocusOutput records which Output subsequent direction-only intents act
// against, e.g. when the toolkit reports pointer entry onto a different
// monitor.
func (p *Policy) FocusOutput(o *output.Output) {
	p.focused = o
}

// --- Toolkit lifecycle callbacks (spec.md §3 Lifecycles) ---

// OnNewWindow inserts win as a new tiled Leaf under the active workspace's
// tree, per spec.md §4.B insertion.
func (p *Policy) OnNewWindow(win container.WindowID) container.ID {
	ws := p.activeWorkspace()
	if ws == nil {
		return 0
	}
	dir := ws.Tree.DefaultSplit
	id := ws.InsertTiled(win, dir)
	ws.Layout(p.activeOutput().Geometry)
	if p.Controller != nil {
		_ = p.Controller.Open(win)
	}
	return id
}

// OnWindowClosed removes win's Leaf from whatever tree it lives in,
// triggering invariant-2 collapse (spec.md §3 Lifecycles: Leaf destruction).
func (p *Policy) OnWindowClosed(win container.WindowID) {
	for _, o := range p.Manager.Outputs() {
		for _, ws := range o.Workspaces {
			if leaf := findLeafByWindow(ws.Tree, win); leaf != 0 {
				ws.Tree.Close(leaf)
			} else if !ws.RemoveFloatingByWindow(win) {
				continue
			}
			ws.Layout(o.Geometry)
			return
		}
	}
}

// OnNewShellWindow registers win as a Shell container (spec.md §3: "one
// window handle for panels/layers that must not participate in tiling") at
// its toolkit-reported rect, on the active Output rather than any one
// Workspace — it is never inserted into a tiling tree and never touched by
// a layout pass.
func (p *Policy) OnNewShellWindow(win container.WindowID, rect geom.Rect) container.ID {
	o := p.activeOutput()
	if o == nil {
		return 0
	}
	return o.AddShell(win, rect)
}

// OnShellWindowClosed unregisters win's Shell container from the active
// Output, if any.
func (p *Policy) OnShellWindowClosed(win container.WindowID) bool {
	o := p.activeOutput()
	if o == nil {
		return false
	}
	return o.RemoveShellByWindow(win)
}

// OnModifyRequest handles a toolkit-reported geometry change for win. Tile
// geometry is authoritative (spec.md §4.B "Failure semantics": a modify
// request whose size disagrees with the tile's computed size is consumed),
// so this always re-asserts the tree's computed rectangle rather than
// accepting the toolkit's proposed rect.
func (p *Policy) OnModifyRequest(win container.WindowID, proposed geom.Rect) {
	ws := p.activeWorkspace()
	if ws == nil || p.Controller == nil {
		return
	}
	leaf := findLeafByWindow(ws.Tree, win)
	if leaf == 0 {
		return
	}
	c, ok := ws.Tree.Arena.Get(leaf)
	if !ok {
		return
	}
	_ = p.Controller.SetRectangle(win, windowctl.Rect{
		X: c.LogicalArea.X, Y: c.LogicalArea.Y, W: c.LogicalArea.W, H: c.LogicalArea.H,
	})
}

func findLeafByWindow(t *tree.Tree, win container.WindowID) container.ID {
	var found container.ID
	t.Traverse(func(c *container.Container) {
		if c.Kind == container.KindLeaf && c.Window == win {
			found = c.ID
		}
	})
	return found
}

// --- User intents ---

// Select moves focus in direction d within the active workspace's tree.
func (p *Policy) Select(d tree.Direction) bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	return ws.Tree.Select(d)
}

// Move relocates the active leaf in direction d (spec.md §4.B "Move").
func (p *Policy) Move(d tree.Direction) bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	ok := ws.Tree.Move(ws.Tree.ActiveLeaf, d)
	if ok {
		ws.Layout(p.activeOutput().Geometry)
	}
	return ok
}

// Resize grows the active leaf's extent in direction d by delta pixels.
func (p *Policy) Resize(d tree.Direction, delta int) bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	ok := ws.Tree.Resize(ws.Tree.ActiveLeaf, d, delta)
	if ok {
		ws.Layout(p.activeOutput().Geometry)
	}
	return ok
}

// ToggleFullscreen toggles the active leaf's fullscreen state.
func (p *Policy) ToggleFullscreen() bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	leaf := ws.Tree.ActiveLeaf
	c, ok := ws.Tree.Arena.Get(leaf)
	if !ok {
		return false
	}
	return ws.Tree.SetFullscreen(leaf, c.State != container.StateFullscreen)
}

// SwitchWorkspace routes a workspace-switch intent through the Manager,
// returning the animation request (if any) for the caller to submit to an
// Animator.
func (p *Policy) SwitchWorkspace(k workspace.Key) *output.Switch {
	sw := p.Manager.FocusWorkspace(k)
	p.focused = p.Manager.OutputFor(k)
	if p.focused != nil {
		p.focused.LayoutActive()
	}
	AnimateSwitch(p.Animator, p.focused, sw, p.Animations.Enabled, p.Animations.WorkspaceSwitch)
	return sw
}

// ToggleFloat implements the spec's toggle-float intent (spec.md §3: one of
// the seven top-level user intents). If the active container is a tiled
// Leaf, it is detached and re-homed as a floating window over its last
// on-screen rectangle; otherwise the most recently added floating window is
// tiled back in. There is no single tracked "focused window" spanning both
// layers, so this mirrors i3's own toggle-floating behavior of acting on
// whichever of the two the input focus currently sits in.
func (p *Policy) ToggleFloat() bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	if leaf := ws.Tree.ActiveLeaf; leaf != 0 {
		return p.toggleFloatID(ws, leaf)
	}
	if len(ws.Floating) == 0 {
		return false
	}
	return p.toggleFloatID(ws, ws.Floating[len(ws.Floating)-1])
}

// toggleFloatID flips one container between tiled and floating, given
// either a tiled Leaf ID or a FloatingWindow ID. Shared by ToggleFloat (the
// single-window key binding) and broadcastFloating's criteria-matched fan-out.
func (p *Policy) toggleFloatID(ws *workspace.Workspace, id container.ID) bool {
	c, ok := ws.Arena.Get(id)
	if !ok {
		return false
	}
	switch c.Kind {
	case container.KindLeaf:
		win, rect := c.Window, c.LogicalArea
		if !ws.Tree.Close(id) {
			return false
		}
		ws.AddFloating(win, rect)
	case container.KindFloatingWindow:
		win := c.Window
		ws.RemoveFloating(id)
		ws.InsertTiled(win, ws.Tree.DefaultSplit)
	default:
		return false
	}
	ws.Layout(p.activeOutput().Geometry)
	return true
}

// TogglePinned flips the pinned flag on the most recently added floating
// window, implementing CmdTogglePinnedToWorkspace (spec.md §4.C: pinned
// floats transfer on workspace switch instead of being hidden).
func (p *Policy) TogglePinned() bool {
	ws := p.activeWorkspace()
	if ws == nil || len(ws.Floating) == 0 {
		return false
	}
	id := ws.Floating[len(ws.Floating)-1]
	c, ok := ws.Arena.Get(id)
	if !ok {
		return false
	}
	return c.SetPinned(!c.Pinned)
}

func (p *Policy) closeActiveWindow() bool {
	ws := p.activeWorkspace()
	if ws == nil || p.Controller == nil {
		return false
	}
	leaf := ws.Tree.ActiveLeaf
	c, ok := ws.Tree.Arena.Get(leaf)
	if !ok {
		return false
	}
	return p.Controller.Close(c.Window) == nil
}

func (p *Policy) resizeStep(d tree.Direction) bool {
	if !p.resizeMode {
		return false
	}
	return p.Resize(d, resizeStepPixels)
}

func (p *Policy) moveActiveToWorkspace(k workspace.Key) bool {
	src := p.activeWorkspace()
	srcOutput := p.activeOutput()
	if src == nil || srcOutput == nil {
		return false
	}
	leaf := src.Tree.ActiveLeaf
	c, ok := src.Tree.Arena.Get(leaf)
	if !ok {
		return false
	}
	win := c.Window
	if !src.Tree.Close(leaf) {
		return false
	}
	src.Layout(srcOutput.Geometry)

	dstOutput := p.Manager.OutputFor(k)
	dst := dstOutput.Workspace(k)
	dst.InsertTiled(win, dst.Tree.DefaultSplit)
	if dst == dstOutput.Active() {
		dst.Layout(dstOutput.Geometry)
	}
	return true
}

// HandleKey resolves a physical (modifier, keycode) chord against
// p.Bindings and executes the matching command, implementing the keyboard
// entry point spec.md §6 describes ("default key commands... each bound to
// (keyboard action, modifier bitset, keycode)", "custom commands"). Custom
// bindings are checked first, mirroring the priority a user-authored
// override would expect over a built-in default. Returns false if no
// binding matches the chord or the matched command could not run.
func (p *Policy) HandleKey(modifier config.ModifierMask, keycode uint32) bool {
	for _, cb := range p.Bindings.Custom {
		if cb.Modifier == modifier && cb.Keycode == keycode {
			for _, r := range ipc.Execute(cb.Command, p) {
				if !r.Success {
					return false
				}
			}
			return true
		}
	}
	for _, kb := range p.Bindings.Defaults {
		if kb.Modifier == modifier && kb.Keycode == keycode {
			return p.runKeyCommand(kb)
		}
	}
	return false
}

func (p *Policy) runKeyCommand(kb config.KeyBinding) bool {
	switch kb.Command {
	case config.CmdSelectLeft:
		return p.Select(tree.DirLeft)
	case config.CmdSelectRight:
		return p.Select(tree.DirRight)
	case config.CmdSelectUp:
		return p.Select(tree.DirUp)
	case config.CmdSelectDown:
		return p.Select(tree.DirDown)
	case config.CmdMoveLeft:
		return p.Move(tree.DirLeft)
	case config.CmdMoveRight:
		return p.Move(tree.DirRight)
	case config.CmdMoveUp:
		return p.Move(tree.DirUp)
	case config.CmdMoveDown:
		return p.Move(tree.DirDown)
	case config.CmdToggleResize:
		p.resizeMode = !p.resizeMode
		return true
	case config.CmdResizeLeft:
		return p.resizeStep(tree.DirLeft)
	case config.CmdResizeRight:
		return p.resizeStep(tree.DirRight)
	case config.CmdResizeUp:
		return p.resizeStep(tree.DirUp)
	case config.CmdResizeDown:
		return p.resizeStep(tree.DirDown)
	case config.CmdRequestHorizontal:
		return p.runSplit(ipc.Command{Keyword: "split", Args: []string{"h"}}) == nil
	case config.CmdRequestVertical:
		return p.runSplit(ipc.Command{Keyword: "split", Args: []string{"v"}}) == nil
	case config.CmdFullscreen:
		return p.ToggleFullscreen()
	case config.CmdToggleFloating:
		return p.ToggleFloat()
	case config.CmdTogglePinnedToWorkspace:
		return p.TogglePinned()
	case config.CmdSelectWorkspace:
		p.SwitchWorkspace(workspace.Key(kb.Workspace))
		return true
	case config.CmdMoveToWorkspace:
		return p.moveActiveToWorkspace(workspace.Key(kb.Workspace))
	case config.CmdQuitActiveWindow:
		return p.closeActiveWindow()
	case config.CmdQuitCompositor, config.CmdTerminal:
		// Process lifecycle (spawning a terminal, exiting the compositor)
		// belongs to the collaborator that owns process launching and
		// session shutdown, out of scope for the layout core (spec.md §1).
		return true
	default:
		return false
	}
}

// --- ipc.CommandTarget ---

var _ ipc.CommandTarget = (*Policy)(nil)

func (p *Policy) FocusDirection(dir string) bool {
	d, ok := parseDirection(dir)
	if !ok {
		return false
	}
	return p.Select(d)
}

// FocusAdjacent implements "focus next"/"focus prev": a walk of insertion
// order within the active Leaf's parent, not the spatial algorithm
// FocusDirection uses (spec.md §4.F, ipc.CommandTarget.FocusAdjacent).
func (p *Policy) FocusAdjacent(next bool) bool {
	ws := p.activeWorkspace()
	if ws == nil {
		return false
	}
	return ws.Tree.SelectAdjacent(next)
}

// RunCommand executes every non-focus command keyword spec.md §4.F
// enumerates. Criteria-based window targeting is minimal: this core tracks
// only the tiling geometry, not window metadata (title/class/instance),
// which belongs to the WindowController collaborator (spec.md §4.E
// InfoFor) — a full criteria matcher lives at the integration layer that
// has access to that metadata. The three metadata-free valueless criteria
// (all/floating/tiling) are matchable here, and fan out through a transient
// Group container (spec.md §3 "Group... used in a temporary way when
// multiple Containers are selected at once").
func (p *Policy) RunCommand(cmd ipc.Command, criteria []ipc.Criterion) error {
	switch cmd.Keyword {
	case "split":
		return p.runSplit(cmd)
	case "layout":
		return p.runLayout(cmd)
	case "move":
		return p.runMove(cmd)
	case "workspace":
		return p.runWorkspace(cmd)
	case "floating":
		return p.runFloating(cmd, criteria)
	case "fullscreen":
		return p.runFullscreen(cmd, criteria)
	case "sticky", "mark", "title_format", "title_window_icon", "border",
		"shm_log", "debug_log", "scratchpad", "nop", "i3_bar", "gaps",
		"input", "exec", "restart", "reload", "exit", "swap":
		// Acknowledged but not implemented by the layout core: these
		// either belong to collaborators out of scope per spec.md §1
		// (process launching, GL renderer hooks) or need window
		// metadata this package doesn't track. They still parse and
		// report success so a script isn't aborted by the remaining,
		// effective commands around them.
		return nil
	default:
		return nil
	}
}

// resolveCriteria resolves the metadata-free valueless criteria (all,
// floating, tiling — spec.md §4.F) against ws's current containers. Any
// other criterion key needs window metadata this core doesn't track, so the
// whole block is rejected (nil) and the caller falls back to "the focused
// window" per i3 semantics.
func resolveCriteria(ws *workspace.Workspace, criteria []ipc.Criterion) []container.ID {
	if len(criteria) == 0 {
		return nil
	}
	var matchAll, matchFloating, matchTiling bool
	for _, c := range criteria {
		switch c.Key {
		case "all":
			matchAll = true
		case "floating":
			matchFloating = true
		case "tiling":
			matchTiling = true
		default:
			return nil
		}
	}
	var ids []container.ID
	if matchAll || matchTiling {
		ws.Tree.Traverse(func(c *container.Container) {
			if c.Kind == container.KindLeaf {
				ids = append(ids, c.ID)
			}
		})
	}
	if matchAll || matchFloating {
		ids = append(ids, ws.Floating...)
	}
	return ids
}

// runFloating implements i3's `floating enable|disable|toggle` (spec.md §3
// "toggle-float"). enable/disable are no-ops when the target is already in
// the requested state; toggle always flips it. A criteria-matched set of
// targets fans out over each matched container instead of just the active
// one.
func (p *Policy) runFloating(cmd ipc.Command, criteria []ipc.Criterion) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	ws := p.activeWorkspace()
	if ws == nil {
		return nil
	}
	mode := cmd.Args[0]
	if ids := resolveCriteria(ws, criteria); ids != nil {
		p.broadcastFloating(ws, mode, ids)
		return nil
	}
	isFloating := ws.Tree.ActiveLeaf == 0
	switch mode {
	case "toggle":
		p.ToggleFloat()
	case "enable":
		if !isFloating {
			p.ToggleFloat()
		}
	case "disable":
		if isFloating {
			p.ToggleFloat()
		}
	}
	return nil
}

// broadcastFloating applies a floating enable/disable/toggle to every
// container in a transient Group built from a criteria match, sweeping the
// Group once up front (spec.md §3 invariant 5) the way
// original_source/container_group_container.cpp loops its member list.
func (p *Policy) broadcastFloating(ws *workspace.Workspace, mode string, ids []container.ID) {
	group := ws.Arena.New(container.KindGroup)
	group.Members = ids
	for _, id := range ws.Arena.SweepGroup(group) {
		c, ok := ws.Arena.Get(id)
		if !ok {
			continue
		}
		switch mode {
		case "toggle":
			p.toggleFloatID(ws, id)
		case "enable":
			if c.Kind == container.KindLeaf {
				p.toggleFloatID(ws, id)
			}
		case "disable":
			if c.Kind == container.KindFloatingWindow {
				p.toggleFloatID(ws, id)
			}
		}
	}
	ws.Arena.Remove(group.ID)
}

// runFullscreen implements i3's `fullscreen enable|disable|toggle`. A
// criteria-matched set of targets AND-reduces ToggleFullscreen across a
// transient Group (spec.md §4.A "Group... broadcasts to its members"); with
// no matchable criteria it falls back to the active leaf.
func (p *Policy) runFullscreen(cmd ipc.Command, criteria []ipc.Criterion) error {
	ws := p.activeWorkspace()
	if ws == nil {
		return nil
	}
	if ids := resolveCriteria(ws, criteria); ids != nil {
		group := ws.Arena.New(container.KindGroup)
		group.Members = ids
		ws.Arena.GroupToggleFullscreen(group)
		ws.Arena.Remove(group.ID)
		return nil
	}
	p.ToggleFullscreen()
	return nil
}

func (p *Policy) runSplit(cmd ipc.Command) error {
	ws := p.activeWorkspace()
	if ws == nil || len(cmd.Args) == 0 {
		return nil
	}
	var dir container.SplitDirection
	switch cmd.Args[0] {
	case "h", "horizontal":
		dir = container.SplitHorizontal
	case "v", "vertical":
		dir = container.SplitVertical
	case "toggle":
		dir = container.SplitVertical
	default:
		return nil
	}
	if leaf := ws.Tree.ActiveLeaf; leaf != 0 {
		ws.Tree.RequestSplit(leaf, dir)
		ws.Layout(p.activeOutput().Geometry)
		return nil
	}
	p.splitActiveFloating(ws, dir)
	return nil
}

// splitActiveFloating extends split to the floating layer (spec.md §3's
// FloatingTree), targeting the most recently floated window — the same
// proxy ToggleFloat uses in the absence of a dedicated focused-float
// pointer. A bare FloatingWindow is promoted into a FloatingTree holding it
// as the sole nested leaf; dir is not kept for a later insertion. An
// existing FloatingTree re-splits its active nested leaf via RequestSplit,
// which changes nothing while that leaf is the tree's only leaf.
func (p *Policy) splitActiveFloating(ws *workspace.Workspace, dir container.SplitDirection) {
	if len(ws.Floating) == 0 {
		return
	}
	id := ws.Floating[len(ws.Floating)-1]
	c, ok := ws.Arena.Get(id)
	if !ok {
		return
	}
	switch c.Kind {
	case container.KindFloatingWindow:
		win, rect := c.Window, c.LogicalArea
		ws.RemoveFloating(id)
		treeID := ws.NewFloatingTree(win, dir)
		tc, _ := ws.Arena.Get(treeID)
		tc.SetLogicalArea(rect)
	case container.KindFloatingTree:
		nested := &tree.Tree{Arena: ws.Arena, Root: c.NestedRoot, ActiveLeaf: c.NestedActive}
		nested.RequestSplit(c.NestedActive, dir)
		c.NestedRoot = nested.Root
	}
}

func (p *Policy) runLayout(cmd ipc.Command) error {
	ws := p.activeWorkspace()
	if ws == nil || len(cmd.Args) == 0 {
		return nil
	}
	leaf := ws.Tree.ActiveLeaf
	c, ok := ws.Tree.Arena.Get(leaf)
	if !ok {
		return nil
	}
	parentID := c.Parent
	parent, ok := ws.Tree.Arena.Get(parentID)
	if !ok {
		return nil
	}
	switch cmd.Args[0] {
	case "stacking":
		parent.Split = container.SplitStacked
	case "tabbed":
		parent.Split = container.SplitTabbed
	case "splith":
		parent.Split = container.SplitHorizontal
	case "splitv":
		parent.Split = container.SplitVertical
	}
	ws.Layout(p.activeOutput().Geometry)
	return nil
}

func (p *Policy) runMove(cmd ipc.Command) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	d, ok := parseDirection(cmd.Args[0])
	if !ok {
		return nil
	}
	p.Move(d)
	return nil
}

func (p *Policy) runWorkspace(cmd ipc.Command) error {
	if len(cmd.Args) == 0 {
		return nil
	}
	var k int
	if _, err := fmt.Sscanf(cmd.Args[0], "%d", &k); err != nil {
		return nil
	}
	p.SwitchWorkspace(workspace.Key(k))
	return nil
}

func parseDirection(s string) (tree.Direction, bool) {
	switch s {
	case "up":
		return tree.DirUp, true
	case "down":
		return tree.DirDown, true
	case "left":
		return tree.DirLeft, true
	case "right":
		return tree.DirRight, true
	default:
		return 0, false
	}
}
