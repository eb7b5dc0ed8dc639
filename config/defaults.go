// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: WithDefaults fills the zero-value gaps left by a partially
// specified YAML document, in the style of bnema-dumber's DefaultConfig.
//
// Notes: Grounded on bnema-dumber/internal/config/defaults.go.

package config

import (
	"waytile/internal/easing"
	"waytile/output"
)

const (
	defaultInnerGap    = 8
	defaultOuterGap    = 12
	defaultBorderWidth = 2

	defaultWorkspaceSwitchMillis = 220
	defaultWindowMoveMillis      = 160
	defaultWindowResizeMillis    = 120
)

// WithDefaults returns a copy of c with every unset field replaced by its
// default, without overwriting anything the caller already specified.
func (c Config) WithDefaults() Config {
	if c.Modifier == "" {
		c.Modifier = ModSuper
	}
	if c.Gaps.Inner == 0 {
		c.Gaps.Inner = defaultInnerGap
	}
	if c.Gaps.Outer == 0 {
		c.Gaps.Outer = defaultOuterGap
	}
	if c.Border.Width == 0 {
		c.Border.Width = defaultBorderWidth
	}
	if c.Border.ActiveColor == "" {
		c.Border.ActiveColor = "#4c7899"
	}
	if c.Border.InactiveColor == "" {
		c.Border.InactiveColor = "#333333"
	}
	c.Animations.WorkspaceSwitch = withEasingDefaults(c.Animations.WorkspaceSwitch, easing.OutCubic, defaultWorkspaceSwitchMillis, 1, 0)
	c.Animations.WindowMove = withEasingDefaults(c.Animations.WindowMove, easing.OutQuad, defaultWindowMoveMillis, 0, 0)
	c.Animations.WindowResize = withEasingDefaults(c.Animations.WindowResize, easing.OutQuad, defaultWindowResizeMillis, 0, 0)
	if len(c.Bindings.Defaults) == 0 {
		c.Bindings.Defaults = defaultKeyBindings()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	return c
}

func withEasingDefaults(e EasingSpec, curve easing.Name, durationMillis int, slideFrom, slideTo float64) EasingSpec {
	if e.Curve == "" {
		e.Curve = curve
	}
	if e.Params == (easing.Params{}) {
		e.Params = easing.DefaultParams()
	}
	if e.DurationMillis == 0 {
		e.DurationMillis = durationMillis
	}
	if e.SlideFrom == 0 && e.SlideTo == 0 && (slideFrom != 0 || slideTo != 0) {
		e.SlideFrom, e.SlideTo = slideFrom, slideTo
	}
	return e
}

// defaultKeyBindings returns the i3/sway-conventional chord for every
// built-in KeyCommand (spec.md §6 "default key commands"), bound to the
// super mask (or super plus shift, for commands i3 conventionally binds
// under mod+shift, and super plus ctrl for resizing). The table is always
// built on super; Config.Modifier does not change it.
func defaultKeyBindings() []KeyBinding {
	mod := ModSuper.Mask()
	shiftMod := mod | ModMaskShift
	resizeMod := mod | ModMaskCtrl

	bindings := []KeyBinding{
		{Command: CmdTerminal, Modifier: mod, Keycode: KeycodeEnter},
		{Command: CmdQuitActiveWindow, Modifier: shiftMod, Keycode: KeycodeQ},
		{Command: CmdQuitCompositor, Modifier: shiftMod, Keycode: KeycodeE},
		{Command: CmdRequestHorizontal, Modifier: mod, Keycode: KeycodeH},
		{Command: CmdRequestVertical, Modifier: mod, Keycode: KeycodeV},
		{Command: CmdFullscreen, Modifier: mod, Keycode: KeycodeF},
		{Command: CmdToggleFloating, Modifier: shiftMod, Keycode: KeycodeSpace},
		{Command: CmdTogglePinnedToWorkspace, Modifier: shiftMod, Keycode: KeycodeV},

		{Command: CmdSelectLeft, Modifier: mod, Keycode: KeycodeLeft},
		{Command: CmdSelectRight, Modifier: mod, Keycode: KeycodeRight},
		{Command: CmdSelectUp, Modifier: mod, Keycode: KeycodeUp},
		{Command: CmdSelectDown, Modifier: mod, Keycode: KeycodeDown},

		{Command: CmdMoveLeft, Modifier: shiftMod, Keycode: KeycodeLeft},
		{Command: CmdMoveRight, Modifier: shiftMod, Keycode: KeycodeRight},
		{Command: CmdMoveUp, Modifier: shiftMod, Keycode: KeycodeUp},
		{Command: CmdMoveDown, Modifier: shiftMod, Keycode: KeycodeDown},

		{Command: CmdToggleResize, Modifier: mod, Keycode: KeycodeR},
		{Command: CmdResizeLeft, Modifier: resizeMod, Keycode: KeycodeLeft},
		{Command: CmdResizeRight, Modifier: resizeMod, Keycode: KeycodeRight},
		{Command: CmdResizeUp, Modifier: resizeMod, Keycode: KeycodeUp},
		{Command: CmdResizeDown, Modifier: resizeMod, Keycode: KeycodeDown},
	}

	workspaceKeys := []uint32{
		Keycode1, Keycode2, Keycode3, Keycode4, Keycode5,
		Keycode6, Keycode7, Keycode8, Keycode9, Keycode0,
	}
	for i, kc := range workspaceKeys {
		n := i + 1
		if n == 10 {
			n = 0
		}
		bindings = append(bindings,
			KeyBinding{Command: CmdSelectWorkspace, Modifier: mod, Keycode: kc, Workspace: n},
			KeyBinding{Command: CmdMoveToWorkspace, Modifier: shiftMod, Keycode: kc, Workspace: n},
		)
	}
	return bindings
}

// DefaultWorkspaceRule returns a rule for workspace 1 with a tiled layout,
// matching output.Output's own pinned-empty-workspace default. Nothing in
// this module calls it; WithDefaults leaves an absent workspaces section
// empty.
func DefaultWorkspaceRule() WorkspaceRule {
	return WorkspaceRule{Key: 1, Layout: output.LayoutTiled}
}
