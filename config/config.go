// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: The frozen, validated configuration shape consumed by the core
// packages (spec.md §6 "per-workspace layout hint", "animation
// definitions", "border size/colors", "gap sizes", "key commands").
// Notes: Grounded on bnema-dumber/internal/config/config.go's mapstructure
// plus yaml tagging convention and nested-section-struct layout. Unlike
// that teacher, this package never touches viper or the filesystem: it is
// a plain-struct consumer only. Loading YAML into this shape is
// cmd/waytiled's job.

package config

import (
	"time"

	"waytile/internal/easing"
	"waytile/output"
)

// Modifier identifies the primary keyboard modifier key commands are bound
// against (spec.md §6 "primary modifier key (one of: alt, ctrl, shift,
// meta, …)"). It is validated and carried in Config; the built-in default
// bindings are always built on ModSuper's mask regardless of its value, and
// each KeyBinding carries its own modifier mask (e.g. the conventional
// mod+shift combination for "move" commands).
type Modifier string

const (
	ModSuper Modifier = "super" // meta/super/Mod4, i3's default $mod
	ModAlt   Modifier = "alt"
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
)

// ModifierMask is a bitset of modifier keys a KeyBinding requires held
// together (spec.md §6 "modifier bitset") — distinct from Modifier, which
// names exactly one key.
type ModifierMask uint8

const (
	ModMaskSuper ModifierMask = 1 << iota
	ModMaskAlt
	ModMaskCtrl
	ModMaskShift
)

// Mask resolves m to the single bit it contributes to a ModifierMask.
func (m Modifier) Mask() ModifierMask {
	switch m {
	case ModAlt:
		return ModMaskAlt
	case ModCtrl:
		return ModMaskCtrl
	case ModShift:
		return ModMaskShift
	default:
		return ModMaskSuper
	}
}

// Config is the complete, validated configuration for a waytile session.
// cmd/waytiled builds one of these from YAML via viper and hands it,
// already validated, to the core packages — none of which import this
// package's loading concerns, only this struct.
type Config struct {
	Modifier   Modifier         `mapstructure:"modifier" yaml:"modifier"`
	Gaps       GapsConfig       `mapstructure:"gaps" yaml:"gaps"`
	Border     BorderConfig     `mapstructure:"border" yaml:"border"`
	Animations AnimationsConfig `mapstructure:"animations" yaml:"animations"`
	Workspaces []WorkspaceRule  `mapstructure:"workspaces" yaml:"workspaces"`
	Bindings   BindingsConfig   `mapstructure:"bindings" yaml:"bindings"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// GapsConfig holds the inner/outer gap pixel sizes (spec.md §6).
type GapsConfig struct {
	Inner int `mapstructure:"inner" yaml:"inner"`
	Outer int `mapstructure:"outer" yaml:"outer"`
}

// BorderConfig holds window border thickness and the active/inactive
// colors drawn around a tiled leaf's rectangle.
type BorderConfig struct {
	Width           int    `mapstructure:"width" yaml:"width"`
	ActiveColor     string `mapstructure:"active_color" yaml:"active_color"`
	InactiveColor   string `mapstructure:"inactive_color" yaml:"inactive_color"`
}

// AnimationsConfig carries the enable flag plus one EasingSpec per
// animated event (spec.md §4.D, §6 "animation definitions per event").
type AnimationsConfig struct {
	Enabled         bool       `mapstructure:"enabled" yaml:"enabled"`
	WorkspaceSwitch EasingSpec `mapstructure:"workspace_switch" yaml:"workspace_switch"`
	WindowMove      EasingSpec `mapstructure:"window_move" yaml:"window_move"`
	WindowResize    EasingSpec `mapstructure:"window_resize" yaml:"window_resize"`
}

// EasingSpec names a curve from internal/easing plus its duration and, for
// slide-style transitions, the offscreen-to-onscreen endpoints as a
// fraction of the output's extent along the slide axis.
type EasingSpec struct {
	Curve          easing.Name   `mapstructure:"curve" yaml:"curve"`
	Params         easing.Params `mapstructure:"params" yaml:"params"`
	DurationMillis int           `mapstructure:"duration_ms" yaml:"duration_ms"`
	SlideFrom      float64       `mapstructure:"slide_from" yaml:"slide_from"`
	SlideTo        float64       `mapstructure:"slide_to" yaml:"slide_to"`
}

// Duration converts DurationMillis to a time.Duration for handoff to
// animator.Record.
func (e EasingSpec) Duration() time.Duration {
	return time.Duration(e.DurationMillis) * time.Millisecond
}

// WorkspaceRule binds a workspace key to a default layout hint (spec.md §6
// "per-workspace layout hint").
type WorkspaceRule struct {
	Key    int                `mapstructure:"key" yaml:"key"`
	Layout output.LayoutHint  `mapstructure:"layout" yaml:"layout"`
}

// BindingsConfig holds the default key-command enumeration plus any
// user-defined custom commands (spec.md §6 "default key commands enum",
// "list of custom commands (keyboard action, modifiers, keycode) -> shell
// command").
type BindingsConfig struct {
	Defaults []KeyBinding    `mapstructure:"defaults" yaml:"defaults"`
	Custom   []CustomBinding `mapstructure:"custom" yaml:"custom"`
}

// KeyCommand is one of the built-in bindings waytile wires up without the
// user having to spell out the i3 command string (e.g. CmdSelectLeft always
// means `focus left`). This is the full enumerable set spec.md §6 names.
type KeyCommand string

const (
	CmdTerminal                KeyCommand = "terminal"
	CmdRequestVertical         KeyCommand = "request-vertical"
	CmdRequestHorizontal       KeyCommand = "request-horizontal"
	CmdToggleResize            KeyCommand = "toggle-resize"
	CmdResizeUp                KeyCommand = "resize-up"
	CmdResizeDown              KeyCommand = "resize-down"
	CmdResizeLeft              KeyCommand = "resize-left"
	CmdResizeRight             KeyCommand = "resize-right"
	CmdMoveUp                  KeyCommand = "move-up"
	CmdMoveDown                KeyCommand = "move-down"
	CmdMoveLeft                KeyCommand = "move-left"
	CmdMoveRight               KeyCommand = "move-right"
	CmdSelectUp                KeyCommand = "select-up"
	CmdSelectDown              KeyCommand = "select-down"
	CmdSelectLeft              KeyCommand = "select-left"
	CmdSelectRight             KeyCommand = "select-right"
	CmdQuitActiveWindow        KeyCommand = "quit-active-window"
	CmdQuitCompositor          KeyCommand = "quit-compositor"
	CmdFullscreen              KeyCommand = "fullscreen-toggle"
	CmdSelectWorkspace         KeyCommand = "select-workspace"
	CmdMoveToWorkspace         KeyCommand = "move-to-workspace"
	CmdToggleFloating          KeyCommand = "toggle-floating"
	CmdTogglePinnedToWorkspace KeyCommand = "toggle-pinned-to-workspace"
)

// KeyBinding binds one KeyCommand to a (modifier bitset, keycode) chord
// (spec.md §6: "each bound to (keyboard action, modifier bitset,
// keycode)"). Workspace carries the target workspace number for
// CmdSelectWorkspace/CmdMoveToWorkspace bindings and is ignored by every
// other command, the same way i3's "workspace number N" binding carries its
// target as a command argument rather than a distinct keyword per number.
type KeyBinding struct {
	Command   KeyCommand   `mapstructure:"command" yaml:"command"`
	Modifier  ModifierMask `mapstructure:"modifier" yaml:"modifier"`
	Keycode   uint32       `mapstructure:"keycode" yaml:"keycode"`
	Workspace int          `mapstructure:"workspace,omitempty" yaml:"workspace,omitempty"`
}

// CustomBinding maps a (modifier bitset, keycode) chord to a literal i3
// command script, run through ipc.ParseScript/Execute exactly as if a
// client had sent it.
type CustomBinding struct {
	Modifier ModifierMask `mapstructure:"modifier" yaml:"modifier"`
	Keycode  uint32       `mapstructure:"keycode" yaml:"keycode"`
	Command  string       `mapstructure:"command" yaml:"command"`
}

// Linux evdev keycodes (linux/input-event-codes.h) for the physical keys
// the default binding table below uses. A Wayland compositor's key-event
// path hands these same raw scan codes to xkbcommon for symbol lookup;
// waytile only needs to recognize the handful i3/sway bind by default, so
// no keymap library is pulled in for it (see DESIGN.md).
const (
	KeycodeEnter = 28
	KeycodeQ     = 16
	KeycodeE     = 18
	KeycodeV     = 47
	KeycodeH     = 35
	KeycodeR     = 19
	KeycodeF     = 33
	KeycodeSpace = 57
	KeycodeLeft  = 105
	KeycodeRight = 106
	KeycodeUp    = 103
	KeycodeDown  = 108
	Keycode1     = 2
	Keycode2     = 3
	Keycode3     = 4
	Keycode4     = 5
	Keycode5     = 6
	Keycode6     = 7
	Keycode7     = 8
	Keycode8     = 9
	Keycode9     = 10
	Keycode0     = 11
)

// LoggingConfig controls the zerolog setup in cmd/waytiled.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
