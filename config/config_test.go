// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"strings"
	"testing"

	"waytile/internal/easing"
	"waytile/output"
)

func TestWithDefaultsFillsZeroValueOnly(t *testing.T) {
	c := Config{Gaps: GapsConfig{Inner: 4}}
	c = c.WithDefaults()

	if c.Gaps.Inner != 4 {
		t.Fatalf("expected an explicitly set field to survive WithDefaults, got %d", c.Gaps.Inner)
	}
	if c.Gaps.Outer != defaultOuterGap {
		t.Fatalf("expected the unset outer gap to take its default, got %d", c.Gaps.Outer)
	}
	if c.Modifier != ModSuper {
		t.Fatalf("expected default modifier %q, got %q", ModSuper, c.Modifier)
	}
	if c.Animations.WorkspaceSwitch.Curve != easing.OutCubic {
		t.Fatalf("expected default workspace-switch curve, got %q", c.Animations.WorkspaceSwitch.Curve)
	}
	if len(c.Bindings.Defaults) == 0 {
		t.Fatal("expected default key commands to be populated")
	}
}

func TestValidateRejectsUnknownModifier(t *testing.T) {
	c := Config{Modifier: "hyper"}.WithDefaults()
	c.Modifier = "hyper"

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "modifier") {
		t.Fatalf("expected a modifier validation error, got %v", err)
	}
}

func TestValidateRejectsNegativeGaps(t *testing.T) {
	c := Config{}.WithDefaults()
	c.Gaps.Inner = -1

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "gaps.inner") {
		t.Fatalf("expected a gaps.inner validation error, got %v", err)
	}
}

func TestValidateRejectsDuplicateWorkspaceKeys(t *testing.T) {
	c := Config{}.WithDefaults()
	c.Workspaces = []WorkspaceRule{
		{Key: 1, Layout: output.LayoutTiled},
		{Key: 1, Layout: output.LayoutFloating},
	}

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate key") {
		t.Fatalf("expected a duplicate workspace key error, got %v", err)
	}
}

func TestValidateRejectsEmptyCustomBindingCommand(t *testing.T) {
	c := Config{}.WithDefaults()
	c.Bindings.Custom = []CustomBinding{{Modifier: ModMaskSuper, Keycode: KeycodeR, Command: "  "}}

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "empty command") {
		t.Fatalf("expected an empty-command validation error, got %v", err)
	}
}

func TestValidateRejectsConflictingDefaultBindings(t *testing.T) {
	c := Config{}.WithDefaults()
	c.Bindings.Defaults = []KeyBinding{
		{Command: CmdTerminal, Modifier: ModMaskSuper, Keycode: KeycodeEnter},
		{Command: CmdFullscreen, Modifier: ModMaskSuper, Keycode: KeycodeEnter},
	}

	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "bound to both") {
		t.Fatalf("expected a conflicting-chord validation error, got %v", err)
	}
}

func TestValidateAcceptsDefaultedConfig(t *testing.T) {
	c := Config{}.WithDefaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected a fully-defaulted config to validate cleanly, got %v", err)
	}
}
