// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/validate.go
// Summary: Validate checks a Config for internally-inconsistent or
// out-of-range values before cmd/waytiled hands it to the core packages.
//
// Notes: Grounded on bnema-dumber/internal/config/validation.go's
// accumulate-then-join error style.

package config

import (
	"fmt"
	"strings"

	"waytile/internal/easing"
	"waytile/output"
)

// Validate returns a single error describing every problem found, or nil
// if c is ready to be used.
func (c Config) Validate() error {
	var problems []string

	switch c.Modifier {
	case ModSuper, ModAlt, ModCtrl, ModShift:
	default:
		problems = append(problems, fmt.Sprintf("modifier must be one of: super, alt, ctrl, shift (got %q)", c.Modifier))
	}

	if c.Gaps.Inner < 0 {
		problems = append(problems, "gaps.inner must be non-negative")
	}
	if c.Gaps.Outer < 0 {
		problems = append(problems, "gaps.outer must be non-negative")
	}
	if c.Border.Width < 0 {
		problems = append(problems, "border.width must be non-negative")
	}

	problems = append(problems, validateEasing("animations.workspace_switch", c.Animations.WorkspaceSwitch)...)
	problems = append(problems, validateEasing("animations.window_move", c.Animations.WindowMove)...)
	problems = append(problems, validateEasing("animations.window_resize", c.Animations.WindowResize)...)

	seen := make(map[int]bool)
	for _, w := range c.Workspaces {
		if seen[w.Key] {
			problems = append(problems, fmt.Sprintf("workspaces: duplicate key %d", w.Key))
		}
		seen[w.Key] = true
		switch w.Layout {
		case output.LayoutTiled, output.LayoutFloating:
		default:
			problems = append(problems, fmt.Sprintf("workspaces: key %d has an unknown layout hint %v", w.Key, w.Layout))
		}
	}

	for _, cb := range c.Bindings.Custom {
		if cb.Keycode == 0 {
			problems = append(problems, "bindings.custom: entry has no keycode")
		}
		if strings.TrimSpace(cb.Command) == "" {
			problems = append(problems, fmt.Sprintf("bindings.custom: keycode %d has an empty command", cb.Keycode))
		}
	}

	chords := make(map[chord]KeyCommand, len(c.Bindings.Defaults))
	for _, b := range c.Bindings.Defaults {
		ch := chord{b.Modifier, b.Keycode}
		if existing, ok := chords[ch]; ok {
			problems = append(problems, fmt.Sprintf("bindings.defaults: modifier %d + keycode %d bound to both %q and %q", b.Modifier, b.Keycode, existing, b.Command))
			continue
		}
		chords[ch] = b.Command
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be one of: console, json (got %q)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// chord is a (modifier bitset, keycode) pair, used to detect two default
// bindings fighting over the same physical chord.
type chord struct {
	modifier ModifierMask
	keycode  uint32
}

func validateEasing(field string, e EasingSpec) []string {
	var problems []string
	if e.Curve != "" && !easing.Valid(e.Curve) {
		problems = append(problems, fmt.Sprintf("%s.curve: unknown easing curve %q", field, e.Curve))
	}
	if e.DurationMillis < 0 {
		problems = append(problems, fmt.Sprintf("%s.duration_ms must be non-negative", field))
	}
	return problems
}
