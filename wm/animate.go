// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/animate.go
// Summary: Bridges output.Switch (the animation request an Output hands
// back from RequestWorkspace) to the Animator, and drives
// Output.FinishSwitch once the slide completes (spec.md §4.C step 3,
// §4.D).
// Notes: Grounded on framegrace-texelation/texel/layout_transitions.go's
// completion-callback wiring (submit, then let OnDone invoke the
// teacher's equivalent of FinishSwitch). The animated quantity here is the
// Output's virtual-strip PositionOffset, not a window rectangle, so the
// Record's From/To rect carries the offset in X/Y and the Output's fixed
// geometry size in W/H — only X/Y ever changes.

package wm

import (
	"fmt"
	"strings"

	"waytile/animator"
	"waytile/config"
	"waytile/internal/easing"
	"waytile/internal/geom"
	"waytile/output"
)

// animateSwitchPrefix tags output-strip slide targets so a shared Animator
// Enqueue callback handling both window rects and output offsets can tell
// the two apart (there is no real WindowController target for a strip
// slide).
const animateSwitchPrefix = "output-switch:"

// IsSwitchTarget reports whether target was submitted by AnimateSwitch,
// for an Enqueue callback to skip passing it to a WindowController.
func IsSwitchTarget(target animator.Target) bool {
	return strings.HasPrefix(string(target), animateSwitchPrefix)
}

// AnimateSwitch submits sw to anim using spec's curve/duration, updating
// o.PositionOffset every frame and calling o.FinishSwitch(sw.To) once the
// slide completes. If anim is nil or enabled is false, the switch
// completes immediately and synchronously instead.
func AnimateSwitch(anim *animator.Animator, o *output.Output, sw *output.Switch, enabled bool, spec config.EasingSpec) {
	if sw == nil || o == nil {
		return
	}
	if anim == nil || !enabled {
		o.PositionOffset = sw.DstOffset
		o.FinishSwitch(sw.To)
		return
	}

	target := animator.Target(fmt.Sprintf("%s%p", animateSwitchPrefix, o))
	anim.Submit(animator.Record{
		Target: target,
		From:   geom.Rect{X: sw.SrcOffset.X, Y: sw.SrcOffset.Y, W: o.Geometry.W, H: o.Geometry.H},
		To:     geom.Rect{X: sw.DstOffset.X, Y: sw.DstOffset.Y, W: o.Geometry.W, H: o.Geometry.H},
		Ease:   easing.LookupWithParams(spec.Curve, spec.Params),
		Duration: spec.Duration(),
		OnStep: func(current geom.Rect) {
			o.PositionOffset = geom.Point{X: current.X, Y: current.Y}
		},
		OnDone: func(bool) {
			o.FinishSwitch(sw.To)
		},
	})
}
