// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"testing"
	"time"

	"waytile/internal/easing"
	"waytile/internal/geom"
)

// step is exercised directly in these tests rather than through Run, since
// Run drives real wall-clock ticks; step is the same per-frame advance Run
// calls internally, just invoked deterministically.

func TestSubmitThenStepInterpolatesLinearly(t *testing.T) {
	var got Batch
	a := New(func(b Batch) { got = b })

	a.Submit(Record{
		Target:   "win1",
		From:     geom.Rect{X: 0, Y: 0, W: 100, H: 100},
		To:       geom.Rect{X: 100, Y: 0, W: 100, H: 100},
		Ease:     easing.Lookup(easing.Linear),
		Duration: 100 * time.Millisecond,
	})

	a.step(50 * time.Millisecond)

	r, ok := got["win1"]
	if !ok {
		t.Fatal("expected a batch entry for win1")
	}
	if r.X != 50 {
		t.Errorf("expected halfway X=50, got %d", r.X)
	}
}

func TestStepCompletesAtOrPastDuration(t *testing.T) {
	var done bool
	a := New(func(Batch) {})

	a.Submit(Record{
		Target:   "win1",
		From:     geom.Rect{X: 0, Y: 0, W: 100, H: 100},
		To:       geom.Rect{X: 200, Y: 0, W: 100, H: 100},
		Duration: 50 * time.Millisecond,
		OnDone:   func(complete bool) { done = complete },
	})

	a.step(60 * time.Millisecond)

	if !done {
		t.Fatal("expected OnDone(true) once elapsed exceeds duration")
	}
	if a.Count() != 0 {
		t.Fatal("expected the completed record to be removed")
	}
}

func TestSubmitForSameTargetCancelsInFlight(t *testing.T) {
	var firstDone, secondDone bool
	a := New(func(Batch) {})

	a.Submit(Record{
		Target:   "win1",
		From:     geom.Rect{W: 10, H: 10},
		To:       geom.Rect{X: 100, W: 10, H: 10},
		Duration: time.Second,
		OnDone:   func(bool) { firstDone = true },
	})
	a.Submit(Record{
		Target:   "win1",
		From:     geom.Rect{W: 10, H: 10},
		To:       geom.Rect{X: 50, W: 10, H: 10},
		Duration: time.Second,
		OnDone:   func(bool) { secondDone = true },
	})

	if a.Count() != 1 {
		t.Fatalf("expected exactly one record for win1 after resubmission, got %d", a.Count())
	}

	a.step(time.Second)
	if firstDone {
		t.Error("the cancelled first animation should never fire its callback")
	}
	if !secondDone {
		t.Error("the replacement animation should complete")
	}
}

func TestCompleteFinishesToTerminalRectWithoutTick(t *testing.T) {
	var stepped geom.Rect
	var done bool
	a := New(func(Batch) {})

	a.Submit(Record{
		Target:   "ghost",
		From:     geom.Rect{W: 10, H: 10},
		To:       geom.Rect{X: 500, W: 10, H: 10},
		Duration: time.Second,
		OnStep:   func(r geom.Rect) { stepped = r },
		OnDone:   func(c bool) { done = c },
	})

	a.Complete("ghost")

	if stepped.X != 500 {
		t.Errorf("expected completion to the terminal rect, got X=%d", stepped.X)
	}
	if !done {
		t.Error("expected OnDone(true)")
	}
	if a.Active("ghost") {
		t.Error("expected the completed animation to no longer be active")
	}
}

func TestStepInvokesOnStepEveryFrame(t *testing.T) {
	var seen []int
	a := New(func(Batch) {})

	a.Submit(Record{
		Target:   "strip",
		From:     geom.Rect{X: 0, W: 10, H: 10},
		To:       geom.Rect{X: 100, W: 10, H: 10},
		Ease:     easing.Lookup(easing.Linear),
		Duration: 100 * time.Millisecond,
		OnStep:   func(r geom.Rect) { seen = append(seen, r.X) },
	})

	a.step(25 * time.Millisecond)
	a.step(25 * time.Millisecond)

	if len(seen) != 2 {
		t.Fatalf("expected OnStep to fire once per step() call, got %d calls", len(seen))
	}
	if seen[0] != 25 || seen[1] != 50 {
		t.Errorf("expected intermediate X values [25 50], got %v", seen)
	}
}

func TestCancelDropsRecordWithoutCallback(t *testing.T) {
	called := false
	a := New(func(Batch) {})

	a.Submit(Record{
		Target:   "win1",
		Duration: time.Second,
		OnDone:   func(bool) { called = true },
	})
	a.Cancel("win1")

	if a.Active("win1") {
		t.Fatal("expected win1 to no longer be active")
	}
	if called {
		t.Fatal("Cancel must not invoke OnDone")
	}
}

func TestBatchCoalescesMultipleTargetsInOneStep(t *testing.T) {
	var got Batch
	a := New(func(b Batch) { got = b })

	a.Submit(Record{Target: "a", To: geom.Rect{X: 10, W: 1, H: 1}, Duration: time.Second})
	a.Submit(Record{Target: "b", To: geom.Rect{X: 20, W: 1, H: 1}, Duration: time.Second})

	a.step(10 * time.Millisecond)

	if len(got) != 2 {
		t.Fatalf("expected a single batch covering both targets, got %d entries", len(got))
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	done := false
	a := New(func(Batch) {})
	a.Submit(Record{
		Target: "instant",
		To:     geom.Rect{X: 42, W: 1, H: 1},
		OnDone: func(bool) { done = true },
	})
	a.step(Tick)
	if !done {
		t.Fatal("expected a zero-duration animation to complete on the first step")
	}
}
