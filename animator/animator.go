// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: animator/animator.go
// Summary: Fixed-timestep animation scheduler (spec.md §4.D, §5 three-scheduler
// model).
// Notes: Grounded on framegrace-texelation/texel/layout_transitions.go's
// LayoutTransitionManager (16ms ticker goroutine, mutex-guarded map of active
// animations, completion callbacks fired after the lock is released) and
// texel/layout_animator.go's weight-timeline design, generalized from a
// single-purpose split-ratio animator keyed by pane ID to the general-purpose
// rect/transform interpolator spec.md §4.D describes, keyed by a
// caller-chosen Target (each submission also gets a uuid.UUID Handle) and
// cancelled by resubmission rather than by completion.
// The teacher ticks unconditionally every 16ms forever; this animator adds
// the condition-variable suspension spec.md §4.D requires ("suspends via a
// condition variable when the animation queue is empty") so an idle
// compositor doesn't spin a goroutine for nothing.

package animator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"waytile/internal/easing"
	"waytile/internal/geom"
)

// Handle identifies one in-flight animation. Submitting a new animation for
// a Target that already has one in flight cancels the earlier one (spec.md
// §4.D: "submitting a new animation for a handle that already has one in
// flight cancels the in-flight one").
type Handle = uuid.UUID

// Tick is the fixed simulation timestep (spec.md §4.D: "fixed timestep
// 16ms").
const Tick = 16 * time.Millisecond

// Target identifies what is being animated: a window's rectangle, or an
// Output's scroll position, or any other opaque animatable quantity a caller
// wants to key animations by. Two Records sharing a Target cancel each other.
type Target string

// Record is one animation in flight (spec.md §3 "Animation record": opaque
// handle, target identity (weak — WindowController may report the window
// gone mid-animation), from/to/current geometry, easing function+params,
// duration, elapsed time, completion callback).
type Record struct {
	Handle   Handle
	Target   Target
	From, To geom.Rect
	Ease     easing.Func
	Duration time.Duration
	elapsed  time.Duration
	OnStep   func(current geom.Rect)
	OnDone   func(complete bool)
}

func (r *Record) progress() float64 {
	if r.Duration <= 0 {
		return 1
	}
	p := float64(r.elapsed) / float64(r.Duration)
	if p > 1 {
		p = 1
	}
	return p
}

func (r *Record) current() geom.Rect {
	t := r.Ease(r.progress())
	lerp := func(a, b int) int { return a + int(float64(b-a)*t) }
	return geom.Rect{
		X: lerp(r.From.X, r.To.X),
		Y: lerp(r.From.Y, r.To.Y),
		W: lerp(r.From.W, r.To.W),
		H: lerp(r.From.H, r.To.H),
	}
}

// Batch is the set of per-target geometry updates computed by a single tick,
// handed to the caller as one closure so it can be enqueued onto the
// compositor's serial action queue as a single unit (spec.md §4.D: "batched
// updates enqueued as a single closure"). The Animator itself never touches
// the compositor or a WindowController directly — it only calls Submit's
// owner back through this function, keeping the three schedulers (input,
// render, animation) in the layering spec.md §5 describes.
type Batch map[Target]geom.Rect

// Enqueue receives one tick's worth of batched geometry updates. Callers
// wire this to whatever serializes work onto the compositor's main loop.
type Enqueue func(Batch)

// Animator runs the fixed-timestep animation loop described in spec.md §4.D.
type Animator struct {
	mu      sync.Mutex
	records map[Target]*Record
	enqueue Enqueue

	wake    chan struct{}
	stop    chan struct{}
	stopped chan struct{}

	now func() time.Time
}

// New creates an Animator that delivers each tick's batch to enqueue.
func New(enqueue Enqueue) *Animator {
	return &Animator{
		records: make(map[Target]*Record),
		enqueue: enqueue,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
		now:     time.Now,
	}
}

// Run starts the animation loop on the calling goroutine; callers typically
// `go animator.Run()`. It returns once Stop is called.
func (a *Animator) Run() {
	defer close(a.stopped)

	ticker := time.NewTicker(Tick)
	defer ticker.Stop()

	var lag time.Duration
	last := a.now()

	for {
		if a.idle() {
			select {
			case <-a.wake:
			case <-a.stop:
				return
			}
			last = a.now()
			lag = 0
			continue
		}

		select {
		case <-ticker.C:
			cur := a.now()
			lag += cur.Sub(last)
			last = cur
			for lag >= Tick {
				a.step(Tick)
				lag -= Tick
			}
		case <-a.stop:
			return
		}
	}
}

// Stop ends the loop and waits for Run to return.
func (a *Animator) Stop() {
	close(a.stop)
	<-a.stopped
}

func (a *Animator) idle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records) == 0
}

// Submit starts (or restarts) an animation for rec.Target. Any record
// already in flight for the same Target is removed before the new one is
// inserted, per spec.md §4.D's cancellation-by-resubmission rule. rec.Handle
// is filled in if zero.
func (a *Animator) Submit(rec Record) Handle {
	if rec.Handle == uuid.Nil {
		rec.Handle = uuid.New()
	}
	if rec.Ease == nil {
		rec.Ease = easing.Lookup(easing.Linear)
	}
	r := rec

	a.mu.Lock()
	delete(a.records, rec.Target)
	a.records[rec.Target] = &r
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
	return r.Handle
}

// Cancel removes any in-flight animation for target without completing it
// and without invoking its OnStep or OnDone callbacks. A caller whose
// target window has gone uses Complete instead, which finishes the
// animation at its terminal rect.
func (a *Animator) Cancel(target Target) {
	a.mu.Lock()
	delete(a.records, target)
	a.mu.Unlock()
}

// Complete immediately finishes any in-flight animation for target at its
// terminal rect, invoking OnStep and OnDone(true) synchronously. This is
// spec.md §4.D's missing-window-handle completion path: "complete to the
// terminal rect, no toolkit mutation" — callers that discover the target
// window is already gone call this instead of letting the next tick do it,
// so the animation's bookkeeping (e.g. a workspace-switch FinishSwitch) still
// runs exactly once.
func (a *Animator) Complete(target Target) {
	a.mu.Lock()
	r, ok := a.records[target]
	if ok {
		delete(a.records, target)
	}
	a.mu.Unlock()
	if !ok {
		return
	}
	if r.OnStep != nil {
		r.OnStep(r.To)
	}
	if r.OnDone != nil {
		r.OnDone(true)
	}
}

// step advances every in-flight record by dt and batches the resulting
// geometry under a single lock acquisition, then releases the lock before
// handing the batch to enqueue and running OnStep/OnDone, mirroring
// updateAnimations' "compute under lock, callback after release" split.
func (a *Animator) step(dt time.Duration) {
	a.mu.Lock()

	batch := make(Batch, len(a.records))
	var stepped []*Record
	var done []*Record

	for target, r := range a.records {
		r.elapsed += dt
		batch[target] = r.current()
		if r.OnStep != nil {
			stepped = append(stepped, r)
		}
		if r.progress() >= 1 {
			done = append(done, r)
			delete(a.records, target)
		}
	}

	a.mu.Unlock()

	if a.enqueue != nil && len(batch) > 0 {
		a.enqueue(batch)
	}
	for _, r := range stepped {
		r.OnStep(batch[r.Target])
	}
	for _, r := range done {
		if r.OnDone != nil {
			r.OnDone(true)
		}
	}
}

// Active reports whether target currently has an in-flight animation.
func (a *Animator) Active(target Target) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.records[target]
	return ok
}

// Count returns the number of in-flight animations, for tests and metrics.
func (a *Animator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}
