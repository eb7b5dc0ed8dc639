// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/shutdown.go
// Summary: Coordinates stopping the animation loop and IPC server together
// on process shutdown.
// Notes: Grounded on bnema-dumber/internal/app/browser/browser.go's
// loadCachesParallel (errgroup.WithContext fanning out independent
// goroutines and collecting the first error), inverted here from a
// parallel-startup helper into a parallel-shutdown one: stopping the
// animator and the IPC server don't depend on each other, so they run
// concurrently and Shutdown returns the first failure (if any).

package wm

import (
	"context"

	"golang.org/x/sync/errgroup"

	"waytile/animator"
)

// Stoppable is anything with a context-bounded stop sequence; ipc.Server
// satisfies this directly, animator.Animator via AnimatorStopper below.
type Stoppable interface {
	Stop(ctx context.Context) error
}

// AnimatorStopper adapts animator.Animator's context-free Stop (it always
// waits for the loop goroutine to exit, which is fast since the loop only
// blocks on a 16ms ticker or a wake channel) to the Stoppable shape so it
// can join the same errgroup as ipc.Server's shutdown.
type AnimatorStopper struct {
	Animator *animator.Animator
}

func (a AnimatorStopper) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.Animator.Stop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops every given component concurrently, returning the first
// error encountered (if any), after all components have been asked to
// stop.
func Shutdown(ctx context.Context, components ...Stoppable) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range components {
		c := c
		g.Go(func() error { return c.Stop(gctx) })
	}
	return g.Wait()
}
