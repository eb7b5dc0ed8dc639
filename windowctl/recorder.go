// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: windowctl/recorder.go
// Summary: Call-recording WindowController fake for tests.
// Notes: Grounded on framegrace-texelation/texel/desktop_engine_test.go's
// stubScreenDriver (a hand-written fake tracking call counts/last-seen
// arguments per method, rather than a generated mock), extended to also keep
// an ordered Calls log since wm/ipc tests need to assert call sequencing
// (e.g. "SetRectangle happens before Raise during a focus switch"), which the
// teacher's per-field counters can't express.

package windowctl

import "waytile/container"

// Call records one method invocation against a Recorder, in order.
type Call struct {
	Method string
	ID     container.WindowID
	Rect   Rect
	State  State
}

// Recorder is a WindowController fake that records every call it receives
// and reports a scripted Info/State back to callers that ask. Create one
// with NewRecorder: the zero value's maps are nil, and methods that record
// a state write into them.
type Recorder struct {
	Calls []Call

	// States holds the last state ChangeState recorded per window, read
	// back by GetState/IsFullscreen.
	States map[container.WindowID]State
	// Infos lets a test script the Info InfoFor returns for a given
	// window; windows absent from this map get a zero Info.
	Infos map[container.WindowID]Info
	// Missing marks windows that should report as gone — every method
	// about them returns an error, modeling spec.md §4.D's "missing
	// window handle" edge case.
	Missing map[container.WindowID]bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		States:  make(map[container.WindowID]State),
		Infos:   make(map[container.WindowID]Info),
		Missing: make(map[container.WindowID]bool),
	}
}

func (r *Recorder) record(method string, id container.WindowID) {
	r.Calls = append(r.Calls, Call{Method: method, ID: id})
}

func (r *Recorder) checkMissing(id container.WindowID) error {
	if r.Missing[id] {
		return errGone(id)
	}
	return nil
}

type errGone container.WindowID

func (e errGone) Error() string {
	return "windowctl: window " + string(e) + " is gone"
}

func (r *Recorder) Open(id container.WindowID) error {
	r.record("Open", id)
	r.States[id] = StateRestored
	return r.checkMissing(id)
}

func (r *Recorder) Close(id container.WindowID) error {
	r.record("Close", id)
	delete(r.States, id)
	delete(r.Infos, id)
	return r.checkMissing(id)
}

func (r *Recorder) SetRectangle(id container.WindowID, rect Rect) error {
	r.Calls = append(r.Calls, Call{Method: "SetRectangle", ID: id, Rect: rect})
	return r.checkMissing(id)
}

func (r *Recorder) Clip(id container.WindowID, clipRect Rect) error {
	r.Calls = append(r.Calls, Call{Method: "Clip", ID: id, Rect: clipRect})
	return r.checkMissing(id)
}

func (r *Recorder) NoClip(id container.WindowID) error {
	r.record("NoClip", id)
	return r.checkMissing(id)
}

func (r *Recorder) Raise(id container.WindowID) error {
	r.record("Raise", id)
	return r.checkMissing(id)
}

func (r *Recorder) SendToBack(id container.WindowID) error {
	r.record("SendToBack", id)
	return r.checkMissing(id)
}

func (r *Recorder) SelectActive(id container.WindowID) error {
	r.record("SelectActive", id)
	return r.checkMissing(id)
}

func (r *Recorder) ChangeState(id container.WindowID, state State) error {
	r.Calls = append(r.Calls, Call{Method: "ChangeState", ID: id, State: state})
	if err := r.checkMissing(id); err != nil {
		return err
	}
	r.States[id] = state
	return nil
}

func (r *Recorder) GetState(id container.WindowID) (State, error) {
	r.record("GetState", id)
	if err := r.checkMissing(id); err != nil {
		return StateRestored, err
	}
	return r.States[id], nil
}

func (r *Recorder) IsFullscreen(id container.WindowID) (bool, error) {
	r.record("IsFullscreen", id)
	if err := r.checkMissing(id); err != nil {
		return false, err
	}
	return r.States[id] == StateFullscreen, nil
}

func (r *Recorder) InfoFor(id container.WindowID) (Info, error) {
	r.record("InfoFor", id)
	if err := r.checkMissing(id); err != nil {
		return Info{}, err
	}
	if info, ok := r.Infos[id]; ok {
		return info, nil
	}
	return Info{ID: id, State: r.States[id]}, nil
}

// CountCalls returns how many times method was invoked, for assertions like
// "SetRectangle was called exactly twice".
func (r *Recorder) CountCalls(method string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

var _ WindowController = (*Recorder)(nil)
