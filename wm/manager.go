// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/manager.go
// Summary: WorkspaceManager — global workspace-number → Output map, focus
// routing, observers (spec.md §2 component E, §4.C "Observers are fired
// before animation starts").
// Notes: Grounded on framegrace-texelation/server/manager.go's Manager (a
// single map guarded by a mutex, with observer registration split into its
// own small interface), generalized from that package's single-session map
// to a workspace-key → Output map spanning multiple physical displays.

package wm

import (
	"sync"

	"waytile/output"
	"waytile/workspace"
)

// WorkspaceObserver is notified whenever focus moves from one workspace to
// another, on any Output.
type WorkspaceObserver interface {
	OnWorkspaceFocused(prev *workspace.Workspace, prevKey workspace.Key, cur *workspace.Workspace, curKey workspace.Key)
}

// Manager owns every Output and answers "which Output currently hosts
// workspace k" for focus routing (spec.md: "Global map (workspace number →
// Output)").
type Manager struct {
	mu        sync.Mutex
	outputs   []*output.Output
	homeOf    map[workspace.Key]*output.Output
	observers []WorkspaceObserver
}

// NewManager creates an empty WorkspaceManager.
func NewManager() *Manager {
	return &Manager{homeOf: make(map[workspace.Key]*output.Output)}
}

// AddOutput registers a new physical display. The first Output added is
// where unrouted workspace keys default to.
func (m *Manager) AddOutput(o *output.Output) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outputs = append(m.outputs, o)
	o.Observer = managerObserver{m: m, o: o}
}

// Observe registers ob to be notified of every future focus change across
// every Output this Manager owns.
func (m *Manager) Observe(ob WorkspaceObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, ob)
}

// RemoveOutput unregisters o; workspaces it owns are dropped from routing
// (the caller is responsible for having already migrated any windows off
// it, e.g. on a monitor unplug).
func (m *Manager) RemoveOutput(o *output.Output) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.outputs {
		if existing == o {
			m.outputs = append(m.outputs[:i], m.outputs[i+1:]...)
			break
		}
	}
	for k, home := range m.homeOf {
		if home == o {
			delete(m.homeOf, k)
		}
	}
}

// Outputs returns every registered Output, in registration order.
func (m *Manager) Outputs() []*output.Output {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*output.Output, len(m.outputs))
	copy(out, m.outputs)
	return out
}

// OutputFor returns the Output currently hosting workspace k, or the
// primary (first-registered) Output if k has never been focused anywhere.
func (m *Manager) OutputFor(k workspace.Key) *output.Output {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.homeOf[k]; ok {
		return o
	}
	if len(m.outputs) > 0 {
		return m.outputs[0]
	}
	return nil
}

// FocusWorkspace routes a workspace-switch request to the Output currently
// (or newly) responsible for k.
func (m *Manager) FocusWorkspace(k workspace.Key) *output.Switch {
	o := m.OutputFor(k)
	if o == nil {
		return nil
	}
	sw := o.RequestWorkspace(k)
	m.mu.Lock()
	m.homeOf[k] = o
	m.mu.Unlock()
	return sw
}

// managerObserver adapts output.Observer to fan out to every
// WorkspaceObserver registered on the owning Manager.
type managerObserver struct {
	m *Manager
	o *output.Output
}

func (mo managerObserver) OnFocused(prev *workspace.Workspace, prevKey workspace.Key, cur *workspace.Workspace, curKey workspace.Key) {
	mo.m.mu.Lock()
	obs := make([]WorkspaceObserver, len(mo.m.observers))
	copy(obs, mo.m.observers)
	mo.m.mu.Unlock()

	for _, ob := range obs {
		ob.OnWorkspaceFocused(prev, prevKey, cur, curKey)
	}
}
