// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: container/container.go
// Summary: The tagged-union Container type and its owning Arena.
// Usage: tree, workspace, output and wm all operate on Containers by ID
// through an Arena; nothing outside this package dereferences a raw pointer.
// Notes: Grounded on framegrace-texelation/texel/tree.go's Node (a single
// struct doing double duty as leaf and internal node) and on the "arena of
// Containers keyed by stable u32 IDs" design note (spec.md §9), replacing
// the C++ shared_ptr/weak_ptr back-reference scheme: children hold IDs,
// parents hold a ParentID option, Group holds a slice of IDs swept on access.

package container

import "waytile/internal/geom"

// ID uniquely identifies a Container within an Arena. The zero value means
// "no container" (e.g. a root's ParentID, or an absent toolkit window).
type ID uint32

// WindowID identifies a toolkit window handle. The core treats it as an
// opaque token; only the WindowController collaborator interprets it.
type WindowID string

// Kind tags which variant a Container currently is.
type Kind int

const (
	KindLeaf Kind = iota
	KindParent
	KindFloatingWindow
	KindFloatingTree
	KindGroup
	KindShell
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindParent:
		return "parent"
	case KindFloatingWindow:
		return "floating_window"
	case KindFloatingTree:
		return "floating_tree"
	case KindGroup:
		return "group"
	case KindShell:
		return "shell"
	default:
		return "unknown"
	}
}

// SplitDirection is a Parent's split axis/mode.
type SplitDirection int

const (
	SplitHorizontal SplitDirection = iota
	SplitVertical
	SplitStacked
	SplitTabbed
)

// WindowState is a Leaf's lifecycle state.
type WindowState int

const (
	StateRestored WindowState = iota
	StateFullscreen
	StateMinimized
	StateHidden
)

// Container is the uniform node type for every variant described in spec.md
// §3. Fields not relevant to the current Kind are left zero-valued; callers
// that need variant-specific data go through the Kind-gated accessors below
// rather than reaching into the struct directly, so the "no virtual calls on
// the hot path" dispatch stays centralized.
type Container struct {
	ID     ID
	Parent ID // zero means "no parent" (this is a workspace root)
	Kind   Kind

	LogicalArea geom.Rect
	VisibleArea geom.Rect
	Transform   geom.Mat4

	Window WindowID // set for Leaf, FloatingWindow, Shell

	// Leaf-only
	State         WindowState
	SavedRect     geom.Rect // logical area to restore to after fullscreen/hide
	HadSavedState bool

	// Parent-only
	Children      []ID
	Split         SplitDirection
	DefaultSplit  SplitDirection

	// FloatingWindow-only
	Pinned bool

	// FloatingTree-only: the nested tree's own root container lives in the
	// same Arena; NestedRoot points at it. The Arena that owns a
	// FloatingTree container is also the Arena the nested root lives in,
	// since a FloatingTree is just a Parent subtree hosted at a free
	// floating rectangle instead of the workspace tiling area. NestedActive
	// mirrors the nested tree.Tree's own ActiveLeaf field between calls,
	// since the Tree wrapper itself is reconstructed on demand rather than
	// stored.
	NestedRoot   ID
	NestedActive ID

	// Group-only: weakly-held member IDs, swept lazily (§3 invariant 5).
	Members []ID
}

// Arena owns every Container for one workspace's tiling tree plus its
// floating windows and groups. IDs are stable for the Container's lifetime
// and are never reused within a running process.
type Arena struct {
	items  map[ID]*Container
	nextID uint32
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{items: make(map[ID]*Container)}
}

// New allocates a new Container of the given Kind with no parent set yet,
// and inserts it into the arena.
func (a *Arena) New(kind Kind) *Container {
	a.nextID++
	c := &Container{ID: ID(a.nextID), Kind: kind, Transform: geom.Identity()}
	a.items[c.ID] = c
	return c
}

// Get looks up a Container by ID. Returns false if it does not exist (e.g.
// it was removed, or a Group's member reference has expired).
func (a *Arena) Get(id ID) (*Container, bool) {
	if id == 0 {
		return nil, false
	}
	c, ok := a.items[id]
	return c, ok
}

// MustGet panics... no: it is intentionally absent. Every caller in this
// module handles the not-found case explicitly (spec.md §7: tree operations
// never panic on absent references).

// Remove deletes a Container from the arena. Callers are responsible for
// unlinking it from its parent's Children first.
func (a *Arena) Remove(id ID) {
	delete(a.items, id)
}

// Exists reports whether id currently resolves to a live Container.
func (a *Arena) Exists(id ID) bool {
	_, ok := a.items[id]
	return ok
}

// Count returns the number of live containers, for tests and diagnostics.
func (a *Arena) Count() int {
	return len(a.items)
}

// Adopt inserts a Container already allocated by a different Arena (e.g. a
// pinned FloatingWindow moving to another workspace's arena on an output
// switch) into this one under its existing ID, bumping nextID if needed so
// future New calls never collide with it.
func (a *Arena) Adopt(c *Container) {
	a.items[c.ID] = c
	if uint32(c.ID) > a.nextID {
		a.nextID = uint32(c.ID)
	}
}

// SweepGroup removes expired member references from a Group container and
// returns the live members. Implements §3 invariant 5.
func (a *Arena) SweepGroup(g *Container) []ID {
	if g.Kind != KindGroup {
		return nil
	}
	live := g.Members[:0]
	for _, m := range g.Members {
		if a.Exists(m) {
			live = append(live, m)
		}
	}
	g.Members = live
	return g.Members
}

// GroupToggleFullscreen broadcasts ToggleFullscreen to every live member of
// a Group and AND-reduces the per-member result, per spec.md §4.A ("Group
// either broadcasts to its members or rejects") and grounded on
// original_source/container_group_container.cpp's
// ContainerGroupContainer::toggle_fullscreen. Returns false for a non-Group
// or a Group with no live members.
func (a *Arena) GroupToggleFullscreen(g *Container) bool {
	if g.Kind != KindGroup {
		return false
	}
	members := a.SweepGroup(g)
	if len(members) == 0 {
		return false
	}
	ok := true
	for _, id := range members {
		c, found := a.Get(id)
		if !found {
			continue
		}
		if !c.ToggleFullscreen() {
			ok = false
		}
	}
	return ok
}
