// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package run

import "sync"

// Run is the witness store a search installs its findings into. It is safe
// for concurrent use: SaveSubruns, HasWitness, Witness, DependencyRoot and
// Frontier all take the same lock, following the same
// lock-on-every-exported-method discipline as a concurrency-safe wrapper
// around a plain data structure.
type Run struct {
	mu sync.Mutex

	states uint32
	start  uint32

	// grafts[s] is the root of an accepted subtree for state s, or nil.
	grafts []*Node

	// dependencies[s] is the root under which grafts[s] was discovered, or
	// nil if grafts[s] is itself an install root (the argument to
	// SaveSubruns that produced it).
	dependencies []*Node

	// roots holds every node that was the direct argument of a successful
	// outermost SaveSubruns install, in insertion order.
	roots []*Node
}

// New creates an empty witness store for an automaton with the given number
// of states and start state.
func New(states, start uint32) *Run {
	return &Run{
		states:       states,
		start:        start,
		grafts:       make([]*Node, states),
		dependencies: make([]*Node, states),
	}
}

// States returns the number of states the store was sized for.
func (r *Run) States() uint32 {
	return r.states
}

// Start returns the automaton's start state.
func (r *Run) Start() uint32 {
	return r.start
}

// HasWitness reports whether state q has an installed witness. Once true for
// a given q, it is never false again.
func (r *Run) HasWitness(q uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grafts[q] != nil
}

// Witness returns the stored witness root for state q, or nil if none is
// installed yet.
func (r *Run) Witness(q uint32) *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grafts[q]
}

// DependencyRoot returns the root node under which the witness for q was
// discovered as an interior descendant, or nil if q was itself installed as
// an outermost root (or has no witness at all).
func (r *Run) DependencyRoot(q uint32) *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dependencies[q]
}

// Roots returns every node that was the outermost argument of a successful
// SaveSubruns call, in insertion order.
func (r *Run) Roots() []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Node, len(r.roots))
	copy(out, r.roots)
	return out
}

// SaveSubruns installs root as the witness for its own state if none is
// present yet, and additionally registers every interior descendant of root
// whose state has no witness yet, pointing its dependency at root. If the
// outermost state already had a witness, root is not retained anywhere and
// the caller keeps ownership of it.
//
// Returns true if root became the outermost witness for its state.
func (r *Run) SaveSubruns(root *Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.grafts[root.State] != nil {
		return false
	}
	r.grafts[root.State] = root
	r.roots = append(r.roots, root)
	r.saveInterior(root.Left, root)
	r.saveInterior(root.Right, root)
	return true
}

// saveInterior walks n and every interior descendant, registering any state
// that has no witness yet against dependency root d. Graft leaves are not
// descended into: the state they name is either already witnessed or will be
// witnessed by a later, independent SaveSubruns call.
func (r *Run) saveInterior(n, d *Node) {
	if n == nil || !n.Interior() {
		return
	}
	if r.grafts[n.State] == nil {
		r.grafts[n.State] = n
		r.dependencies[n.State] = d
	}
	r.saveInterior(n.Left, d)
	r.saveInterior(n.Right, d)
}

// Frontier appends to out the unresolved leaf states reachable from the
// witness of q: every graft leaf of grafts[q] contributes the state it
// names, expanded recursively through that state's own witness. It returns
// the extended slice.
func (r *Run) Frontier(q uint32, out []uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frontier(r.grafts[q], out)
}

func (r *Run) frontier(n *Node, out []uint32) []uint32 {
	if n == nil {
		return out
	}
	if n.Interior() {
		out = r.frontier(n.Left, out)
		out = r.frontier(n.Right, out)
		return out
	}
	// n is a graft leaf: its own witness, if not yet installed, contributes
	// its state directly; otherwise we continue unfolding through it.
	if r.grafts[n.State] == nil {
		return append(out, n.State)
	}
	return r.frontier(r.grafts[n.State], out)
}
