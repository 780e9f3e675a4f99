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

// Package search implements the bottom-up, height-indexed emptiness search
// for Rabin tree automata: it grows candidate partial subtrees ("pieces")
// generation by generation and folds the ones that close into a complete
// accepted cycle into the run.Run witness store.
package search

import (
	"github.com/optakt/rabinfind/bitset"
	"github.com/optakt/rabinfind/run"
)

// Transition is a binary transition (p, left, right): from state p, the
// automaton may label the current node p and require its children to be
// accepted from left and right respectively.
type Transition struct {
	Left  uint32
	Right uint32
}

// Pair is a normalized Rabin acceptance pair: U is guaranteed disjoint from
// L, and non-empty.
type Pair struct {
	L *bitset.Set
	U *bitset.Set
}

// Source is the read-only view of an automaton the search engine operates
// over. automaton.Automaton implements it.
type Source interface {
	States() uint32
	Start() uint32
	Transitions(state uint32) []Transition
	Pairs() []Pair
}

// piece is a candidate partial subtree rooted at State, built bottom-up.
// A piece with no children is either a graft reference to an
// already-witnessed state (Graft true) or a trivial seed piece (Graft
// false, Nonlive containing only State). A piece with both children set was
// produced by combine and, once Nonlive is empty, is folded into the run and
// discarded rather than kept for future combination.
type piece struct {
	state   uint32
	graft   bool
	height  uint32
	invalid bool

	internal *bitset.Set // states at non-leaf positions
	nonlive  *bitset.Set // leaf states with no witness yet
	all      *bitset.Set // internal ∪ leaf states

	left, right *piece
}

func newPiece(capacity uint32, state uint32) *piece {
	return &piece{
		state:    state,
		internal: bitset.New(uint(capacity)),
		nonlive:  bitset.New(uint(capacity)),
		all:      bitset.New(uint(capacity)),
	}
}

// seedPiece builds the trivial generation-0 piece for state s: a single
// unresolved leaf.
func seedPiece(capacity uint32, s uint32) *piece {
	p := newPiece(capacity, s)
	p.nonlive.Set(uint(s))
	p.all.Set(uint(s))
	return p
}

// sentinelPiece builds the template for the graft sentinel of state q: a
// piece representing "continue as the already-proven witness of q". Its
// height varies over the life of a search and, since different states'
// sentinels are read and written from different worker goroutines, is kept
// out of this struct entirely; snapshot builds the *piece an Engine actually
// hands out, stamped with whatever height applies at the time.
func sentinelPiece(capacity uint32, q uint32) *piece {
	p := newPiece(capacity, q)
	p.graft = true
	p.all.Set(uint(q))
	return p
}

// snapshot returns a fresh piece carrying sentinel's fixed identity (state,
// graft, internal/nonlive/all — all read-only past construction) at the
// given height. Handing out an independent copy, rather than mutating and
// sharing one sentinel piece, is what lets height move outside any lock.
func (p *piece) snapshot(height uint32) *piece {
	return &piece{
		state:    p.state,
		graft:    p.graft,
		height:   height,
		internal: p.internal,
		nonlive:  p.nonlive,
		all:      p.all,
	}
}

// combine builds the piece obtained by labelling the current node s with
// children left and right.
func combine(s uint32, left, right *piece) *piece {
	height := left.height
	if right.height > height {
		height = right.height
	}
	height++

	nonlive := bitset.Union(left.nonlive, right.nonlive)
	nonlive.Reset(uint(s))

	p := &piece{
		state:   s,
		height:  height,
		nonlive: nonlive,
		left:    left,
		right:   right,
	}
	if nonlive.None() {
		p.graft = true
		return p
	}

	internal := bitset.Union(left.internal, right.internal)
	internal.Set(uint(s))
	all := bitset.Union(left.all, right.all)
	all.Set(uint(s))
	p.internal = internal
	p.all = all
	return p
}

// unfold turns a piece into the corresponding run.Node tree: a piece with no
// children becomes a graft leaf, a piece with both children becomes a binary
// node whose children are recursively unfolded.
func unfold(p *piece) *run.Node {
	if p.left == nil && p.right == nil {
		return run.Leaf(p.state)
	}
	return run.Branch(p.state, unfold(p.left), unfold(p.right))
}

// less implements the total order of §3: lexicographic on
// (graft, state, height, internal, nonlive, all). The owner-run identity is
// omitted because a single Engine only ever populates one run.Run.
func less(a, b *piece) bool {
	if a.graft != b.graft {
		return !a.graft
	}
	if a.state != b.state {
		return a.state < b.state
	}
	if a.height != b.height {
		return a.height < b.height
	}
	if c := a.internal.Compare(b.internal); c != 0 {
		return c < 0
	}
	if c := a.nonlive.Compare(b.nonlive); c != 0 {
		return c < 0
	}
	return a.all.Compare(b.all) < 0
}

// similar reports whether a and b agree on everything except height: such
// pieces are redundant, and only the smaller by the total order is kept.
func similar(a, b *piece) bool {
	return a.state == b.state &&
		a.graft == b.graft &&
		a.internal.Equal(b.internal) &&
		a.nonlive.Equal(b.nonlive) &&
		a.all.Equal(b.all)
}
