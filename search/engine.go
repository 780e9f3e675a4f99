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

package search

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gammazero/deque"

	"github.com/optakt/rabinfind/bitset"
	"github.com/optakt/rabinfind/metrics"
	"github.com/optakt/rabinfind/run"
)

// Engine runs the bottom-up, height-indexed emptiness search against a
// Source and populates a run.Run with whatever witnesses it finds along the
// way, whether or not the start state ever closes.
type Engine struct {
	src    Source
	states uint32
	start  uint32
	pairs  []Pair

	store   *run.Run
	metrics *metrics.Search

	sentinels      []*piece        // per-state graft sentinel identity, fixed past construction
	sentinelHeight []atomic.Uint32 // per-state sentinel height, read and written across goroutines
	cur            [][]*piece      // cur[s]: candidate pieces rooted at s carried into this generation
	dst            [][]*piece      // dst[s]: pieces built during the generation in progress
}

// New builds an Engine over src. It does not start searching.
func New(src Source) *Engine {
	n := src.States()
	e := &Engine{
		src:            src,
		states:         n,
		start:          src.Start(),
		pairs:          src.Pairs(),
		store:          run.New(n, src.Start()),
		sentinels:      make([]*piece, n),
		sentinelHeight: make([]atomic.Uint32, n),
		cur:            make([][]*piece, n),
		dst:            make([][]*piece, n),
	}
	for s := uint32(0); s < n; s++ {
		e.sentinels[s] = sentinelPiece(n, s)
	}
	return e
}

// Run returns the witness store the engine populates. It may be consulted
// while a search is in progress.
func (e *Engine) Run() *run.Run {
	return e.store
}

// UseMetrics attaches a collector that FindRun reports generation, piece and
// witness counts and total duration to. It must be called before FindRun.
func (e *Engine) UseMetrics(m *metrics.Search) {
	e.metrics = m
}

// FindRun drives the search to completion: either the start state becomes
// witnessed, in which case it returns true, or the search exhausts itself
// after e.states generations without finding a witness for it and returns
// false. maxThreads bounds the number of worker goroutines used per
// generation; 1 runs the search single-threaded.
func (e *Engine) FindRun(maxThreads int) bool {
	if e.metrics == nil {
		return e.findRun(maxThreads)
	}
	var found bool
	e.metrics.Track(func() {
		found = e.findRun(maxThreads)
	})
	return found
}

func (e *Engine) findRun(maxThreads int) bool {
	e.seed()
	if e.store.HasWitness(e.start) {
		return true
	}

	for h := uint32(0); h < e.states; h++ {
		if e.metrics != nil {
			e.metrics.Generation()
		}
		e.runGeneration(h, maxThreads)
		e.closeGeneration(h)
		if e.store.HasWitness(e.start) {
			return true
		}
	}
	return e.store.HasWitness(e.start)
}

// seed populates cur[s] with the trivial generation-0 piece for every state
// that appears as the U-side of some acceptance pair.
func (e *Engine) seed() {
	for s := uint32(0); s < e.states; s++ {
		for _, pr := range e.pairs {
			if pr.U.Test(uint(s)) {
				e.cur[s] = append(e.cur[s], seedPiece(e.states, s))
				break
			}
		}
	}
}

// runGeneration builds dst[s] for every unwitnessed state s, using either a
// purely sequential loop or a bounded pool of worker goroutines, at most one
// of which ever touches a given state's dst slot during the generation.
func (e *Engine) runGeneration(h uint32, maxThreads int) {
	for s := range e.dst {
		e.dst[s] = nil
	}

	if maxThreads <= 1 {
		ctx := newContext(e.states)
		for s := uint32(0); s < e.states; s++ {
			if e.store.HasWitness(e.start) {
				return
			}
			if e.store.HasWitness(s) {
				continue
			}
			e.processState(ctx, s, h)
		}
		return
	}

	workers := maxThreads - 1
	if workers < 1 {
		workers = 1
	}
	if uint32(workers) > e.states {
		workers = int(e.states)
	}

	jobs := make(chan uint32)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			ctx := newContext(e.states)
			for s := range jobs {
				e.processState(ctx, s, h)
			}
		}()
	}

	for s := uint32(0); s < e.states; s++ {
		if e.store.HasWitness(e.start) {
			break
		}
		if e.store.HasWitness(s) {
			continue
		}
		jobs <- s
	}
	close(jobs)
	wg.Wait()
}

// processState explores every transition out of s, combining fitting left
// and right candidates, and writes the resulting pieces into dst[s]. It is
// never called concurrently for the same s within a generation, so dst[s]
// needs no locking.
func (e *Engine) processState(ctx *context, s, h uint32) {
	empty := newPiece(e.states, s)

	for _, tr := range e.src.Transitions(s) {
		left := e.fittingPieces(ctx, ctx.left, tr.Left, s, empty, e.cur[tr.Left], 0)
		for _, l := range left {
			minHeight := h
			if l.height == h {
				minHeight = 0
			}
			right := e.fittingPieces(ctx, ctx.right, tr.Right, s, l, e.cur[tr.Right], minHeight)
			for _, r := range right {
				p := combine(s, l, r)
				if e.metrics != nil {
					e.metrics.Pieces(1)
				}
				if p.nonlive.None() {
					node := unfold(p)
					if e.store.SaveSubruns(node) && e.metrics != nil {
						e.metrics.Witness()
					}
					e.sentinelHeight[s].Store(p.height)
					if e.store.HasWitness(e.start) {
						return
					}
					continue
				}
				e.dst[s] = append(e.dst[s], p)
			}
		}
	}
}

// fittingPieces returns the pieces through which side q of a transition out
// of parent can be completed, given the sibling already chosen for the other
// side (other, or the fresh empty piece with height 0 when computing the
// left side). If q is already closed — either witnessed in the store, or
// already among the states of a non-trivial other (its all set) — the only candidate is
// a fresh snapshot of the graft sentinel for q, at whatever height has been
// recorded for it so far, subject to that height meeting minHeight.
// Otherwise every piece in src is a candidate whose parent-labelled
// acceptance check passes. scratch is a per-side queue owned by ctx, used
// and left empty when this call returns.
func (e *Engine) fittingPieces(ctx *context, scratch *deque.Deque, q, parent uint32, other *piece, src []*piece, minHeight uint32) []*piece {
	closed := e.store.HasWitness(q) || (other.height > 0 && other.all.Test(uint(q)))
	if closed {
		height := e.sentinelHeight[q].Load()
		if height >= minHeight {
			return []*piece{e.sentinels[q].snapshot(height)}
		}
		return nil
	}

	for _, t := range src {
		if t.invalid || t.height < minHeight {
			continue
		}
		if t.internal.Test(uint(parent)) {
			continue
		}
		if !other.nonlive.Test(uint(parent)) && !t.nonlive.Test(uint(parent)) {
			scratch.PushBack(t)
			continue
		}
		ctx.tmp.ClearAll()
		ctx.tmp.Union(other.internal)
		ctx.tmp.Union(t.internal)
		ctx.tmp.Set(uint(parent))
		if e.acceptsAny(parent, ctx.tmp) {
			scratch.PushBack(t)
		}
	}
	return candidates(scratch)
}

// acceptsAny reports whether some Rabin pair (L, U) has parent in U and no
// state of internal in L.
func (e *Engine) acceptsAny(parent uint32, internal *bitset.Set) bool {
	for _, pr := range e.pairs {
		if !pr.U.Test(uint(parent)) {
			continue
		}
		if internal.Intersects(pr.L) {
			continue
		}
		return true
	}
	return false
}

// closeGeneration merges the pieces built this generation into the
// candidate lists, bumps the graft sentinel of any state that became
// witnessed without ever closing a piece of its own, sorts every list by the
// total order, discards redundant and dead pieces, and propagates the
// invalidation of a piece to every composite piece built on top of it.
func (e *Engine) closeGeneration(h uint32) {
	for s := uint32(0); s < e.states; s++ {
		if e.store.HasWitness(s) && e.sentinelHeight[s].Load() == 0 {
			e.sentinelHeight[s].Store(h + 1)
		}
		e.cur[s] = append(e.cur[s], e.dst[s]...)
		sort.SliceStable(e.cur[s], func(i, j int) bool {
			return less(e.cur[s][i], e.cur[s][j])
		})
		for i, p := range e.cur[s] {
			switch {
			case e.store.HasWitness(p.state) && !p.graft:
				p.invalid = true
			case i > 0 && similar(p, e.cur[s][i-1]):
				p.invalid = true
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for s := uint32(0); s < e.states; s++ {
			for _, p := range e.cur[s] {
				if p.invalid || p.left == nil {
					continue
				}
				if p.left.invalid || p.right.invalid {
					p.invalid = true
					changed = true
				}
			}
		}
	}

	for s := uint32(0); s < e.states; s++ {
		kept := e.cur[s][:0]
		for _, p := range e.cur[s] {
			if !p.invalid {
				kept = append(kept, p)
			}
		}
		e.cur[s] = kept
	}
}
