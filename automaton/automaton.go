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

// Package automaton is the parser-facing API for a Rabin tree automaton: it
// validates the states a transition or acceptance pair refers to, normalizes
// acceptance pairs, and hands the whole thing off to the search engine on
// FindRun.
package automaton

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/optakt/rabinfind/bitset"
	"github.com/optakt/rabinfind/metrics"
	"github.com/optakt/rabinfind/run"
	"github.com/optakt/rabinfind/search"
)

// Acceptance is a Rabin acceptance pair (L, U), normalized so that U and L
// are disjoint.
type Acceptance struct {
	L *bitset.Set
	U *bitset.Set
}

func (a Acceptance) String() string {
	l, u := "none", "none"
	if a.L.Any() {
		l = strings.Trim(a.L.String(), "{}")
	}
	if a.U.Any() {
		u = strings.Trim(a.U.String(), "{}")
	}
	return fmt.Sprintf("( %s , %s )", l, u)
}

// Automaton is a Rabin tree automaton over states [0, States).
type Automaton struct {
	states      uint32
	start       uint32
	transitions [][]search.Transition
	conditions  []Acceptance
}

// New builds an automaton over n states, all initially unreachable and
// without transitions or acceptance conditions. The start state defaults to
// 0 and may be changed with SetStart.
func New(n uint32) *Automaton {
	return &Automaton{
		states:      n,
		transitions: make([][]search.Transition, n),
	}
}

// States returns the number of states in the automaton.
func (a *Automaton) States() uint32 {
	return a.states
}

// Start returns the start state.
func (a *Automaton) Start() uint32 {
	return a.start
}

// SetStart changes the start state. It returns ErrIllegalState if q is out
// of range.
func (a *Automaton) SetStart(q uint32) error {
	if !a.IsValidState(q) {
		return fmt.Errorf("start state %d: %w", q, ErrIllegalState)
	}
	a.start = q
	return nil
}

// IsValidState reports whether q names a state of the automaton.
func (a *Automaton) IsValidState(q uint32) bool {
	return q < a.states
}

// AddTransition records that labelling a node with state p is compatible
// with its left child being accepted from left and its right child from
// right. A state may have any number of transitions; the automaton accepts
// the union of what each admits.
func (a *Automaton) AddTransition(p, left, right uint32) error {
	var result *multierror.Error
	if !a.IsValidState(p) {
		result = multierror.Append(result, fmt.Errorf("parent state %d: %w", p, ErrIllegalState))
	}
	if !a.IsValidState(left) {
		result = multierror.Append(result, fmt.Errorf("left state %d: %w", left, ErrIllegalState))
	}
	if !a.IsValidState(right) {
		result = multierror.Append(result, fmt.Errorf("right state %d: %w", right, ErrIllegalState))
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	a.transitions[p] = append(a.transitions[p], search.Transition{Left: left, Right: right})
	return nil
}

// AddAcceptance adds a Rabin acceptance pair (l, u) to the automaton. u is
// normalized to exclude any state also present in l before being stored, per
// the usual Rabin pair convention that a branch may not simultaneously
// satisfy and violate the same pair. A pair whose u is empty after that
// normalization is dropped without error.
func (a *Automaton) AddAcceptance(l, u *bitset.Set) error {
	if l.Len() != uint(a.states) || u.Len() != uint(a.states) {
		return fmt.Errorf("acceptance set capacity must equal state count %d: %w", a.states, ErrIllegalState)
	}
	u = bitset.Difference(u, l)
	if u.None() {
		return nil
	}
	a.conditions = append(a.conditions, Acceptance{L: l.Clone(), U: u})
	return nil
}

// Transitions returns every transition recorded for state p.
func (a *Automaton) Transitions(p uint32) []search.Transition {
	return a.transitions[p]
}

// Pairs returns every acceptance pair as a search.Pair, the view the search
// engine consumes.
func (a *Automaton) Pairs() []search.Pair {
	pairs := make([]search.Pair, len(a.conditions))
	for i, c := range a.conditions {
		pairs[i] = search.Pair{L: c.L, U: c.U}
	}
	return pairs
}

// Acceptances returns the automaton's acceptance pairs.
func (a *Automaton) Acceptances() []Acceptance {
	return a.conditions
}

// HasTransitions reports whether state p has at least one recorded
// transition.
func (a *Automaton) HasTransitions(p uint32) bool {
	return len(a.transitions[p]) > 0
}

// String renders the human-readable text dump: "states := N", "start := s",
// a "transitions :=" block with one "p > qL qR, …" line per state that has
// at least one transition, and an "acceptances :=" block with one
// "( L-elements , U-elements )" line per pair.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states := %d\n", a.states)
	fmt.Fprintf(&b, "start := %d\n", a.start)

	hasTransitions := false
	for p := uint32(0); p < a.states; p++ {
		if len(a.transitions[p]) > 0 {
			hasTransitions = true
			break
		}
	}
	if hasTransitions {
		b.WriteString("transitions :=\n")
		for p := uint32(0); p < a.states; p++ {
			trs := a.transitions[p]
			if len(trs) == 0 {
				continue
			}
			b.WriteString("\t")
			for i, tr := range trs {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%d > %d %d", p, tr.Left, tr.Right)
			}
			b.WriteString("\n")
		}
	}

	if len(a.conditions) > 0 {
		b.WriteString("acceptances :=\n")
		for i, c := range a.conditions {
			fmt.Fprintf(&b, "\t%s", c)
			if i < len(a.conditions)-1 {
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// FindRun searches for a finite witness of the automaton's language being
// non-empty, using up to maxThreads worker goroutines. It returns the
// populated run.Run and a nil error when a witness for the start state was
// found; when the search exhausts itself without finding one, it returns a
// nil *run.Run together with ErrEmptyLanguage. maxThreads < 1
// is rejected with ErrInvalidThreads.
func (a *Automaton) FindRun(maxThreads int) (*run.Run, error) {
	return a.FindRunWithMetrics(maxThreads, nil)
}

// FindRunWithMetrics behaves like FindRun, additionally reporting search
// progress to m if it is non-nil.
func (a *Automaton) FindRunWithMetrics(maxThreads int, m *metrics.Search) (*run.Run, error) {
	if maxThreads < 1 {
		return nil, ErrInvalidThreads
	}

	engine := search.New(a)
	if m != nil {
		engine.UseMetrics(m)
	}
	found := engine.FindRun(maxThreads)
	if !found {
		return nil, ErrEmptyLanguage
	}
	return engine.Run(), nil
}
