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

// Package bitset provides a dynamic, fixed-capacity bit vector over
// non-negative integer indices, used throughout the search engine to track
// sets of automaton states without the overhead of a map.
package bitset

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Set is a bit vector over the range [0, capacity). All sets compared or
// combined with one another must share the same capacity; the search engine
// enforces this by deriving every set from the automaton's state count.
type Set struct {
	bits *bitset.BitSet
}

// New returns an empty set with room for indices in [0, capacity).
func New(capacity uint) *Set {
	return &Set{bits: bitset.New(capacity)}
}

// Of returns a set containing exactly the given indices, sized to hold up to
// capacity.
func Of(capacity uint, indices ...uint) *Set {
	s := New(capacity)
	for _, i := range indices {
		s.Set(i)
	}
	return s
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	return &Set{bits: s.bits.Clone()}
}

// Set marks index i as present.
func (s *Set) Set(i uint) {
	s.bits.Set(i)
}

// Reset marks index i as absent.
func (s *Set) Reset(i uint) {
	s.bits.Clear(i)
}

// ClearAll empties s, keeping its capacity, so it can be reused as scratch
// space instead of being reallocated.
func (s *Set) ClearAll() {
	s.bits.ClearAll()
}

// Test reports whether index i is present.
func (s *Set) Test(i uint) bool {
	return s.bits.Test(i)
}

// TestAndSet reports whether index i was present, then marks it present.
func (s *Set) TestAndSet(i uint) bool {
	was := s.bits.Test(i)
	s.bits.Set(i)
	return was
}

// Union adds every index present in other to s, in place.
func (s *Set) Union(other *Set) {
	s.bits.InPlaceUnion(other.bits)
}

// Difference removes every index present in other from s, in place.
func (s *Set) Difference(other *Set) {
	s.bits.InPlaceDifference(other.bits)
}

// Intersects reports whether s and other share at least one index.
func (s *Set) Intersects(other *Set) bool {
	return s.bits.IntersectionCardinality(other.bits) > 0
}

// Any reports whether s has at least one index set.
func (s *Set) Any() bool {
	return s.bits.Any()
}

// None reports whether s has no index set.
func (s *Set) None() bool {
	return s.bits.None()
}

// Len returns the capacity of s.
func (s *Set) Len() uint {
	return s.bits.Len()
}

// Count returns the number of indices set.
func (s *Set) Count() uint {
	return s.bits.Count()
}

// Equal reports whether s and other contain the same indices.
func (s *Set) Equal(other *Set) bool {
	return s.bits.Equal(other.bits)
}

// Elements returns the set indices in ascending order.
func (s *Set) Elements() []uint {
	elems := make([]uint, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		elems = append(elems, i)
	}
	return elems
}

// Union returns a new set holding the union of a and b. Both must share the
// same capacity.
func Union(a, b *Set) *Set {
	r := a.Clone()
	r.Union(b)
	return r
}

// Difference returns a new set holding a minus b. Both must share the same
// capacity.
func Difference(a, b *Set) *Set {
	r := a.Clone()
	r.Difference(b)
	return r
}

// Compare orders two sets of equal capacity lexicographically, treating the
// highest index as the most significant bit: it returns -1, 0 or 1 as s is
// less than, equal to, or greater than other. Sets are expected to share a
// capacity; comparison walks down from the larger of the two.
func (s *Set) Compare(other *Set) int {
	n := s.bits.Len()
	if other.bits.Len() > n {
		n = other.bits.Len()
	}
	for n > 0 {
		n--
		a, b := s.bits.Test(n), other.bits.Test(n)
		if a == b {
			continue
		}
		if a {
			return 1
		}
		return -1
	}
	return 0
}

// String renders the set as its sorted element list, e.g. "{0 2 5}".
func (s *Set) String() string {
	elems := s.Elements()
	strs := make([]string, len(elems))
	for i, e := range elems {
		strs[i] = fmt.Sprintf("%d", e)
	}
	return "{" + strings.Join(strs, " ") + "}"
}
