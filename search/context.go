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
	"github.com/gammazero/deque"

	"github.com/optakt/rabinfind/bitset"
)

// context is the scratch state a single worker goroutine owns for the
// duration of one generation. It is never shared between goroutines, so none
// of its fields need synchronization; left and right are reused across
// fittingPieces calls to avoid reallocating a queue per transition.
type context struct {
	tmp   *bitset.Set
	left  *deque.Deque
	right *deque.Deque
}

func newContext(capacity uint32) *context {
	return &context{
		tmp:   bitset.New(uint(capacity)),
		left:  deque.New(),
		right: deque.New(),
	}
}

// candidates drains d into a freshly allocated slice, leaving d empty and
// ready for the next call.
func candidates(d *deque.Deque) []*piece {
	if d.Len() == 0 {
		return nil
	}
	out := make([]*piece, 0, d.Len())
	for d.Len() > 0 {
		out = append(out, d.PopFront().(*piece))
	}
	return out
}
