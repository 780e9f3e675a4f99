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

package print

import (
	"fmt"
	"strings"

	"github.com/optakt/rabinfind/automaton"
)

// AutomatonLogic renders a as a logic program: state/1, start/1 and
// transition/3 facts, followed by one l/2 and u/2 fact per element of each
// acceptance pair, indexed by the pair's position.
func AutomatonLogic(a *automaton.Automaton) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#const n = %d + 1.\n", a.States())
	fmt.Fprintf(&b, "state(0..%d).\n", a.States()-1)
	fmt.Fprintf(&b, "start(%d).\n", a.Start())

	for q := uint32(0); q < a.States(); q++ {
		ts := a.Transitions(q)
		for i, t := range ts {
			fmt.Fprintf(&b, "transition(%d,%d,%d).", q, t.Left, t.Right)
			if i == len(ts)-1 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
	}

	for idx, acc := range a.Acceptances() {
		for _, s := range acc.L.Elements() {
			fmt.Fprintf(&b, "l(%d,%d). ", idx, s)
		}
		b.WriteString("\n")
		for _, s := range acc.U.Elements() {
			fmt.Fprintf(&b, "u(%d,%d). ", idx, s)
		}
		b.WriteString("\n")
	}

	return b.String()
}
