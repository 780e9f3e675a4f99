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

	"github.com/optakt/rabinfind/run"
)

// logicPrinter renders a witness tree as a small logic program: one
// has_state/2 fact per node, one parent/2 fact per edge, and one graft/2
// fact where a leaf continues into another state's witness.
type logicPrinter struct {
	store *run.Run
	ids   map[*run.Node]int
	next  int
	b     strings.Builder
}

// Logic renders r, starting from the witness of its start state, as a logic
// program.
func Logic(r *run.Run) string {
	p := &logicPrinter{store: r, ids: make(map[*run.Node]int)}
	root := r.Witness(r.Start())
	if root != nil {
		p.visit(root)
	}
	return p.b.String()
}

func (p *logicPrinter) visit(n *run.Node) int {
	if id, ok := p.ids[n]; ok {
		return id
	}
	id := p.next
	p.next++
	p.ids[n] = id

	fmt.Fprintf(&p.b, "has_state(%d,%d). ", id, n.State)

	if n.Interior() {
		fmt.Fprintf(&p.b, "parent(%d,%d).\n", id, p.next)
		p.visit(n.Left)
		p.b.WriteString("\n")
		fmt.Fprintf(&p.b, "parent(%d,%d).\n", id, p.next)
		p.visit(n.Right)
		p.b.WriteString("\n")
		return id
	}

	witness := p.store.Witness(n.State)
	if witness == nil {
		p.b.WriteString("\n")
		return id
	}
	owner := p.store.DependencyRoot(n.State)
	if owner == nil {
		owner = witness
	}
	p.visit(owner)
	fmt.Fprintf(&p.b, "graft(%d,%d).\n", id, p.ids[witness])
	return id
}
