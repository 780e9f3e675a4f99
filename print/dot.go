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

// Package print renders a run.Run as Graphviz dot source or as a small logic
// program, and an automaton.Automaton as the same logic program format.
package print

import (
	"fmt"
	"strings"

	"github.com/optakt/rabinfind/run"
)

// dotPrinter assigns each witness node a stable id the first time it is
// written, so that a graft leaf referencing a not-yet-printed subtree prints
// that subtree before pointing at it.
type dotPrinter struct {
	store *run.Run
	ids   map[*run.Node]int
	next  int
	b     strings.Builder
}

// Dot renders r, starting from the witness of its start state, as Graphviz
// dot source. The root is additionally styled shape = Mcircle; a graft leaf
// is drawn as a dotted edge to the node that witnesses its state; and each
// interior node gets an invisible i<id> alignment node and rank=same edge
// between its two children, so twin children line up at the same rank.
func Dot(r *run.Run) string {
	p := &dotPrinter{store: r, ids: make(map[*run.Node]int)}
	p.b.WriteString("digraph {\n")
	p.b.WriteString("    node [shape = circle]\n")
	root := r.Witness(r.Start())
	if root != nil {
		p.visit(root)
	}
	p.b.WriteString("}\n")
	return p.b.String()
}

// visit assigns n the next free id (or returns its existing one, if it was
// already reached as a dependency root) and renders it.
func (p *dotPrinter) visit(n *run.Node) int {
	if id, ok := p.ids[n]; ok {
		return id
	}
	id := p.next
	p.next++
	return p.render(n, id)
}

func (p *dotPrinter) render(n *run.Node, id int) int {
	p.ids[n] = id

	shape := ""
	if id == 0 {
		shape = ", shape = Mcircle"
	}
	fmt.Fprintf(&p.b, "    r%d [label = \"%d\"%s]\n", id, n.State, shape)

	if n.Interior() {
		left := p.next
		p.next++
		right := p.next
		p.next++

		fmt.Fprintf(&p.b, "    {rank = same r%d -> i%d -> r%d [style=invis]}\n", left, id, right)
		fmt.Fprintf(&p.b, "    i%d [label=\"\",width=.1,style=invis]\n", id)
		fmt.Fprintf(&p.b, "    r%d -> i%d [style=invis]\n", id, id)
		fmt.Fprintf(&p.b, "    r%d -> { r%d r%d }\n", id, left, right)

		p.render(n.Left, left)
		p.render(n.Right, right)
		return id
	}

	witness := p.store.Witness(n.State)
	if witness == nil {
		return id
	}
	owner := p.store.DependencyRoot(n.State)
	if owner == nil {
		owner = witness
	}
	p.visit(owner)
	fmt.Fprintf(&p.b, "    r%d -> r%d [style=\"dotted\"]\n", id, p.ids[witness])
	return id
}
