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

// Package run holds the witness data structure that the search engine
// populates: a forest of binary tree nodes, folded through graft leaves, that
// represents an accepted infinite tree in finite form.
package run

import "fmt"

// Node is a node of the witness tree. A non-graft node always has both Left
// and Right set (it is binary); a graft node has neither, and its State
// names the automaton state whose own witness continues the branch.
type Node struct {
	State uint32
	Left  *Node
	Right *Node
	Graft bool
}

// Leaf builds a graft leaf referencing state q.
func Leaf(q uint32) *Node {
	return &Node{State: q, Graft: true}
}

// Branch builds an interior node with the two given children.
func Branch(q uint32, left, right *Node) *Node {
	return &Node{State: q, Left: left, Right: right}
}

// Interior reports whether n has two children, i.e. is not a graft leaf.
func (n *Node) Interior() bool {
	return n.Left != nil && n.Right != nil
}

func (n *Node) String() string {
	if n.Graft {
		return fmt.Sprintf("graft(%d)", n.State)
	}
	return fmt.Sprintf("node(%d)", n.State)
}
