// Package block defines the block graph consumed by the code generator: nodes
// with literal fields, value and statement inputs, and a next-statement link.
package block

import (
	"strconv"
	"strings"
)

// InputKind distinguishes value inputs from nested statement chains.
type InputKind int

const (
	ValueInput InputKind = iota
	StatementInput
)

func (k InputKind) String() string {
	if k == StatementInput {
		return "statement"
	}
	return "value"
}

// Input is a named slot owning at most one child subtree.
type Input struct {
	Name  string
	Kind  InputKind
	Block *Node
}

// Mutation carries the per-kind shape data the editor stores alongside a
// block: procedure arguments, if/else-if arm counts, join item counts.
type Mutation struct {
	Args      []string
	ElseIf    int
	Else      bool
	HasReturn bool
	Items     int
}

// Node is one block of the program graph.
type Node struct {
	ID       string
	Kind     string
	Fields   map[string]string
	Inputs   []*Input
	Next     *Node
	Comment  string
	Mutation Mutation
	Disabled bool
}

// Workspace is the ordered list of top-level blocks.
type Workspace struct {
	Blocks []*Node
}

func (n *Node) Field(name string) string {
	if n == nil || n.Fields == nil {
		return ""
	}
	return n.Fields[name]
}

func (n *Node) Input(name string) *Input {
	if n == nil {
		return nil
	}
	for _, in := range n.Inputs {
		if in.Name == name {
			return in
		}
	}
	return nil
}

// Arity returns the number of numbered inputs prefix0, prefix1, ... the
// block carries: declared, or one past the highest index present when that
// is larger. Workspaces saved without a mutation still keep their inputs.
func (n *Node) Arity(declared int, prefixes ...string) int {
	if n == nil {
		return declared
	}
	count := declared
	for _, in := range n.Inputs {
		for _, p := range prefixes {
			if i, ok := inputIndex(in.Name, p); ok && i >= count {
				count = i + 1
			}
		}
	}
	return count
}

func inputIndex(name, prefix string) (int, bool) {
	digits, ok := strings.CutPrefix(name, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(digits)
	return i, err == nil
}

// InputBlock returns the block connected to the named input, or nil.
func (n *Node) InputBlock(name string) *Node {
	if in := n.Input(name); in != nil {
		return in.Block
	}
	return nil
}

// Walk visits n and everything reachable from it in evaluation order: the
// node itself, its inputs in declaration order, then its next chain. fn
// returning false prunes the subtree below that node (the next chain is
// still visited).
func (n *Node) Walk(fn func(*Node) bool) {
	for cur := n; cur != nil; cur = cur.Next {
		if !fn(cur) {
			continue
		}
		for _, in := range cur.Inputs {
			if in.Block != nil {
				in.Block.Walk(fn)
			}
		}
	}
}

// Walk visits every block of the workspace in top-level order.
func (ws *Workspace) Walk(fn func(*Node) bool) {
	for _, b := range ws.Blocks {
		b.Walk(fn)
	}
}

// Find returns the block with the given id.
func (ws *Workspace) Find(id string) *Node {
	var found *Node
	ws.Walk(func(n *Node) bool {
		if found == nil && n.ID == id {
			found = n
		}
		return found == nil
	})
	return found
}

// OfKind lists every block of the given kinds in walk order.
func (ws *Workspace) OfKind(kinds ...string) []*Node {
	var out []*Node
	ws.Walk(func(n *Node) bool {
		for _, k := range kinds {
			if n.Kind == k {
				out = append(out, n)
				break
			}
		}
		return true
	})
	return out
}

// NewNode is a convenience constructor used by tests and tools that build
// graphs in code.
func NewNode(id, kind string, fields map[string]string) *Node {
	return &Node{ID: id, Kind: kind, Fields: fields}
}

// SetValue connects child to a value input, replacing any prior child.
func (n *Node) SetValue(name string, child *Node) *Node {
	return n.setInput(name, ValueInput, child)
}

// SetStatement connects a statement chain to a statement input.
func (n *Node) SetStatement(name string, child *Node) *Node {
	return n.setInput(name, StatementInput, child)
}

func (n *Node) setInput(name string, kind InputKind, child *Node) *Node {
	if in := n.Input(name); in != nil {
		in.Kind, in.Block = kind, child
		return n
	}
	n.Inputs = append(n.Inputs, &Input{Name: name, Kind: kind, Block: child})
	return n
}

// Chain links nodes through their next pointers and returns the head.
func Chain(nodes ...*Node) *Node {
	for i := 0; i+1 < len(nodes); i++ {
		nodes[i].Next = nodes[i+1]
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
