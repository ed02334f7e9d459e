package graph

import (
	"fmt"
	"iter"

	"github.com/chazu/voxtrack/pkg/errs"
)

// DepthFirstVisitor walks a graph depth first. It shares the contract of
// BreadthFirstVisitor (each reachable vertex exactly once, caller-driven)
// but keeps pending nodes on a stack, so Distance is the depth in the
// discovery tree rather than the graph distance to the seed.
type DepthFirstVisitor[V comparable] struct {
	graph  Graph[V]
	stack  []Node[V]
	marked map[V]struct{}
}

// NewDepthFirstVisitor starts a depth-first traversal of g at seed.
func NewDepthFirstVisitor[V comparable](g Graph[V], seed V) *DepthFirstVisitor[V] {
	return &DepthFirstVisitor[V]{
		graph:  g,
		stack:  []Node[V]{{Vertex: seed}},
		marked: map[V]struct{}{seed: {}},
	}
}

// Finished reports whether no node is left to visit.
func (v *DepthFirstVisitor[V]) Finished() bool {
	return len(v.stack) == 0
}

// Current returns the node on top of the stack.
func (v *DepthFirstVisitor[V]) Current() (Node[V], error) {
	if v.Finished() {
		return Node[V]{}, errs.Precondition("graph.DepthFirstVisitor.Current", "traversal finished")
	}
	return v.stack[len(v.stack)-1], nil
}

// Expand consumes the current node and pushes its unmarked neighbours so
// that the first neighbour is visited next.
func (v *DepthFirstVisitor[V]) Expand() error {
	if v.Finished() {
		return errs.Precondition("graph.DepthFirstVisitor.Expand", "traversal finished")
	}
	top := len(v.stack) - 1
	n := v.stack[top]
	nbrs, err := v.graph.Neighbors(n.Vertex)
	if err != nil {
		return fmt.Errorf("graph: expanding %v: %w", n.Vertex, err)
	}
	v.stack = v.stack[:top]
	for i := len(nbrs) - 1; i >= 0; i-- {
		w := nbrs[i]
		if _, seen := v.marked[w]; seen {
			continue
		}
		v.marked[w] = struct{}{}
		v.stack = append(v.stack, Node[V]{Vertex: w, Distance: n.Distance + 1})
	}
	return nil
}

// Ignore consumes the current node without looking at its neighbours.
func (v *DepthFirstVisitor[V]) Ignore() error {
	if v.Finished() {
		return errs.Precondition("graph.DepthFirstVisitor.Ignore", "traversal finished")
	}
	v.stack = v.stack[:len(v.stack)-1]
	return nil
}

// Terminate drops every pending node.
func (v *DepthFirstVisitor[V]) Terminate() {
	v.stack = v.stack[:0]
}

// Marked reports whether w has been reached.
func (v *DepthFirstVisitor[V]) Marked(w V) bool {
	_, ok := v.marked[w]
	return ok
}

// MarkedCount returns the number of vertices reached so far.
func (v *DepthFirstVisitor[V]) MarkedCount() int {
	return len(v.marked)
}

// All drives the visitor to the end; see BreadthFirstVisitor.All.
func (v *DepthFirstVisitor[V]) All() iter.Seq2[Node[V], error] {
	return func(yield func(Node[V], error) bool) {
		for !v.Finished() {
			if !yield(v.stack[len(v.stack)-1], nil) {
				return
			}
			if err := v.Expand(); err != nil {
				yield(Node[V]{}, err)
				return
			}
		}
	}
}
