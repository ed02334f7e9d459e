package graph

import (
	"fmt"
	"iter"
	"maps"

	"github.com/chazu/voxtrack/pkg/errs"
)

// compactThreshold is the number of consumed queue slots after which the
// queue is compacted once they outnumber the pending ones.
const compactThreshold = 256

// BreadthFirstVisitor walks a graph in breadth-first order. Every vertex
// reachable from the seeds is produced exactly once, in non-decreasing
// distance; within one layer the order is the discovery order.
//
// The visitor is Active while its queue is non-empty and Finished
// otherwise. Terminate finishes it on demand. A visitor is not safe for
// concurrent use, but several visitors may share one read-only graph.
type BreadthFirstVisitor[V comparable] struct {
	graph  Graph[V]
	queue  []Node[V]
	head   int
	marked map[V]struct{}
}

// NewBreadthFirstVisitor starts a traversal of g at seed (distance 0).
func NewBreadthFirstVisitor[V comparable](g Graph[V], seed V) *BreadthFirstVisitor[V] {
	return NewBreadthFirstVisitorFrom(g, []V{seed})
}

// NewBreadthFirstVisitorFrom starts a traversal from several seeds, all at
// distance 0. Duplicate seeds are visited once.
func NewBreadthFirstVisitorFrom[V comparable](g Graph[V], seeds []V) *BreadthFirstVisitor[V] {
	v := &BreadthFirstVisitor[V]{
		graph:  g,
		queue:  make([]Node[V], 0, len(seeds)),
		marked: make(map[V]struct{}, len(seeds)),
	}
	for _, s := range seeds {
		if _, ok := v.marked[s]; ok {
			continue
		}
		v.marked[s] = struct{}{}
		v.queue = append(v.queue, Node[V]{Vertex: s})
	}
	return v
}

// Finished reports whether no node is left to visit.
func (v *BreadthFirstVisitor[V]) Finished() bool {
	return v.head == len(v.queue)
}

// Current returns the node at the front of the queue.
func (v *BreadthFirstVisitor[V]) Current() (Node[V], error) {
	if v.Finished() {
		return Node[V]{}, errs.Precondition("graph.BreadthFirstVisitor.Current", "traversal finished")
	}
	return v.queue[v.head], nil
}

// Expand consumes the current node and enqueues its unmarked neighbours at
// the next distance. When the graph fails to enumerate the neighbours the
// error is returned and the visitor is left unchanged.
func (v *BreadthFirstVisitor[V]) Expand() error {
	return v.ExpandFunc(nil)
}

// ExpandFunc is Expand restricted to the neighbours accepted by accept.
// Rejected neighbours stay unmarked. A nil accept accepts everything.
func (v *BreadthFirstVisitor[V]) ExpandFunc(accept func(V) bool) error {
	if v.Finished() {
		return errs.Precondition("graph.BreadthFirstVisitor.Expand", "traversal finished")
	}
	n := v.queue[v.head]
	nbrs, err := v.graph.Neighbors(n.Vertex)
	if err != nil {
		return fmt.Errorf("graph: expanding %v: %w", n.Vertex, err)
	}
	v.pop()
	for _, w := range nbrs {
		if _, seen := v.marked[w]; seen {
			continue
		}
		if accept != nil && !accept(w) {
			continue
		}
		v.marked[w] = struct{}{}
		v.queue = append(v.queue, Node[V]{Vertex: w, Distance: n.Distance + 1})
	}
	return nil
}

// Ignore consumes the current node without looking at its neighbours.
func (v *BreadthFirstVisitor[V]) Ignore() error {
	if v.Finished() {
		return errs.Precondition("graph.BreadthFirstVisitor.Ignore", "traversal finished")
	}
	v.pop()
	return nil
}

// Terminate drops every pending node. The visitor is finished afterwards;
// the marked set is kept.
func (v *BreadthFirstVisitor[V]) Terminate() {
	clear(v.queue)
	v.queue = v.queue[:0]
	v.head = 0
}

// Marked reports whether w has been reached, visited or pending.
func (v *BreadthFirstVisitor[V]) Marked(w V) bool {
	_, ok := v.marked[w]
	return ok
}

// MarkedCount returns the number of vertices reached so far.
func (v *BreadthFirstVisitor[V]) MarkedCount() int {
	return len(v.marked)
}

// MarkedVertices yields the reached vertices in unspecified order.
func (v *BreadthFirstVisitor[V]) MarkedVertices() iter.Seq[V] {
	return maps.Keys(v.marked)
}

// Pending returns the number of queued nodes, the current one included.
func (v *BreadthFirstVisitor[V]) Pending() int {
	return len(v.queue) - v.head
}

// All drives the visitor to the end, yielding each node before expanding
// it. Iteration stops at the first expansion error, which is yielded with
// a zero node. Breaking out of the loop leaves the last yielded node
// current and unexpanded.
func (v *BreadthFirstVisitor[V]) All() iter.Seq2[Node[V], error] {
	return func(yield func(Node[V], error) bool) {
		for !v.Finished() {
			if !yield(v.queue[v.head], nil) {
				return
			}
			if err := v.Expand(); err != nil {
				yield(Node[V]{}, err)
				return
			}
		}
	}
}

func (v *BreadthFirstVisitor[V]) pop() {
	var zero Node[V]
	v.queue[v.head] = zero
	v.head++
	if v.head >= compactThreshold && 2*v.head >= len(v.queue) {
		n := copy(v.queue, v.queue[v.head:])
		clear(v.queue[n:])
		v.queue = v.queue[:n]
		v.head = 0
	}
}
