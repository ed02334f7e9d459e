package graph

// Node is a vertex produced by a visitor together with its distance, in
// edges, from the nearest seed along the traversal tree.
type Node[V comparable] struct {
	Vertex   V
	Distance uint
}
