package graph

import "fmt"

// Graph is anything able to enumerate the neighbours of a vertex.
// Neighbors may fail, for instance when a lazily computed graph detects an
// inconsistent configuration; visitors surface such errors unchanged.
type Graph[V comparable] interface {
	Neighbors(v V) ([]V, error)
}

// AdjacencyList is an explicit graph stored as a map from each vertex to
// its neighbours. Unknown vertices are an error.
type AdjacencyList[V comparable] map[V][]V

// Neighbors returns the stored neighbours of v.
func (g AdjacencyList[V]) Neighbors(v V) ([]V, error) {
	nbrs, ok := g[v]
	if !ok {
		return nil, fmt.Errorf("graph: unknown vertex %v", v)
	}
	return nbrs, nil
}

// AddEdge records an undirected edge between a and b.
func (g AdjacencyList[V]) AddEdge(a, b V) {
	g[a] = append(g[a], b)
	g[b] = append(g[b], a)
}

// Func adapts a neighbour function to Graph.
type Func[V comparable] func(v V) ([]V, error)

// Neighbors calls f(v).
func (f Func[V]) Neighbors(v V) ([]V, error) {
	return f(v)
}
