package graph

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/chazu/voxtrack/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid returns the 4-connected w×h grid graph over vertex ids y*w+x.
func grid(w, h int) AdjacencyList[int] {
	g := AdjacencyList[int]{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := y*w + x
			if _, ok := g[id]; !ok {
				g[id] = nil
			}
			if x+1 < w {
				g.AddEdge(id, id+1)
			}
			if y+1 < h {
				g.AddEdge(id, id+w)
			}
		}
	}
	return g
}

// distances computes reference BFS distances with a plain queue.
func distances(g AdjacencyList[int], seed int) map[int]uint {
	d := map[int]uint{seed: 0}
	q := []int{seed}
	for len(q) > 0 {
		v := q[0]
		q = q[1:]
		for _, w := range g[v] {
			if _, ok := d[w]; !ok {
				d[w] = d[v] + 1
				q = append(q, w)
			}
		}
	}
	return d
}

func TestAdjacencyListUnknownVertex(t *testing.T) {
	g := AdjacencyList[string]{}
	g.AddEdge("a", "b")
	_, err := g.Neighbors("c")
	assert.Error(t, err)
	nbrs, err := g.Neighbors("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, nbrs)
}

func TestBreadthFirstVisitsEachVertexOnceInLayers(t *testing.T) {
	g := grid(7, 5)
	want := distances(g, 10)

	v := NewBreadthFirstVisitor[int](g, 10)
	seen := map[int]uint{}
	var last uint
	for !v.Finished() {
		n, err := v.Current()
		require.NoError(t, err)
		_, dup := seen[n.Vertex]
		require.False(t, dup, "vertex %d produced twice", n.Vertex)
		require.GreaterOrEqual(t, n.Distance, last, "distance decreased at %d", n.Vertex)
		last = n.Distance
		seen[n.Vertex] = n.Distance
		require.NoError(t, v.Expand())
	}
	assert.Equal(t, want, seen)
	assert.Equal(t, len(g), v.MarkedCount())
}

func TestBreadthFirstLayeringOnRandomGraphs(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 20; trial++ {
		n := 5 + r.IntN(60)
		g := AdjacencyList[int]{}
		for i := 0; i < n; i++ {
			g[i] = nil
		}
		for e := 0; e < 2*n; e++ {
			g.AddEdge(r.IntN(n), r.IntN(n))
		}
		want := distances(g, 0)

		got := map[int]uint{}
		for node, err := range NewBreadthFirstVisitor[int](g, 0).All() {
			require.NoError(t, err)
			got[node.Vertex] = node.Distance
		}
		assert.Equal(t, want, got, "trial %d", trial)
	}
}

func TestBreadthFirstWithinLayerOrderIsDiscoveryOrder(t *testing.T) {
	g := AdjacencyList[string]{
		"root": {"c", "a", "b"},
		"a":    {"root", "z"},
		"b":    {"root", "y"},
		"c":    {"root", "x"},
		"x":    {"c"},
		"y":    {"b"},
		"z":    {"a"},
	}
	var order []string
	for n, err := range NewBreadthFirstVisitor[string](g, "root").All() {
		require.NoError(t, err)
		order = append(order, n.Vertex)
	}
	assert.Equal(t, []string{"root", "c", "a", "b", "x", "z", "y"}, order)
}

func TestBreadthFirstCurrentOnFinished(t *testing.T) {
	g := AdjacencyList[int]{1: nil}
	v := NewBreadthFirstVisitor[int](g, 1)
	n, err := v.Current()
	require.NoError(t, err)
	assert.Equal(t, Node[int]{Vertex: 1}, n)

	require.NoError(t, v.Expand())
	assert.True(t, v.Finished())

	_, err = v.Current()
	assert.True(t, errors.Is(err, errs.ErrPrecondition))
	assert.True(t, errors.Is(v.Expand(), errs.ErrPrecondition))
	assert.True(t, errors.Is(v.Ignore(), errs.ErrPrecondition))
}

func TestBreadthFirstExpandErrorLeavesStateUnchanged(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	g := Func[int](func(v int) ([]int, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return []int{v + 1}, nil
	})
	v := NewBreadthFirstVisitor[int](g, 0)

	err := v.Expand()
	require.ErrorIs(t, err, boom)
	n, err := v.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, n.Vertex)
	assert.Equal(t, 1, v.Pending())

	require.NoError(t, v.Expand())
	n, err = v.Current()
	require.NoError(t, err)
	assert.Equal(t, Node[int]{Vertex: 1, Distance: 1}, n)
}

func TestBreadthFirstAllStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	g := Func[int](func(v int) ([]int, error) {
		if v == 2 {
			return nil, boom
		}
		return []int{v + 1}, nil
	})
	var visited []int
	var got error
	for n, err := range NewBreadthFirstVisitor[int](g, 0).All() {
		if err != nil {
			got = err
			break
		}
		visited = append(visited, n.Vertex)
	}
	assert.Equal(t, []int{0, 1, 2}, visited)
	assert.ErrorIs(t, got, boom)
}

func TestBreadthFirstBreakKeepsCurrent(t *testing.T) {
	g := grid(3, 3)
	v := NewBreadthFirstVisitor[int](g, 0)
	count := 0
	for range v.All() {
		count++
		if count == 3 {
			break
		}
	}
	assert.False(t, v.Finished())
	n, err := v.Current()
	require.NoError(t, err)
	assert.Equal(t, uint(1), n.Distance)
}

func TestBreadthFirstIgnoreAndTerminate(t *testing.T) {
	g := grid(4, 1) // path 0-1-2-3
	v := NewBreadthFirstVisitor[int](g, 0)
	require.NoError(t, v.Ignore())
	assert.True(t, v.Finished(), "ignoring the seed leaves nothing to visit")
	assert.True(t, v.Marked(0))
	assert.False(t, v.Marked(1))

	v = NewBreadthFirstVisitor[int](g, 0)
	require.NoError(t, v.Expand())
	assert.False(t, v.Finished())
	v.Terminate()
	assert.True(t, v.Finished())
	assert.Equal(t, 2, v.MarkedCount())
}

func TestBreadthFirstExpandFunc(t *testing.T) {
	g := grid(5, 5)
	v := NewBreadthFirstVisitor[int](g, 0)
	onlyFirstRow := func(w int) bool { return w < 5 }
	var got []int
	for !v.Finished() {
		n, err := v.Current()
		require.NoError(t, err)
		got = append(got, n.Vertex)
		require.NoError(t, v.ExpandFunc(onlyFirstRow))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.False(t, v.Marked(5))
}

func TestBreadthFirstMultipleSeeds(t *testing.T) {
	g := grid(5, 1)
	v := NewBreadthFirstVisitorFrom[int](g, []int{0, 4, 0})
	got := map[int]uint{}
	for n, err := range v.All() {
		require.NoError(t, err)
		got[n.Vertex] = n.Distance
	}
	assert.Equal(t, map[int]uint{0: 0, 4: 0, 1: 1, 3: 1, 2: 2}, got)

	marked := map[int]bool{}
	for w := range v.MarkedVertices() {
		marked[w] = true
	}
	assert.Len(t, marked, 5)
}

func TestBreadthFirstCompactsLongQueues(t *testing.T) {
	g := grid(60, 60)
	count := 0
	for _, err := range NewBreadthFirstVisitor[int](g, 0).All() {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 3600, count)
}

func TestDepthFirstVisitsEachVertexOnce(t *testing.T) {
	g := grid(6, 6)
	v := NewDepthFirstVisitor[int](g, 0)
	seen := map[int]bool{}
	for n, err := range v.All() {
		require.NoError(t, err)
		require.False(t, seen[n.Vertex], "vertex %d produced twice", n.Vertex)
		seen[n.Vertex] = true
	}
	assert.Len(t, seen, 36)
	_, err := v.Current()
	assert.True(t, errors.Is(err, errs.ErrPrecondition))
}

func TestDepthFirstOrder(t *testing.T) {
	g := AdjacencyList[string]{
		"root": {"a", "b"},
		"a":    {"root", "a1"},
		"a1":   {"a"},
		"b":    {"root"},
	}
	var order []string
	var depth []uint
	for n, err := range NewDepthFirstVisitor[string](g, "root").All() {
		require.NoError(t, err)
		order = append(order, n.Vertex)
		depth = append(depth, n.Distance)
	}
	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)
	assert.Equal(t, []uint{0, 1, 2, 1}, depth)
}

func TestDepthFirstIgnoreAndTerminate(t *testing.T) {
	g := grid(3, 1)
	v := NewDepthFirstVisitor[int](g, 1)
	require.NoError(t, v.Expand())
	assert.Equal(t, 3, v.MarkedCount())
	require.NoError(t, v.Ignore())
	v.Terminate()
	assert.True(t, v.Finished())
	assert.True(t, errors.Is(v.Ignore(), errs.ErrPrecondition))
}
