// Package graph provides generic traversal visitors over any graph that
// can enumerate the neighbours of a vertex. Visitors own their queue and
// marked set and are driven by the caller, one node at a time; they never
// look inside the graph beyond Neighbors.
package graph
