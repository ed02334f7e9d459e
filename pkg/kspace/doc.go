// Package kspace implements a Khalimsky-style cellular space: an
// n-dimensional grid in which points, edges, faces and higher cells
// coexist in one integer lattice of doubled coordinates.
//
// A digital point p is the spel with Khalimsky coordinates 2p+1. A cell's
// dimension is the number of its odd coordinates, so coordinate parity
// alone tells a pointel from a linel, surfel or spel. Signed cells carry
// an orientation; the signed incidence relations are coherent, meaning
// the boundary of a boundary is zero.
//
// A Space is immutable once built and safe for concurrent reads.
package kspace
