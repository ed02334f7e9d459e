// Package topology extracts and walks digital boundaries.
//
// Given a Khalimsky space and a membership predicate, a boundary element
// (bel) is a surfel whose direct incident spel is inside the shape and
// whose indirect incident spel is outside. The Tracker computes the
// neighbouring bels of any bel on demand, so a DigitalSurface built on it
// can be traversed by the graph visitors without ever materialising the
// whole boundary. FindABel provides a seed.
package topology
