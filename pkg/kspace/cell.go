package kspace

import (
	"fmt"
	"strings"
)

// MaxDimension is the largest supported space dimension.
const MaxDimension = 4

// Point is a digital point or a vector of Khalimsky coordinates. Only the
// first Dimension() components are meaningful; the rest stay zero so that
// points compare and hash consistently.
type Point [MaxDimension]int

// Pt builds a Point from its leading coordinates.
// It panics when given more than MaxDimension coordinates.
func Pt(coords ...int) Point {
	if len(coords) > MaxDimension {
		panic(fmt.Sprintf("kspace: %d coordinates exceed MaxDimension %d", len(coords), MaxDimension))
	}
	var p Point
	copy(p[:], coords)
	return p
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	for i := range p {
		p[i] += q[i]
	}
	return p
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	for i := range p {
		p[i] -= q[i]
	}
	return p
}

// Unit returns the unit vector along axis scaled by step.
func Unit(axis, step int) Point {
	var p Point
	p[axis] = step
	return p
}

// Sign is the orientation of a signed cell.
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = 1
)

// Opposite returns the reversed orientation.
func (s Sign) Opposite() Sign {
	return -s
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "?"
	}
}

// Cell is an unsigned cell given by its Khalimsky coordinates.
type Cell struct {
	KCoords Point
}

// SCell is a signed (oriented) cell.
type SCell struct {
	KCoords Point
	Sign    Sign
}

// Opposite returns the same cell with reversed orientation.
func (c SCell) Opposite() SCell {
	c.Sign = c.Sign.Opposite()
	return c
}

func (c SCell) String() string {
	return c.Sign.String() + formatCoords(c.KCoords)
}

func (c Cell) String() string {
	return formatCoords(c.KCoords)
}

func formatCoords(p Point) string {
	parts := make([]string, MaxDimension)
	for i, x := range p {
		parts[i] = fmt.Sprint(x)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func isOdd(x int) bool {
	return x&1 == 1
}
