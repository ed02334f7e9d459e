package kspace

import (
	"fmt"
	"iter"

	"github.com/chazu/voxtrack/pkg/errs"
)

// MaxCoordinate bounds the absolute value of domain coordinates so that
// doubled Khalimsky coordinates never overflow.
const MaxCoordinate = 1 << 30

// Space is a bounded Khalimsky space of dimension 1..MaxDimension.
//
// A closed space contains the cells lying on the outer border of its
// domain (Khalimsky coordinates 2*lower and 2*upper+2); an open space
// does not.
type Space struct {
	dim    int
	lower  Point
	upper  Point
	closed bool
	kmin   Point
	kmax   Point
}

// New builds a space over the domain [lower, upper] (point units).
// The dimension is len(lower). It fails with errs.ErrConfiguration when the
// bounds disagree in length, the dimension is unsupported, or
// lower[i] > upper[i] on some axis.
func New(lower, upper []int, closed bool) (*Space, error) {
	const op = "kspace.New"
	if len(lower) != len(upper) {
		return nil, errs.Configuration(op, "lower has %d coordinates, upper has %d", len(lower), len(upper))
	}
	n := len(lower)
	if n == 0 || n > MaxDimension {
		return nil, errs.Configuration(op, "unsupported dimension %d (want 1..%d)", n, MaxDimension)
	}
	s := &Space{dim: n, closed: closed}
	for i := 0; i < n; i++ {
		if lower[i] > upper[i] {
			return nil, errs.Configuration(op, "axis %d: lower %d > upper %d", i, lower[i], upper[i])
		}
		if lower[i] < -MaxCoordinate || upper[i] > MaxCoordinate {
			return nil, errs.Configuration(op, "axis %d: bounds [%d, %d] exceed ±%d", i, lower[i], upper[i], MaxCoordinate)
		}
		s.lower[i] = lower[i]
		s.upper[i] = upper[i]
		if closed {
			s.kmin[i] = 2 * lower[i]
			s.kmax[i] = 2*upper[i] + 2
		} else {
			s.kmin[i] = 2*lower[i] + 1
			s.kmax[i] = 2*upper[i] + 1
		}
	}
	return s, nil
}

// Dimension returns n.
func (s *Space) Dimension() int { return s.dim }

// Lower returns the lowest domain point.
func (s *Space) Lower() Point { return s.lower }

// Upper returns the highest domain point.
func (s *Space) Upper() Point { return s.upper }

// Closed reports whether border cells belong to the space.
func (s *Space) Closed() bool { return s.closed }

// Extent returns the number of domain points along axis.
func (s *Space) Extent(axis int) int {
	return s.upper[axis] - s.lower[axis] + 1
}

// Size returns the number of domain points.
func (s *Space) Size() int {
	n := 1
	for i := 0; i < s.dim; i++ {
		n *= s.Extent(i)
	}
	return n
}

// Center returns the domain point halfway between the bounds (rounded down).
func (s *Space) Center() Point {
	var c Point
	for i := 0; i < s.dim; i++ {
		c[i] = (s.lower[i] + s.upper[i]) >> 1
	}
	return c
}

// Contains reports whether p lies in the domain.
func (s *Space) Contains(p Point) bool {
	for i := 0; i < s.dim; i++ {
		if p[i] < s.lower[i] || p[i] > s.upper[i] {
			return false
		}
	}
	return true
}

// IsInside reports whether Khalimsky coordinates k denote a cell of the space.
func (s *Space) IsInside(k Point) bool {
	for i := 0; i < s.dim; i++ {
		if k[i] < s.kmin[i] || k[i] > s.kmax[i] {
			return false
		}
	}
	return true
}

// Points yields every domain point, axis 0 varying fastest.
func (s *Space) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		p := s.lower
		for {
			if !yield(p) {
				return
			}
			i := 0
			for ; i < s.dim; i++ {
				if p[i] < s.upper[i] {
					p[i]++
					break
				}
				p[i] = s.lower[i]
			}
			if i == s.dim {
				return
			}
		}
	}
}

// Encode returns the spel of point p. It fails with errs.ErrPrecondition
// when p is outside the domain.
func (s *Space) Encode(p Point) (Cell, error) {
	if !s.Contains(p) {
		return Cell{}, errs.Precondition("kspace.Encode", "point %s outside domain %s..%s",
			formatCoords(p), formatCoords(s.lower), formatCoords(s.upper))
	}
	return Cell{KCoords: s.spelCoords(p)}, nil
}

// SEncode returns the spel of point p with the given orientation.
func (s *Space) SEncode(p Point, sign Sign) (SCell, error) {
	c, err := s.Encode(p)
	if err != nil {
		return SCell{}, err
	}
	return SCell{KCoords: c.KCoords, Sign: sign}, nil
}

// Decode returns the digital point of cell c, that is its Khalimsky
// coordinates halved and rounded down. Decode inverts Encode on spels.
// It fails with errs.ErrPrecondition when c is not a cell of the space.
func (s *Space) Decode(c Cell) (Point, error) {
	if !s.IsInside(c.KCoords) {
		return Point{}, errs.Precondition("kspace.Decode", "cell %s outside space", c)
	}
	return s.pointOf(c.KCoords), nil
}

// SDecode returns the digital point and orientation of c.
func (s *Space) SDecode(c SCell) (Point, Sign, error) {
	p, err := s.Decode(s.Unsign(c))
	if err != nil {
		return Point{}, 0, err
	}
	return p, c.Sign, nil
}

// Unsign drops the orientation of c.
func (s *Space) Unsign(c SCell) Cell {
	return Cell{KCoords: c.KCoords}
}

// Sign returns the orientation of c.
func (s *Space) Sign(c SCell) Sign {
	return c.Sign
}

// Signs attaches an orientation to c.
func (s *Space) Signs(c Cell, sign Sign) SCell {
	return SCell{KCoords: c.KCoords, Sign: sign}
}

// Dim returns the dimension of c: the number of its odd coordinates.
func (s *Space) Dim(c Cell) int {
	return s.dimOf(c.KCoords)
}

// SDim returns the dimension of the signed cell c.
func (s *Space) SDim(c SCell) int {
	return s.dimOf(c.KCoords)
}

// IsSurfel reports whether c has codimension 1.
func (s *Space) IsSurfel(c SCell) bool {
	return s.SDim(c) == s.dim-1
}

// IsOpen reports whether c is open (odd) along axis.
func (s *Space) IsOpen(c SCell, axis int) bool {
	return isOdd(c.KCoords[axis])
}

// OrthDir returns the axis orthogonal to surfel c, or -1 when c is not a surfel.
func (s *Space) OrthDir(c SCell) int {
	if !s.IsSurfel(c) {
		return -1
	}
	for i := 0; i < s.dim; i++ {
		if !s.IsOpen(c, i) {
			return i
		}
	}
	return -1
}

// Incident returns the cell incident to c along axis, one step up or down.
// If c is open along axis the result is a face of c (lower incidence),
// otherwise c is a face of the result (upper incidence). The orientation
// follows the cubical boundary operator so that ∂∂ = 0. The result is not
// checked against the space bounds.
func (s *Space) Incident(c SCell, axis int, up bool) SCell {
	parity := s.parity(c.KCoords, axis)
	r := c
	if up {
		r.KCoords[axis]++
	} else {
		r.KCoords[axis]--
	}
	sign := c.Sign * parity
	if isOdd(c.KCoords[axis]) != up {
		sign = -sign
	}
	r.Sign = sign
	return r
}

// DirectIncident returns the positively oriented cell incident to c along axis.
// For a boundary surfel and its orthogonal axis this is the interior spel.
func (s *Space) DirectIncident(c SCell, axis int) SCell {
	return s.Incident(c, axis, s.direct(c, axis))
}

// IndirectIncident returns the negatively oriented cell incident to c along axis.
func (s *Space) IndirectIncident(c SCell, axis int) SCell {
	return s.Incident(c, axis, !s.direct(c, axis))
}

// LowerIncident returns the signed faces of c lying in the space.
func (s *Space) LowerIncident(c SCell) []SCell {
	faces := make([]SCell, 0, 2*s.dim)
	for i := 0; i < s.dim; i++ {
		if !s.IsOpen(c, i) {
			continue
		}
		for _, up := range []bool{true, false} {
			if f := s.Incident(c, i, up); s.IsInside(f.KCoords) {
				faces = append(faces, f)
			}
		}
	}
	return faces
}

// UpperIncident returns the signed cells of the space having c as a face.
func (s *Space) UpperIncident(c SCell) []SCell {
	cofaces := make([]SCell, 0, 2*s.dim)
	for i := 0; i < s.dim; i++ {
		if s.IsOpen(c, i) {
			continue
		}
		for _, up := range []bool{true, false} {
			if f := s.Incident(c, i, up); s.IsInside(f.KCoords) {
				cofaces = append(cofaces, f)
			}
		}
	}
	return cofaces
}

// Adjacent returns the cell of the same dimension and orientation next to
// c along axis, and whether it lies in the space.
func (s *Space) Adjacent(c SCell, axis int, up bool) (SCell, bool) {
	if up {
		c.KCoords[axis] += 2
	} else {
		c.KCoords[axis] -= 2
	}
	return c, s.IsInside(c.KCoords)
}

// Bel returns the surfel separating two 1-adjacent points, oriented so that
// its direct incident spel is inner. The points may lie outside the
// domain; the caller checks IsInside on the result when that matters.
func (s *Space) Bel(inner, outer Point) (SCell, error) {
	axis := -1
	for i := 0; i < MaxDimension; i++ {
		d := inner[i] - outer[i]
		if d == 0 {
			continue
		}
		if i >= s.dim || axis != -1 || (d != 1 && d != -1) {
			return SCell{}, errs.Precondition("kspace.Bel", "points %s and %s are not adjacent",
				formatCoords(inner), formatCoords(outer))
		}
		axis = i
	}
	if axis == -1 {
		return SCell{}, errs.Precondition("kspace.Bel", "points %s and %s coincide",
			formatCoords(inner), formatCoords(outer))
	}
	k := s.spelCoords(inner)
	k[axis] = inner[axis] + outer[axis] + 1
	// Every axis before axis is open on a surfel.
	parity := Positive
	if isOdd(axis) {
		parity = Negative
	}
	sign := parity
	if inner[axis] > outer[axis] {
		sign = -parity
	}
	return SCell{KCoords: k, Sign: sign}, nil
}

// Inner returns the point on the positive side of surfel b.
func (s *Space) Inner(b SCell) Point {
	return s.pointOf(s.DirectIncident(b, s.OrthDir(b)).KCoords)
}

// Outer returns the point on the negative side of surfel b.
func (s *Space) Outer(b SCell) Point {
	return s.pointOf(s.IndirectIncident(b, s.OrthDir(b)).KCoords)
}

func (s *Space) String() string {
	kind := "open"
	if s.closed {
		kind = "closed"
	}
	return fmt.Sprintf("%s %dD space %s..%s", kind, s.dim, formatCoords(s.lower), formatCoords(s.upper))
}

func (s *Space) spelCoords(p Point) Point {
	var k Point
	for i := 0; i < s.dim; i++ {
		k[i] = 2*p[i] + 1
	}
	return k
}

func (s *Space) pointOf(k Point) Point {
	var p Point
	for i := 0; i < s.dim; i++ {
		p[i] = k[i] >> 1
	}
	return p
}

func (s *Space) dimOf(k Point) int {
	d := 0
	for i := 0; i < s.dim; i++ {
		if isOdd(k[i]) {
			d++
		}
	}
	return d
}

// parity is (-1) raised to the number of open axes before axis.
func (s *Space) parity(k Point, axis int) Sign {
	p := Positive
	for i := 0; i < axis; i++ {
		if isOdd(k[i]) {
			p = -p
		}
	}
	return p
}

// direct reports whether the positively oriented incident cell along axis
// lies up.
func (s *Space) direct(c SCell, axis int) bool {
	return isOdd(c.KCoords[axis]) == (c.Sign*s.parity(c.KCoords, axis) == Positive)
}
