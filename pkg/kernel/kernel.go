// Package kernel defines the abstract solid-modelling interface used to
// describe continuous shapes before they are digitised. Implementations
// (sdfx) provide primitives and boolean operations behind this interface,
// and every solid answers point-membership queries so it can back a
// digital membership predicate.
package kernel

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
	// Inside reports whether (x, y, z) lies in the closed solid.
	Inside(x, y, z float64) bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centred on the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid // axis along Z

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
}
