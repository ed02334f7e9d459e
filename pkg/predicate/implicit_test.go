package predicate

import (
	"testing"

	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/stretchr/testify/assert"
)

func TestImplicitShapes(t *testing.T) {
	origin := []float64{0, 0}
	tests := []struct {
		name    string
		shape   Implicit
		in, out []kspace.Point
	}{
		{
			"ball", Ball(origin, 1),
			[]kspace.Point{kspace.Pt(0, 0), kspace.Pt(1, 0), kspace.Pt(0, -1)},
			[]kspace.Point{kspace.Pt(1, 1), kspace.Pt(2, 0)},
		},
		{
			"norm1 ball", Norm1Ball(origin, 2),
			[]kspace.Point{kspace.Pt(1, 1), kspace.Pt(-2, 0)},
			[]kspace.Point{kspace.Pt(2, 1), kspace.Pt(-1, -2)},
		},
		{
			"hypercube", HyperCube(origin, 1),
			[]kspace.Point{kspace.Pt(1, 1), kspace.Pt(1, -1), kspace.Pt(-1, 0)},
			[]kspace.Point{kspace.Pt(2, 0), kspace.Pt(0, -2)},
		},
		{
			"rounded hypercube", RoundedHyperCube(origin, 2, 4),
			[]kspace.Point{kspace.Pt(2, 0), kspace.Pt(1, 1), kspace.Pt(-1, 1)},
			[]kspace.Point{kspace.Pt(2, 1), kspace.Pt(2, 2)},
		},
		{
			"shifted ball", Ball([]float64{0.5, 0.5}, 0.75),
			[]kspace.Point{kspace.Pt(0, 0), kspace.Pt(1, 1)},
			[]kspace.Point{kspace.Pt(-1, 0), kspace.Pt(2, 1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range tt.in {
				assert.True(t, tt.shape.Contains(p), "%v", p)
			}
			for _, p := range tt.out {
				assert.False(t, tt.shape.Contains(p), "%v", p)
			}
		})
	}
}

func TestImplicitUsesEveryAxis(t *testing.T) {
	b := Ball([]float64{0, 0, 0, 0}, 1)
	assert.True(t, b.Contains(kspace.Pt(0, 0, 0, 1)))
	assert.False(t, b.Contains(kspace.Pt(1, 0, 0, 1)))

	c := HyperCube([]float64{0, 0, 0, 0}, 1)
	assert.True(t, c.Contains(kspace.Pt(1, -1, 1, -1)))
	assert.False(t, c.Contains(kspace.Pt(1, -1, 1, 2)))
}

func TestImplicitDomain(t *testing.T) {
	lower, upper := Ball([]float64{1.5, -2}, 2).Domain(1)
	assert.Equal(t, []int{-2, -5}, lower)
	assert.Equal(t, []int{5, 1}, upper)

	lower, upper = HyperCube([]float64{0, 0, 0}, 1).Domain(0)
	assert.Equal(t, []int{-1, -1, -1}, lower)
	assert.Equal(t, []int{1, 1, 1}, upper)
}
