package volume

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/voxtrack/pkg/kspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadDomain(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper []int
	}{
		{"empty", nil, nil},
		{"length mismatch", []int{0}, []int{1, 1}},
		{"inverted", []int{2, 0}, []int{1, 1}},
		{"too many axes", []int{0, 0, 0, 0, 0}, []int{1, 1, 1, 1, 1}},
		{"coordinate out of range", []int{0}, []int{kspace.MaxCoordinate + 1}},
		{"too many points", []int{0, 0, 0}, []int{1 << 20, 1 << 20, 0}},
		{"extent overflow", []int{-kspace.MaxCoordinate, -kspace.MaxCoordinate}, []int{kspace.MaxCoordinate, kspace.MaxCoordinate}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.lower, tt.upper); err == nil {
				t.Errorf("New(%v, %v) succeeded", tt.lower, tt.upper)
			}
		})
	}
}

func TestImageAccess(t *testing.T) {
	img, err := New([]int{-1, 2}, []int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, img.Dimension())
	assert.Equal(t, 9, img.Len())

	img.Set(kspace.Pt(1, 4), 7)
	img.Set(kspace.Pt(5, 5), 9) // ignored
	v, ok := img.At(kspace.Pt(1, 4))
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = img.At(kspace.Pt(5, 5))
	assert.False(t, ok)

	img.Fill(func(p kspace.Point) int { return p[0] + 10*p[1] })
	v, _ = img.At(kspace.Pt(-1, 3))
	assert.Equal(t, 29, v)
	v, _ = img.At(kspace.Pt(1, 2))
	assert.Equal(t, 21, v)

	lower, upper := img.Domain()
	assert.Equal(t, []int{-1, 2}, lower)
	assert.Equal(t, []int{1, 4}, upper)
}

func TestVolRoundTrip(t *testing.T) {
	img, err := New([]int{0, 0, 0}, []int{3, 2, 1})
	require.NoError(t, err)
	img.Fill(func(p kspace.Point) int { return p[0] + 4*p[1] + 12*p[2] })
	img.Set(kspace.Pt(0, 0, 0), 300) // clamped

	var buf bytes.Buffer
	require.NoError(t, WriteVol(&buf, img))

	got, err := ReadVol(&buf)
	require.NoError(t, err)
	lower, upper := got.Domain()
	assert.Equal(t, []int{0, 0, 0}, lower)
	assert.Equal(t, []int{3, 2, 1}, upper)

	v, _ := got.At(kspace.Pt(0, 0, 0))
	assert.Equal(t, 255, v)
	v, _ = got.At(kspace.Pt(3, 2, 1))
	assert.Equal(t, 23, v)
	v, _ = got.At(kspace.Pt(1, 0, 1))
	assert.Equal(t, 13, v)
}

func TestReadVolErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing terminator", "X: 1\nY: 1\nZ: 1\n"},
		{"missing extent", "X: 1\nY: 1\n.\n\x00"},
		{"bad extent", "X: 1\nY: zero\nZ: 1\n.\n\x00"},
		{"negative extent", "X: 1\nY: -2\nZ: 1\n.\n\x00"},
		{"malformed line", "X 1\n.\n"},
		{"voxel size", "X: 1\nY: 1\nZ: 1\nVoxel-Size: 2\n.\n\x00"},
		{"truncated data", "X: 2\nY: 2\nZ: 1\n.\n\x01\x02"},
		{"endless header", strings.Repeat("Comment: x\n", 100)},
		{"wrapping extents", "X: 4294967296\nY: 4294967296\nZ: 1\n.\n"},
		{"oversized domain", "X: 65536\nY: 65536\nZ: 65536\n.\n\x00"},
		{"short data for large header", "X: 1024\nY: 1024\nZ: 512\n.\n\x00\x01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadVol(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ReadVol(%q) succeeded", tt.name)
			}
		})
	}
}

func TestWriteVolRejectsUnanchoredImage(t *testing.T) {
	flat, err := New([]int{0, 0}, []int{1, 1})
	require.NoError(t, err)
	assert.Error(t, WriteVol(&bytes.Buffer{}, flat))

	shifted, err := New([]int{1, 0, 0}, []int{2, 1, 1})
	require.NoError(t, err)
	assert.Error(t, WriteVol(&bytes.Buffer{}, shifted))
}
