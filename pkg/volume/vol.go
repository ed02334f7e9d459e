package volume

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/voxtrack/pkg/kspace"
)

// maxHeaderLines bounds the header scan of a .vol stream.
const maxHeaderLines = 64

// ReadVol decodes a .vol volume: a "Key: value" text header terminated by
// a line holding a single ".", followed by X*Y*Z one-byte voxels with x
// varying fastest. The domain is (0,0,0)..(X-1,Y-1,Z-1).
func ReadVol(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	header := map[string]string{}
	for n := 0; ; n++ {
		if n == maxHeaderLines {
			return nil, fmt.Errorf("volume: vol header exceeds %d lines", maxHeaderLines)
		}
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("volume: reading vol header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "." {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("volume: malformed vol header line %q", line)
		}
		header[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	var size [3]int
	for i, key := range []string{"X", "Y", "Z"} {
		v, ok := header[key]
		if !ok {
			return nil, fmt.Errorf("volume: vol header lacks %s", key)
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > kspace.MaxCoordinate {
			return nil, fmt.Errorf("volume: invalid vol extent %s=%q", key, v)
		}
		size[i] = n
	}
	if vs, ok := header["Voxel-Size"]; ok && vs != "1" {
		return nil, fmt.Errorf("volume: unsupported Voxel-Size %s", vs)
	}

	lower, upper := []int{0, 0, 0}, []int{size[0] - 1, size[1] - 1, size[2] - 1}
	n, err := domainLen(lower, upper)
	if err != nil {
		return nil, err
	}
	// Read before allocating the image so a short stream fails cheaply.
	raw, err := io.ReadAll(io.LimitReader(br, int64(n)))
	if err != nil {
		return nil, fmt.Errorf("volume: reading %d vol voxels: %w", n, err)
	}
	if len(raw) < n {
		return nil, fmt.Errorf("volume: reading %d vol voxels: %w", n, io.ErrUnexpectedEOF)
	}
	img, err := New(lower, upper)
	if err != nil {
		return nil, err
	}
	for i, b := range raw {
		img.values[i] = int(b)
	}
	return img, nil
}

// WriteVol encodes a 3-D image with lower bound at the origin as a .vol
// stream. Values are clamped to 0..255.
func WriteVol(w io.Writer, img *Image) error {
	if img.dim != 3 || img.lower != (kspace.Point{}) {
		return fmt.Errorf("volume: vol output needs a 3-D image anchored at the origin")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "X: %d\nY: %d\nZ: %d\n", img.upper[0]+1, img.upper[1]+1, img.upper[2]+1)
	fmt.Fprint(bw, "Voxel-Size: 1\nAlpha-Color: 0\nVoxel-Endian: 0\nInt-Endian: 0123\nVersion: 2\n.\n")
	for _, v := range img.values {
		if err := bw.WriteByte(byte(min(max(v, 0), 255))); err != nil {
			return fmt.Errorf("volume: writing vol voxels: %w", err)
		}
	}
	return bw.Flush()
}
