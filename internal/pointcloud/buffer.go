// Package pointcloud holds the buffer layout shared by every generator and the
// lifecycle that swaps buffers in and out of the display.
package pointcloud

import (
	"math"

	"github.com/VoidMesh/galaxy/internal/color"
)

// Stride is the number of floats per point in both Positions and Colors.
const Stride = 3

// Buffer is a pair of flat arrays. Point i occupies [3i, 3i+3) in both.
type Buffer struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
}

// NewBuffer allocates positions and colors for count points together.
func NewBuffer(count int) *Buffer {
	return &Buffer{
		Positions: make([]float32, count*Stride),
		Colors:    make([]float32, count*Stride),
	}
}

// Len returns the number of points.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / Stride
}

// Set writes point i.
func (b *Buffer) Set(i int, x, y, z float64, c color.RGB) {
	o := i * Stride
	b.Positions[o] = float32(x)
	b.Positions[o+1] = float32(y)
	b.Positions[o+2] = float32(z)
	b.Colors[o] = float32(c.R)
	b.Colors[o+1] = float32(c.G)
	b.Colors[o+2] = float32(c.B)
}

// Position returns the coordinates of point i.
func (b *Buffer) Position(i int) (x, y, z float32) {
	o := i * Stride
	return b.Positions[o], b.Positions[o+1], b.Positions[o+2]
}

// Color returns the color of point i.
func (b *Buffer) Color(i int) (r, g, bl float32) {
	o := i * Stride
	return b.Colors[o], b.Colors[o+1], b.Colors[o+2]
}

// Stats summarizes a buffer for logs and the HTTP API.
type Stats struct {
	Count    int        `json:"count"`
	Min      [3]float32 `json:"min"`
	Max      [3]float32 `json:"max"`
	ColorMin [3]float32 `json:"color_min"`
	ColorMax [3]float32 `json:"color_max"`
}

// Stats computes per-axis bounds for positions and colors.
func (b *Buffer) Stats() Stats {
	n := b.Len()
	s := Stats{Count: n}
	if n == 0 {
		return s
	}

	for axis := 0; axis < Stride; axis++ {
		s.Min[axis] = math.MaxFloat32
		s.Max[axis] = -math.MaxFloat32
		s.ColorMin[axis] = math.MaxFloat32
		s.ColorMax[axis] = -math.MaxFloat32
	}

	for i := 0; i < n; i++ {
		o := i * Stride
		for axis := 0; axis < Stride; axis++ {
			p := b.Positions[o+axis]
			c := b.Colors[o+axis]
			s.Min[axis] = min(s.Min[axis], p)
			s.Max[axis] = max(s.Max[axis], p)
			s.ColorMin[axis] = min(s.ColorMin[axis], c)
			s.ColorMax[axis] = max(s.ColorMax[axis], c)
		}
	}
	return s
}
