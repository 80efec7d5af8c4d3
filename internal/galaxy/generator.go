// Package galaxy places points along spiral arms.
package galaxy

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/color"
	"github.com/VoidMesh/galaxy/internal/pointcloud"
	"github.com/VoidMesh/galaxy/internal/random"
)

// Probability that the jitter on each axis is positive. The skew on Y and Z
// flattens the disk and is part of the look.
const (
	SignBiasX = 0.5
	SignBiasY = 0.8
	SignBiasZ = 0.2
)

// Parameters controls the shape and tint of a galaxy.
type Parameters struct {
	Count         int
	Radius        float64
	Branches      int
	Spin          float64
	Randomness    float64
	MinRandomness float64
	Scatter       float64
	InsideColor   color.RGB
	OutsideColor  color.RGB
}

// Validate rejects values that would produce empty arms or NaN positions.
func (p Parameters) Validate() error {
	if p.Count < 0 {
		return pointcloud.InvalidParameter("count", p.Count, "must not be negative")
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return pointcloud.InvalidParameter("radius", p.Radius, "must be a positive finite number")
	}
	if p.Branches < 1 {
		return pointcloud.InvalidParameter("branches", p.Branches, "must be at least 1")
	}
	return nil
}

// Generator builds galaxy buffers from an injected random source.
type Generator struct {
	rnd    random.Source
	logger *log.Logger
}

// NewGenerator creates a galaxy generator.
func NewGenerator(rnd random.Source, logger *log.Logger) *Generator {
	return &Generator{
		rnd:    rnd,
		logger: logger.With("component", "galaxy-generator"),
	}
}

// Generate returns a new buffer with params.Count points.
func (g *Generator) Generate(params Parameters) (*pointcloud.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g.logger.Debug("Generating galaxy",
		"count", params.Count,
		"radius", params.Radius,
		"branches", params.Branches,
		"spin", params.Spin,
		"randomness", params.Randomness,
		"scatter", params.Scatter,
	)

	buf := pointcloud.NewBuffer(params.Count)
	branches := float64(params.Branches)

	for i := 0; i < params.Count; i++ {
		radius := g.rnd.Float64() * params.Radius

		branchAngle := float64(i%params.Branches) / branches * 2 * math.Pi
		spinAngle := radius * params.Spin
		angle := branchAngle + spinAngle

		// Jitter fades toward the rim but never drops below MinRandomness.
		weight := (1 - radius/params.Radius) + params.MinRandomness

		jx := g.jitter(params, weight, SignBiasX)
		jy := g.jitter(params, weight, SignBiasY)
		jz := g.jitter(params, weight, SignBiasZ)

		x := radius*math.Cos(angle) + jx
		y := jy
		z := radius*math.Sin(angle) + jz

		c := params.InsideColor.Lerp(params.OutsideColor, radius/params.Radius)
		buf.Set(i, x, y, z, c)
	}

	return buf, nil
}

// jitter draws the magnitude first, then the sign.
func (g *Generator) jitter(params Parameters, weight, positiveBias float64) float64 {
	magnitude := math.Pow(g.rnd.Float64()*params.Randomness*weight, params.Scatter)
	if g.rnd.Float64() < positiveBias {
		return magnitude
	}
	return -magnitude
}
