// Package starfield scatters points uniformly through a cube around the origin.
package starfield

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/color"
	"github.com/VoidMesh/galaxy/internal/pointcloud"
	"github.com/VoidMesh/galaxy/internal/random"
)

// Parameters controls the star field.
type Parameters struct {
	Count        int
	Radius       float64
	InsideColor  color.RGB
	OutsideColor color.RGB
}

func (p Parameters) Validate() error {
	if p.Count < 0 {
		return pointcloud.InvalidParameter("starsCount", p.Count, "must not be negative")
	}
	if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
		return pointcloud.InvalidParameter("starsRadius", p.Radius, "must be a positive finite number")
	}
	return nil
}

type Generator struct {
	rnd    random.Source
	logger *log.Logger
}

func NewGenerator(rnd random.Source, logger *log.Logger) *Generator {
	return &Generator{
		rnd:    rnd,
		logger: logger.With("component", "starfield-generator"),
	}
}

// Generate fills a cube of side params.Radius. Color follows the vertical
// position, so the field is banded top to bottom rather than radially.
func (g *Generator) Generate(params Parameters) (*pointcloud.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g.logger.Debug("Generating star field", "count", params.Count, "radius", params.Radius)

	buf := pointcloud.NewBuffer(params.Count)
	for i := 0; i < params.Count; i++ {
		x := (g.rnd.Float64() - 0.5) * params.Radius
		y := (g.rnd.Float64() - 0.5) * params.Radius
		z := (g.rnd.Float64() - 0.5) * params.Radius

		// t spans [-0.5, 0.5); clamp so the extrapolated half stays a valid color
		c := params.InsideColor.Lerp(params.OutsideColor, y/params.Radius).Clamped()
		buf.Set(i, x, y, z, c)
	}

	return buf, nil
}
