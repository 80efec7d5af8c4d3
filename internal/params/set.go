// Package params holds the editable parameter set and the surface that
// clamps edits and tells subscribers what changed.
package params

import (
	"fmt"

	"github.com/VoidMesh/galaxy/internal/color"
	"github.com/VoidMesh/galaxy/internal/galaxy"
	"github.com/VoidMesh/galaxy/internal/starfield"
)

// Set is the full parameter set for both clouds.
type Set struct {
	Count         int     `json:"count"`
	Radius        float64 `json:"radius"`
	Branches      int     `json:"branches"`
	Spin          float64 `json:"spin"`
	Randomness    float64 `json:"randomness"`
	MinRandomness float64 `json:"minRandomness"`
	Scatter       float64 `json:"scatter"`
	InsideColor   string  `json:"insideColor"`
	OutsideColor  string  `json:"outsideColor"`
	PointSize     float64 `json:"pointSize"`

	StarsCount        int     `json:"starsCount"`
	StarsRadius       float64 `json:"starsRadius"`
	StarsInsideColor  string  `json:"starsInsideColor"`
	StarsOutsideColor string  `json:"starsOutsideColor"`
	StarsPointSize    float64 `json:"starsPointSize"`
}

// Range is an inclusive [Min, Max] bound.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) clamp(v float64) float64 {
	return min(max(v, r.Min), r.Max)
}

func (r Range) clampInt(v int) int {
	return int(r.clamp(float64(v)))
}

// Ranges documents the bound the surface applies to every numeric field.
var Ranges = map[string]Range{
	"count":          {0, 1_000_000},
	"radius":         {0.01, 20},
	"branches":       {1, 20},
	"spin":           {-5, 5},
	"randomness":     {0, 2},
	"minRandomness":  {0, 1},
	"scatter":        {1, 10},
	"pointSize":      {0.001, 0.1},
	"starsCount":     {0, 100_000},
	"starsRadius":    {1, 100},
	"starsPointSize": {0.001, 0.1},
}

// Defaults returns the startup parameter set.
func Defaults() Set {
	return Set{
		Count:         100_000,
		Radius:        5,
		Branches:      3,
		Spin:          1,
		Randomness:    0.2,
		MinRandomness: 0.1,
		Scatter:       3,
		InsideColor:   "#ff6030",
		OutsideColor:  "#1b3984",
		PointSize:     0.01,

		StarsCount:        5_000,
		StarsRadius:       40,
		StarsInsideColor:  "#ffffff",
		StarsOutsideColor: "#4060ff",
		StarsPointSize:    0.02,
	}
}

// Clamp returns a copy with every numeric field inside its range.
func (s Set) Clamp() Set {
	s.Count = Ranges["count"].clampInt(s.Count)
	s.Radius = Ranges["radius"].clamp(s.Radius)
	s.Branches = Ranges["branches"].clampInt(s.Branches)
	s.Spin = Ranges["spin"].clamp(s.Spin)
	s.Randomness = Ranges["randomness"].clamp(s.Randomness)
	s.MinRandomness = Ranges["minRandomness"].clamp(s.MinRandomness)
	s.Scatter = Ranges["scatter"].clamp(s.Scatter)
	s.PointSize = Ranges["pointSize"].clamp(s.PointSize)
	s.StarsCount = Ranges["starsCount"].clampInt(s.StarsCount)
	s.StarsRadius = Ranges["starsRadius"].clamp(s.StarsRadius)
	s.StarsPointSize = Ranges["starsPointSize"].clamp(s.StarsPointSize)
	return s
}

// Validate checks the color fields, the only ones clamping cannot repair.
func (s Set) Validate() error {
	colors := []struct {
		field string
		value string
	}{
		{"insideColor", s.InsideColor},
		{"outsideColor", s.OutsideColor},
		{"starsInsideColor", s.StarsInsideColor},
		{"starsOutsideColor", s.StarsOutsideColor},
	}
	for _, c := range colors {
		if _, err := color.Parse(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.field, err)
		}
	}
	return nil
}

// Galaxy converts the galaxy half of the set.
func (s Set) Galaxy() (galaxy.Parameters, error) {
	inside, err := color.Parse(s.InsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("insideColor: %w", err)
	}
	outside, err := color.Parse(s.OutsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("outsideColor: %w", err)
	}

	return galaxy.Parameters{
		Count:         s.Count,
		Radius:        s.Radius,
		Branches:      s.Branches,
		Spin:          s.Spin,
		Randomness:    s.Randomness,
		MinRandomness: s.MinRandomness,
		Scatter:       s.Scatter,
		InsideColor:   inside,
		OutsideColor:  outside,
	}, nil
}

// Stars converts the star-field half of the set.
func (s Set) Stars() (starfield.Parameters, error) {
	inside, err := color.Parse(s.StarsInsideColor)
	if err != nil {
		return starfield.Parameters{}, fmt.Errorf("starsInsideColor: %w", err)
	}
	outside, err := color.Parse(s.StarsOutsideColor)
	if err != nil {
		return starfield.Parameters{}, fmt.Errorf("starsOutsideColor: %w", err)
	}

	return starfield.Parameters{
		Count:        s.StarsCount,
		Radius:       s.StarsRadius,
		InsideColor:  inside,
		OutsideColor: outside,
	}, nil
}
