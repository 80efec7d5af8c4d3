// Package color provides the RGB triple used to tint generated points.
// Channels are plain floats in [0, 1] and interpolation is linear in the
// same space as the inputs; no gamma correction is applied.
package color

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string is neither a hex value nor a known name.
var ErrInvalidColor = errors.New("invalid color")

// RGB is a linear color triple.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

// Parse accepts "#rgb", "#rrggbb" or a CSS/SVG color name such as "orange".
func Parse(s string) (RGB, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return RGB{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return fromColorful(c), nil
	}

	named, ok := colornames.Map[value]
	if !ok {
		return RGB{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColor, s)
	}
	c, ok := colorful.MakeColor(named)
	if !ok {
		return RGB{}, fmt.Errorf("%w: %q has zero alpha", ErrInvalidColor, s)
	}
	return fromColorful(c), nil
}

// MustParse is Parse for package-level defaults.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp returns c*(1-t) + other*t per channel. t is not clamped.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return fromColorful(c.colorful().BlendRgb(other.colorful(), t))
}

// Clamped limits every channel to [0, 1].
func (c RGB) Clamped() RGB {
	return fromColorful(c.colorful().Clamped())
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return c.Clamped().colorful().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}
