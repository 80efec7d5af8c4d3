package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "long hex", input: "#ff0000", want: RGB{1, 0, 0}},
		{name: "short hex", input: "#00f", want: RGB{0, 0, 1}},
		{name: "uppercase hex with spaces", input: "  #FFFFFF ", want: White},
		{name: "named color", input: "black", want: Black},
		{name: "named color mixed case", input: "Lime", want: RGB{0, 1, 0}},
		{name: "empty", input: "", wantErr: true},
		{name: "bad hex", input: "#zzzzzz", wantErr: true},
		{name: "unknown name", input: "not-a-color", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-9)
			assert.InDelta(t, tt.want.G, got.G, 1e-9)
			assert.InDelta(t, tt.want.B, got.B, 1e-9)
		})
	}
}

func TestRGB_Lerp(t *testing.T) {
	red := RGB{1, 0, 0}
	blue := RGB{0, 0, 1}

	assert.Equal(t, red, red.Lerp(blue, 0))
	assert.InDelta(t, 0.0, red.Lerp(blue, 1).R, 1e-12)
	assert.InDelta(t, 1.0, red.Lerp(blue, 1).B, 1e-12)

	mid := red.Lerp(blue, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-12)
	assert.InDelta(t, 0.0, mid.G, 1e-12)
	assert.InDelta(t, 0.5, mid.B, 1e-12)

	// Extrapolation is allowed; callers clamp when they need to.
	out := red.Lerp(blue, -0.5)
	assert.InDelta(t, 1.5, out.R, 1e-12)
	assert.InDelta(t, -0.5, out.B, 1e-12)
}

func TestRGB_Clamped(t *testing.T) {
	c := RGB{1.5, -0.25, 0.5}.Clamped()
	assert.Equal(t, RGB{1, 0, 0.5}, c)
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#ff6030", MustParse("#ff6030").Hex())
	assert.Equal(t, "#ffffff", RGB{2, 2, 2}.Hex())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}
