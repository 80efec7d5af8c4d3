package params

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/galaxy/internal/color"
)

func ptr[T any](v T) *T { return &v }

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := NewSurface(Defaults(), log.New(io.Discard))
	require.NoError(t, err)
	return s
}

func TestDefaults_AreInsideRanges(t *testing.T) {
	d := Defaults()
	assert.Equal(t, d, d.Clamp())
	assert.NoError(t, d.Validate())
}

func TestSet_Clamp(t *testing.T) {
	s := Set{
		Count:          -10,
		Radius:         0,
		Branches:       0,
		Spin:           99,
		Randomness:     -1,
		MinRandomness:  3,
		Scatter:        0.5,
		PointSize:      1,
		StarsCount:     1_000_000,
		StarsRadius:    -4,
		StarsPointSize: 0,
	}.Clamp()

	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.01, s.Radius)
	assert.Equal(t, 1, s.Branches)
	assert.Equal(t, 5.0, s.Spin)
	assert.Equal(t, 0.0, s.Randomness)
	assert.Equal(t, 1.0, s.MinRandomness)
	assert.Equal(t, 1.0, s.Scatter)
	assert.Equal(t, 0.1, s.PointSize)
	assert.Equal(t, 100_000, s.StarsCount)
	assert.Equal(t, 1.0, s.StarsRadius)
	assert.Equal(t, 0.001, s.StarsPointSize)
}

func TestSet_Conversions(t *testing.T) {
	d := Defaults()

	g, err := d.Galaxy()
	require.NoError(t, err)
	assert.Equal(t, d.Count, g.Count)
	assert.Equal(t, d.Branches, g.Branches)
	assert.Equal(t, color.MustParse(d.InsideColor), g.InsideColor)

	s, err := d.Stars()
	require.NoError(t, err)
	assert.Equal(t, d.StarsCount, s.Count)
	assert.Equal(t, d.StarsRadius, s.Radius)
	assert.Equal(t, color.MustParse(d.StarsOutsideColor), s.OutsideColor)

	d.InsideColor = "nope"
	_, err = d.Galaxy()
	assert.ErrorIs(t, err, color.ErrInvalidColor)

	d = Defaults()
	d.StarsInsideColor = "#12"
	_, err = d.Stars()
	assert.ErrorIs(t, err, color.ErrInvalidColor)
}

func TestDiff_ClassifiesFields(t *testing.T) {
	base := Defaults()

	tests := []struct {
		name       string
		mutate     func(s *Set)
		wantFields []string
		wantGalaxy bool
		wantStars  bool
	}{
		{name: "no change", mutate: func(s *Set) {}},
		{name: "galaxy count", mutate: func(s *Set) { s.Count = 10 }, wantFields: []string{"count"}, wantGalaxy: true},
		{name: "galaxy color", mutate: func(s *Set) { s.OutsideColor = "red" }, wantFields: []string{"outsideColor"}, wantGalaxy: true},
		{name: "galaxy point size is cosmetic", mutate: func(s *Set) { s.PointSize = 0.05 }, wantFields: []string{"pointSize"}},
		{name: "stars radius", mutate: func(s *Set) { s.StarsRadius = 10 }, wantFields: []string{"starsRadius"}, wantStars: true},
		{name: "stars point size is cosmetic", mutate: func(s *Set) { s.StarsPointSize = 0.05 }, wantFields: []string{"starsPointSize"}},
		{
			name:       "both clouds",
			mutate:     func(s *Set) { s.Spin = -1; s.StarsCount = 1 },
			wantFields: []string{"spin", "starsCount"},
			wantGalaxy: true,
			wantStars:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.mutate(&next)

			change := Diff(base, next)
			assert.Equal(t, tt.wantFields, change.Fields)
			assert.Equal(t, tt.wantGalaxy, change.Galaxy)
			assert.Equal(t, tt.wantStars, change.Stars)
			assert.Equal(t, tt.wantGalaxy || tt.wantStars, change.Structural())
			assert.Equal(t, len(tt.wantFields) == 0, change.Empty())
		})
	}
}

func TestSurface_ApplyClampsAndNotifies(t *testing.T) {
	s := newTestSurface(t)

	var got []Change
	s.Subscribe(func(c Change) error {
		got = append(got, c)
		return nil
	})

	change, err := s.Apply(Patch{Count: ptr(5_000_000), Branches: ptr(0)})
	require.NoError(t, err)
	assert.True(t, change.Galaxy)
	assert.False(t, change.Stars)

	cur := s.Current()
	assert.Equal(t, 1_000_000, cur.Count)
	assert.Equal(t, 1, cur.Branches)

	require.Len(t, got, 1)
	assert.Equal(t, cur, got[0].Current)
	assert.Equal(t, Defaults(), got[0].Previous)
}

func TestSurface_NoOpEditDoesNotNotify(t *testing.T) {
	s := newTestSurface(t)
	calls := 0
	s.Subscribe(func(Change) error { calls++; return nil })

	change, err := s.Apply(Patch{Count: ptr(Defaults().Count)})
	require.NoError(t, err)
	assert.True(t, change.Empty())
	assert.Zero(t, calls)
}

func TestSurface_RejectsBadColor(t *testing.T) {
	s := newTestSurface(t)
	calls := 0
	s.Subscribe(func(Change) error { calls++; return nil })

	_, err := s.Apply(Patch{Count: ptr(10), InsideColor: ptr("definitely-not-a-color")})
	require.ErrorIs(t, err, color.ErrInvalidColor)

	// the whole patch is dropped, including the valid count
	assert.Equal(t, Defaults(), s.Current())
	assert.Zero(t, calls)
}

func TestSurface_ListenerErrorIsReported(t *testing.T) {
	s := newTestSurface(t)
	boom := errors.New("boom")
	s.Subscribe(func(Change) error { return boom })

	change, err := s.Apply(Patch{Spin: ptr(2.0)})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"spin"}, change.Fields)
	assert.Equal(t, 2.0, s.Current().Spin)
}

func TestSurface_Replace(t *testing.T) {
	s := newTestSurface(t)

	next := Defaults()
	next.StarsCount = 10
	next.StarsPointSize = 0.05

	change, err := s.Replace(next)
	require.NoError(t, err)
	assert.False(t, change.Galaxy)
	assert.True(t, change.Stars)
	assert.Equal(t, next, s.Current())
}

func TestNewSurface_RejectsBadInitialColor(t *testing.T) {
	initial := Defaults()
	initial.StarsOutsideColor = ""

	_, err := NewSurface(initial, log.New(io.Discard))
	assert.ErrorIs(t, err, color.ErrInvalidColor)
}
