package params

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Patch is a partial edit. Nil fields are left alone.
type Patch struct {
	Count         *int     `json:"count,omitempty"`
	Radius        *float64 `json:"radius,omitempty"`
	Branches      *int     `json:"branches,omitempty"`
	Spin          *float64 `json:"spin,omitempty"`
	Randomness    *float64 `json:"randomness,omitempty"`
	MinRandomness *float64 `json:"minRandomness,omitempty"`
	Scatter       *float64 `json:"scatter,omitempty"`
	InsideColor   *string  `json:"insideColor,omitempty"`
	OutsideColor  *string  `json:"outsideColor,omitempty"`
	PointSize     *float64 `json:"pointSize,omitempty"`

	StarsCount        *int     `json:"starsCount,omitempty"`
	StarsRadius       *float64 `json:"starsRadius,omitempty"`
	StarsInsideColor  *string  `json:"starsInsideColor,omitempty"`
	StarsOutsideColor *string  `json:"starsOutsideColor,omitempty"`
	StarsPointSize    *float64 `json:"starsPointSize,omitempty"`
}

func (p Patch) applyTo(s Set) Set {
	setIf(&s.Count, p.Count)
	setIf(&s.Radius, p.Radius)
	setIf(&s.Branches, p.Branches)
	setIf(&s.Spin, p.Spin)
	setIf(&s.Randomness, p.Randomness)
	setIf(&s.MinRandomness, p.MinRandomness)
	setIf(&s.Scatter, p.Scatter)
	setIf(&s.InsideColor, p.InsideColor)
	setIf(&s.OutsideColor, p.OutsideColor)
	setIf(&s.PointSize, p.PointSize)
	setIf(&s.StarsCount, p.StarsCount)
	setIf(&s.StarsRadius, p.StarsRadius)
	setIf(&s.StarsInsideColor, p.StarsInsideColor)
	setIf(&s.StarsOutsideColor, p.StarsOutsideColor)
	setIf(&s.StarsPointSize, p.StarsPointSize)
	return s
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Change describes one accepted edit.
type Change struct {
	Previous Set
	Current  Set
	// Fields lists the JSON names of every field whose value changed.
	Fields []string
	// Galaxy and Stars are set when a structural field of that cloud changed.
	Galaxy bool
	Stars  bool
}

// Empty reports whether nothing changed at all.
func (c Change) Empty() bool {
	return len(c.Fields) == 0
}

// Structural reports whether either cloud needs regenerating.
func (c Change) Structural() bool {
	return c.Galaxy || c.Stars
}

type fieldDiff struct {
	name   string
	differ func(a, b Set) bool
	galaxy bool
	stars  bool
}

// fields drives diffing. Point sizes are cosmetic and never trigger regeneration.
var fields = []fieldDiff{
	{"count", func(a, b Set) bool { return a.Count != b.Count }, true, false},
	{"radius", func(a, b Set) bool { return a.Radius != b.Radius }, true, false},
	{"branches", func(a, b Set) bool { return a.Branches != b.Branches }, true, false},
	{"spin", func(a, b Set) bool { return a.Spin != b.Spin }, true, false},
	{"randomness", func(a, b Set) bool { return a.Randomness != b.Randomness }, true, false},
	{"minRandomness", func(a, b Set) bool { return a.MinRandomness != b.MinRandomness }, true, false},
	{"scatter", func(a, b Set) bool { return a.Scatter != b.Scatter }, true, false},
	{"insideColor", func(a, b Set) bool { return a.InsideColor != b.InsideColor }, true, false},
	{"outsideColor", func(a, b Set) bool { return a.OutsideColor != b.OutsideColor }, true, false},
	{"pointSize", func(a, b Set) bool { return a.PointSize != b.PointSize }, false, false},
	{"starsCount", func(a, b Set) bool { return a.StarsCount != b.StarsCount }, false, true},
	{"starsRadius", func(a, b Set) bool { return a.StarsRadius != b.StarsRadius }, false, true},
	{"starsInsideColor", func(a, b Set) bool { return a.StarsInsideColor != b.StarsInsideColor }, false, true},
	{"starsOutsideColor", func(a, b Set) bool { return a.StarsOutsideColor != b.StarsOutsideColor }, false, true},
	{"starsPointSize", func(a, b Set) bool { return a.StarsPointSize != b.StarsPointSize }, false, false},
}

// Diff compares two sets.
func Diff(previous, current Set) Change {
	change := Change{Previous: previous, Current: current}
	for _, f := range fields {
		if !f.differ(previous, current) {
			continue
		}
		change.Fields = append(change.Fields, f.name)
		change.Galaxy = change.Galaxy || f.galaxy
		change.Stars = change.Stars || f.stars
	}
	return change
}

// Listener receives accepted changes. A returned error is reported back to
// whoever made the edit; the edit itself stays applied.
type Listener func(Change) error

// Surface owns the mutable parameter set.
type Surface struct {
	mu        sync.Mutex
	current   Set
	listeners []Listener
	logger    *log.Logger
}

// NewSurface starts from initial after clamping it.
func NewSurface(initial Set, logger *log.Logger) (*Surface, error) {
	initial = initial.Clamp()
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Surface{
		current: initial,
		logger:  logger.With("component", "parameter-surface"),
	}, nil
}

// Current returns a copy of the live set.
func (s *Surface) Current() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers fn for every future change.
func (s *Surface) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Apply merges patch into the live set.
func (s *Surface) Apply(patch Patch) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(patch.applyTo(s.current))
}

// Replace swaps in a whole set, as when a preset is loaded.
func (s *Surface) Replace(set Set) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(set)
}

// commit runs under s.mu so listeners observe edits in order.
func (s *Surface) commit(next Set) (Change, error) {
	next = next.Clamp()
	if err := next.Validate(); err != nil {
		s.logger.Warn("Rejected parameter edit", "error", err)
		return Change{}, err
	}

	change := Diff(s.current, next)
	s.current = next
	if change.Empty() {
		return change, nil
	}

	s.logger.Debug("Parameters changed",
		"fields", change.Fields,
		"galaxy", change.Galaxy,
		"stars", change.Stars,
	)

	var errs []error
	for _, fn := range s.listeners {
		if err := fn(change); err != nil {
			errs = append(errs, err)
		}
	}
	return change, errors.Join(errs...)
}
