// Package scene keeps the galaxy and the star field in step with the
// parameter surface.
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/galaxy"
	"github.com/VoidMesh/galaxy/internal/params"
	"github.com/VoidMesh/galaxy/internal/pointcloud"
	"github.com/VoidMesh/galaxy/internal/random"
	"github.com/VoidMesh/galaxy/internal/starfield"
)

// Cloud names used as display keys.
const (
	GalaxyCloud = "galaxy"
	StarsCloud  = "stars"
)

// ErrUnknownCloud is returned for names other than GalaxyCloud and StarsCloud.
var ErrUnknownCloud = errors.New("unknown point cloud")

// Snapshot is the live state of one cloud.
type Snapshot struct {
	Name   string
	Handle pointcloud.Handle
	Buffer *pointcloud.Buffer
	Stats  pointcloud.Stats
}

// Scene owns one lifecycle per cloud. The two never share a random source.
type Scene struct {
	surface *params.Surface
	galaxy  *pointcloud.Lifecycle[galaxy.Parameters]
	stars   *pointcloud.Lifecycle[starfield.Parameters]
	logger  *log.Logger
}

// New wires both generators to sink and subscribes to surface.
func New(surface *params.Surface, sink pointcloud.Sink, galaxySrc, starsSrc random.Source, logger *log.Logger) *Scene {
	s := &Scene{
		surface: surface,
		galaxy:  pointcloud.NewLifecycle[galaxy.Parameters](GalaxyCloud, galaxy.NewGenerator(galaxySrc, logger), sink, logger),
		stars:   pointcloud.NewLifecycle[starfield.Parameters](StarsCloud, starfield.NewGenerator(starsSrc, logger), sink, logger),
		logger:  logger.With("component", "scene"),
	}
	surface.Subscribe(s.onChange)
	return s
}

// Start builds both clouds from the surface's current parameters.
func (s *Scene) Start() error {
	set := s.surface.Current()
	s.logger.Info("Building initial point clouds", "count", set.Count, "stars_count", set.StarsCount)
	return errors.Join(s.regenerateGalaxy(set), s.regenerateStars(set))
}

// Regenerate rebuilds one cloud with the current parameters and a fresh draw.
func (s *Scene) Regenerate(name string) error {
	set := s.surface.Current()
	switch name {
	case GalaxyCloud:
		return s.regenerateGalaxy(set)
	case StarsCloud:
		return s.regenerateStars(set)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCloud, name)
	}
}

// Snapshot returns the live buffer of name. Buffer is nil if the cloud has
// never been generated.
func (s *Scene) Snapshot(name string) (Snapshot, error) {
	var (
		buf *pointcloud.Buffer
		h   pointcloud.Handle
	)
	switch name {
	case GalaxyCloud:
		buf, h = s.galaxy.Current()
	case StarsCloud:
		buf, h = s.stars.Current()
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownCloud, name)
	}
	return Snapshot{Name: name, Handle: h, Buffer: buf, Stats: buf.Stats()}, nil
}

// Names lists the clouds in a stable order.
func (s *Scene) Names() []string {
	return []string{GalaxyCloud, StarsCloud}
}

// Close disposes both clouds.
func (s *Scene) Close() {
	s.galaxy.Close()
	s.stars.Close()
	s.logger.Info("Scene closed")
}

func (s *Scene) onChange(change params.Change) error {
	if !change.Structural() {
		s.logger.Debug("Cosmetic change, nothing to regenerate", "fields", change.Fields)
		return nil
	}

	var errs []error
	if change.Galaxy {
		errs = append(errs, s.regenerateGalaxy(change.Current))
	}
	if change.Stars {
		errs = append(errs, s.regenerateStars(change.Current))
	}
	return errors.Join(errs...)
}

func (s *Scene) regenerateGalaxy(set params.Set) error {
	p, err := set.Galaxy()
	if err != nil {
		return fmt.Errorf("failed to resolve galaxy parameters: %w", err)
	}
	_, err = s.galaxy.Regenerate(p)
	return err
}

func (s *Scene) regenerateStars(set params.Set) error {
	p, err := set.Stars()
	if err != nil {
		return fmt.Errorf("failed to resolve star field parameters: %w", err)
	}
	_, err = s.stars.Regenerate(p)
	return err
}
