package pointcloud

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Generator produces a fresh buffer for a parameter value.
type Generator[P any] interface {
	Generate(params P) (*Buffer, error)
}

// Lifecycle owns the single live buffer of one generator and swaps it on
// regeneration. A failed generation leaves the current buffer and handle as
// they were.
type Lifecycle[P any] struct {
	mu        sync.Mutex
	name      string
	generator Generator[P]
	sink      Sink
	logger    *log.Logger

	buffer *Buffer
	handle Handle
}

// NewLifecycle wires a generator to a sink.
func NewLifecycle[P any](name string, generator Generator[P], sink Sink, logger *log.Logger) *Lifecycle[P] {
	return &Lifecycle[P]{
		name:      name,
		generator: generator,
		sink:      sink,
		logger:    logger.With("cloud", name),
	}
}

// Name returns the cloud name the lifecycle registers buffers under.
func (l *Lifecycle[P]) Name() string {
	return l.name
}

// Regenerate builds a new buffer from params and replaces the current one.
func (l *Lifecycle[P]) Regenerate(params P) (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	buf, err := l.generator.Generate(params)
	if err != nil {
		l.logger.Warn("Generation rejected, keeping previous buffer", "error", err, "handle", l.handle)
		return l.handle, fmt.Errorf("failed to generate %s: %w", l.name, err)
	}

	previous := l.handle
	l.release()

	l.buffer = buf
	l.handle = l.sink.Attach(l.name, buf)

	l.logger.Debug("Regenerated point cloud",
		"points", buf.Len(),
		"previous_handle", previous,
		"handle", l.handle,
		"duration", time.Since(start),
	)
	return l.handle, nil
}

// Current returns the live buffer and its handle. The buffer is nil before
// the first successful regeneration.
func (l *Lifecycle[P]) Current() (*Buffer, Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer, l.handle
}

// Close disposes the live buffer.
func (l *Lifecycle[P]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.release()
	l.logger.Debug("Point cloud closed")
}

func (l *Lifecycle[P]) release() {
	if !l.handle.IsZero() {
		l.sink.Dispose(l.handle)
	}
	l.buffer = nil
	l.handle = Handle{}
}
