// Package display keeps the buffers currently handed to renderers.
package display

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/galaxy/internal/pointcloud"
)

// Entry is one attached buffer.
type Entry struct {
	Name   string
	Handle pointcloud.Handle
	Buffer *pointcloud.Buffer
}

// Registry is an in-memory pointcloud.Sink. It holds at most one buffer per name.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]Entry
	byHandle map[pointcloud.Handle]string
	attached int
	disposed int
	logger   *log.Logger
}

func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		byName:   make(map[string]Entry),
		byHandle: make(map[pointcloud.Handle]string),
		logger:   logger.With("component", "display-registry"),
	}
}

// Attach implements pointcloud.Sink.
func (r *Registry) Attach(name string, buf *pointcloud.Buffer) pointcloud.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stale, ok := r.byName[name]; ok {
		// the lifecycle disposes first, so this only happens on misuse
		r.logger.Warn("Attaching over a live buffer", "cloud", name, "stale_handle", stale.Handle)
		delete(r.byHandle, stale.Handle)
	}

	h := pointcloud.NewHandle()
	r.byName[name] = Entry{Name: name, Handle: h, Buffer: buf}
	r.byHandle[h] = name
	r.attached++

	r.logger.Debug("Attached point cloud", "cloud", name, "handle", h, "points", buf.Len())
	return h
}

// Dispose implements pointcloud.Sink. Unknown handles are ignored.
func (r *Registry) Dispose(h pointcloud.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.byHandle[h]
	if !ok {
		r.logger.Debug("Dispose of unknown handle", "handle", h)
		return
	}
	delete(r.byHandle, h)
	delete(r.byName, name)
	r.disposed++

	r.logger.Debug("Disposed point cloud", "cloud", name, "handle", h)
}

// Lookup returns the live entry for name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	return e, ok
}

// Entries returns every live entry.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.byName))
	for _, e := range r.byName {
		entries = append(entries, e)
	}
	return entries
}

// Live returns the number of attached, undisposed handles.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byHandle)
}

// Counters returns how many attaches and disposes have happened.
func (r *Registry) Counters() (attached, disposed int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attached, r.disposed
}
