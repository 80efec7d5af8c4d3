package pointcloud

import "github.com/google/uuid"

//go:generate mockgen -source=sink.go -destination=../testmocks/pointcloud/mock_sink.go -package=mockpointcloud

// Handle identifies a buffer registered with the display. The zero value means none.
type Handle uuid.UUID

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

func (h Handle) IsZero() bool {
	return h == Handle(uuid.Nil)
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// MarshalText lets handles appear as plain UUID strings in JSON.
func (h Handle) MarshalText() ([]byte, error) {
	return uuid.UUID(h).MarshalText()
}

// Sink is the display side of the lifecycle.
type Sink interface {
	// Attach registers buf under name and returns its handle.
	Attach(name string, buf *Buffer) Handle
	// Dispose detaches a previously attached handle.
	Dispose(h Handle)
}
