package pointcloud_test

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/galaxy/internal/pointcloud"
	mockpointcloud "github.com/VoidMesh/galaxy/internal/testmocks/pointcloud"
)

// stubGenerator returns a buffer of the requested size, or an error for negative sizes.
type stubGenerator struct {
	calls int
}

func (g *stubGenerator) Generate(count int) (*pointcloud.Buffer, error) {
	g.calls++
	if count < 0 {
		return nil, pointcloud.InvalidParameter("count", count, "must not be negative")
	}
	return pointcloud.NewBuffer(count), nil
}

func newLifecycle(t *testing.T) (*pointcloud.Lifecycle[int], *mockpointcloud.MockSink, *stubGenerator) {
	ctrl := gomock.NewController(t)
	sink := mockpointcloud.NewMockSink(ctrl)
	gen := &stubGenerator{}
	return pointcloud.NewLifecycle[int]("galaxy", gen, sink, log.New(io.Discard)), sink, gen
}

func TestLifecycle_FirstRegenerationAttachesWithoutDispose(t *testing.T) {
	lc, sink, _ := newLifecycle(t)
	h1 := pointcloud.NewHandle()

	sink.EXPECT().Attach("galaxy", gomock.Any()).Return(h1)

	got, err := lc.Regenerate(10)
	require.NoError(t, err)
	assert.Equal(t, h1, got)

	buf, handle := lc.Current()
	require.NotNil(t, buf)
	assert.Equal(t, 10, buf.Len())
	assert.Equal(t, h1, handle)
	assert.Equal(t, "galaxy", lc.Name())
}

func TestLifecycle_DisposesBeforeAttach(t *testing.T) {
	lc, sink, _ := newLifecycle(t)
	h1, h2 := pointcloud.NewHandle(), pointcloud.NewHandle()

	gomock.InOrder(
		sink.EXPECT().Attach("galaxy", gomock.Any()).Return(h1),
		sink.EXPECT().Dispose(h1),
		sink.EXPECT().Attach("galaxy", gomock.Any()).Return(h2),
	)

	_, err := lc.Regenerate(5)
	require.NoError(t, err)
	first, _ := lc.Current()

	got, err := lc.Regenerate(7)
	require.NoError(t, err)
	assert.Equal(t, h2, got)

	second, handle := lc.Current()
	assert.Equal(t, h2, handle)
	assert.Equal(t, 7, second.Len())
	assert.NotSame(t, first, second)
	// the old buffer is never overwritten in place
	assert.Equal(t, 5, first.Len())
}

func TestLifecycle_FailureKeepsPreviousState(t *testing.T) {
	lc, sink, gen := newLifecycle(t)
	h1 := pointcloud.NewHandle()

	// No Dispose and only one Attach may happen.
	sink.EXPECT().Attach("galaxy", gomock.Any()).Return(h1).Times(1)

	_, err := lc.Regenerate(3)
	require.NoError(t, err)
	before, _ := lc.Current()

	got, err := lc.Regenerate(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pointcloud.ErrInvalidParameter))
	assert.Equal(t, h1, got)

	after, handle := lc.Current()
	assert.Same(t, before, after)
	assert.Equal(t, h1, handle)
	assert.Equal(t, 2, gen.calls)
}

func TestLifecycle_FailureBeforeFirstSuccess(t *testing.T) {
	lc, _, _ := newLifecycle(t)

	got, err := lc.Regenerate(-5)
	require.ErrorIs(t, err, pointcloud.ErrInvalidParameter)
	assert.True(t, got.IsZero())

	buf, handle := lc.Current()
	assert.Nil(t, buf)
	assert.True(t, handle.IsZero())
}

func TestLifecycle_Close(t *testing.T) {
	lc, sink, _ := newLifecycle(t)
	h1 := pointcloud.NewHandle()

	sink.EXPECT().Attach("galaxy", gomock.Any()).Return(h1)
	sink.EXPECT().Dispose(h1)

	_, err := lc.Regenerate(1)
	require.NoError(t, err)

	lc.Close()
	buf, handle := lc.Current()
	assert.Nil(t, buf)
	assert.True(t, handle.IsZero())

	// closing twice does not dispose again
	lc.Close()
}
