package store

import (
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterials(t *testing.T) {
	assert.True(t, IsContainerMaterial(ShulkerBox))
	assert.True(t, IsContainerMaterial("red_shulker_box"))
	assert.Equal(t, 27, ContainerSize("light_blue_shulker_box"))
	assert.Equal(t, 5, ContainerSize(Hopper))
	assert.False(t, IsContainerMaterial(WrittenBook))
	assert.False(t, IsContainerMaterial("stone"))

	assert.True(t, IsBookMaterial(WrittenBook))
	assert.True(t, IsBookMaterial(WritableBook))
	assert.False(t, IsBookMaterial("paper"))
}

func TestStack_Capabilities(t *testing.T) {
	book := NewBook("t")
	assert.True(t, book.HasPages())
	assert.False(t, book.IsContainer())
	assert.Empty(t, book.Pages())

	box, err := NewContainer(ShulkerBox, nil)
	require.NoError(t, err)
	assert.True(t, box.IsContainer())
	assert.False(t, box.HasPages())

	plain := &Stack{Material: "stone", Amount: 1}
	assert.False(t, plain.IsContainer())
	assert.False(t, plain.HasPages())
}

func TestNewContainer_RejectsNonContainer(t *testing.T) {
	_, err := NewContainer("stone", NewInventory(1))
	assert.ErrorIs(t, err, ErrNotContainer)
}

func TestStack_UnwrapEmptyState(t *testing.T) {
	box, err := NewContainer(Hopper, nil)
	require.NoError(t, err)

	slots, writeBack, err := box.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 5, slots.Size())
	assert.NotNil(t, writeBack)
}

func TestStack_UnwrapNotContainer(t *testing.T) {
	_, _, err := NewBook("t").Unwrap()
	assert.ErrorIs(t, err, ErrNotContainer)
}

func TestStack_WriteBackCommitsMutation(t *testing.T) {
	inner := NewInventory(27)
	inner.SetItem(3, NewBook("b", "hello"))
	box, err := NewContainer(ShulkerBox, inner)
	require.NoError(t, err)

	slots, writeBack, err := box.Unwrap()
	require.NoError(t, err)
	require.NotNil(t, slots.Item(3))

	slots.SetItem(3, nil)

	// Not visible until written back.
	before, err := box.Contents()
	require.NoError(t, err)
	assert.NotNil(t, before.Item(3))

	require.NoError(t, writeBack())

	after, err := box.Contents()
	require.NoError(t, err)
	assert.Nil(t, after.Item(3))
	assert.Equal(t, 27, after.Size())
}

func TestState_RoundTripNested(t *testing.T) {
	innermost := NewInventory(9)
	innermost.SetItem(8, NewBook("deep", "ünïcödé", "€"))
	dispenser, err := NewContainer(Dispenser, innermost)
	require.NoError(t, err)

	middle := NewInventory(27)
	middle.SetItem(0, dispenser)

	state, err := EncodeState(middle)
	require.NoError(t, err)

	decoded, err := DecodeState(state)
	require.NoError(t, err)
	inner, err := decoded.Stack(0).Contents()
	require.NoError(t, err)
	assert.Equal(t, []string{"ünïcödé", "€"}, inner.Stack(8).Pages())
}

func TestDecodeState_Garbage(t *testing.T) {
	_, err := DecodeState([]byte("not zstd"))
	assert.Error(t, err)
}

func TestCodecConstructorsPanicOnBadOptions(t *testing.T) {
	assert.Panics(t, func() { mustEncoder(zstd.WithEncoderLevel(zstd.EncoderLevel(99))) })
	assert.Panics(t, func() { mustDecoder(zstd.WithDecoderMaxMemory(0)) })
	assert.NotPanics(t, func() { mustEncoder(zstd.WithEncoderLevel(zstd.SpeedFastest)) })
}
