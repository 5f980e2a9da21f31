package store

import (
	"bytes"
	"testing"

	"bookban-guard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_SetGet(t *testing.T) {
	inv := NewInventory(3)
	book := NewBook("notes", "page one")

	inv.SetItem(1, book)

	assert.Equal(t, 3, inv.Size())
	assert.Nil(t, inv.Item(0))
	assert.Same(t, book, inv.Stack(1))
	assert.Equal(t, 1, inv.Occupied())

	inv.SetItem(1, nil)
	assert.Nil(t, inv.Item(1))
	assert.Equal(t, 0, inv.Occupied())
}

func TestInventory_EmptySlotIsNilInterface(t *testing.T) {
	inv := NewInventory(1)
	// A typed nil would make the scanner treat an empty slot as an item.
	assert.True(t, inv.Item(0) == nil)
}

func TestInventory_SnapshotRestore(t *testing.T) {
	inv := NewInventory(5)
	inv.SetItem(0, NewBook("a", "x", "y"))
	inv.SetItem(4, &Stack{Material: "stone", Amount: 64})

	var buf bytes.Buffer
	require.NoError(t, inv.Snapshot(&buf))

	restored := &Inventory{}
	require.NoError(t, restored.Restore(&buf))

	assert.Equal(t, 5, restored.Size())
	assert.Equal(t, []string{"x", "y"}, restored.Stack(0).Pages())
	assert.Equal(t, 64, restored.Stack(4).Amount)
	assert.Nil(t, restored.Item(2))
}

func TestInventory_RestoreRejectsOutOfRange(t *testing.T) {
	inv := &Inventory{}
	err := inv.Restore(bytes.NewBufferString(`{"size":2,"slots":[{"slot":2,"stack":{"material":"stone"}}]}`))
	assert.Error(t, err)
}

func TestInventory_SetItemRejectsForeignItems(t *testing.T) {
	inv := NewInventory(1)
	assert.Panics(t, func() {
		inv.SetItem(0, foreignItem{})
	})
}

type foreignItem struct{}

func (foreignItem) IsContainer() bool { return false }
func (foreignItem) Unwrap() (ports.Slots, ports.WriteBack, error) {
	return nil, nil, ErrNotContainer
}
func (foreignItem) HasPages() bool { return false }
func (foreignItem) Pages() []string { return nil }
