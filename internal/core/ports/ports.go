package ports

import (
	"github.com/google/uuid"
)

// Checker is the entry point used by the host's event layer.
type Checker interface {
	// CheckItem inspects a single item. Absent and non-container items are
	// ignored. onRemoved is part of the host contract but is not invoked.
	CheckItem(subject uuid.UUID, item Item, onRemoved func()) (int, error)

	// CheckInventory scans the view, evicts over-budget books and flushes
	// every visited view when anything was removed.
	CheckInventory(subject uuid.UUID, view ContainerView) (int, error)
}

// Slots is an indexable range of live host storage. Indices are 0 <= i < Size().
// A nil Item means the slot is empty.
type Slots interface {
	Size() int
	Item(slot int) Item
	SetItem(slot int, item Item)
}

// ContainerView is Slots with deferred persistence. Flush commits pending
// mutations and must be a no-op when nothing changed since the last flush.
type ContainerView interface {
	Slots
	Flush() error
}

// WriteBack re-commits a mutated nested inventory into the item that owns it.
type WriteBack func() error

// Item exposes the two capabilities the engine cares about.
type Item interface {
	// IsContainer reports whether the item stores another inventory.
	IsContainer() bool
	// Unwrap returns the live nested storage and the write-back that
	// persists it. Only valid when IsContainer is true.
	Unwrap() (Slots, WriteBack, error)

	// HasPages reports whether the item carries text pages.
	HasPages() bool
	Pages() []string
}

// Notifier delivers user-facing messages to a subject.
type Notifier interface {
	Notify(subject uuid.UUID, message string)
}
