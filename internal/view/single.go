// Package view provides the ContainerView shapes the scanner works on.
package view

import (
	"bookban-guard/internal/core/ports"
)

var _ ports.ContainerView = (*Single)(nil)

// Single wraps one storage range. Mutations mark the view dirty; Flush runs
// the write-back once per batch of mutations.
type Single struct {
	slots     ports.Slots
	writeBack ports.WriteBack
	dirty     bool
}

// NewSingle wraps slots. writeBack may be nil for storage that is already live.
func NewSingle(slots ports.Slots, writeBack ports.WriteBack) *Single {
	return &Single{
		slots:     slots,
		writeBack: writeBack,
	}
}

func (v *Single) Size() int {
	return v.slots.Size()
}

func (v *Single) Item(slot int) ports.Item {
	return v.slots.Item(slot)
}

func (v *Single) SetItem(slot int, item ports.Item) {
	v.slots.SetItem(slot, item)
	v.dirty = true
}

// Dirty reports whether there are mutations not yet flushed.
func (v *Single) Dirty() bool {
	return v.dirty
}

// Flush runs the write-back if the view is dirty. A failed write-back leaves
// the view dirty so a later flush retries it.
func (v *Single) Flush() error {
	if !v.dirty {
		return nil
	}
	if v.writeBack != nil {
		if err := v.writeBack(); err != nil {
			return err
		}
	}
	v.dirty = false
	return nil
}
