package view

import (
	"errors"
	"fmt"
	"sort"

	"bookban-guard/internal/core/ports"
)

var _ ports.ContainerView = (*Composite)(nil)

// Composite joins several views end to end into one index space.
type Composite struct {
	parts   []ports.ContainerView
	offsets []int // offsets[i] is the first global slot of parts[i]
	size    int
}

// NewComposite builds a composite over parts in order. Part sizes are read
// once; they are fixed for the lifetime of a view.
func NewComposite(parts ...ports.ContainerView) *Composite {
	c := &Composite{
		parts:   parts,
		offsets: make([]int, len(parts)),
	}
	for i, p := range parts {
		c.offsets[i] = c.size
		c.size += p.Size()
	}
	return c
}

// TopBottom spans an open screen's slots followed by the viewer's own
// carried slots. Both ranges are live storage and need no write-back.
func TopBottom(top, bottom ports.Slots) *Composite {
	return NewComposite(NewSingle(top, nil), NewSingle(bottom, nil))
}

func (c *Composite) Size() int {
	return c.size
}

func (c *Composite) Item(slot int) ports.Item {
	part, local := c.locate(slot)
	return c.parts[part].Item(local)
}

func (c *Composite) SetItem(slot int, item ports.Item) {
	part, local := c.locate(slot)
	c.parts[part].SetItem(local, item)
}

// Flush flushes every part, even after a failure, and joins the errors.
func (c *Composite) Flush() error {
	var errs []error
	for i, p := range c.parts {
		if err := p.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("part %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Composite) locate(slot int) (int, int) {
	if slot < 0 || slot >= c.size {
		panic(fmt.Sprintf("view: slot %d out of range [0,%d)", slot, c.size))
	}
	// Last part whose offset is <= slot. Empty parts share an offset with
	// their successor, so search for the first offset beyond slot.
	part := sort.Search(len(c.offsets), func(i int) bool {
		return c.offsets[i] > slot
	}) - 1
	return part, slot - c.offsets[part]
}
