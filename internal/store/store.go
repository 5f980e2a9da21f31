package store

import (
	"encoding/json"
	"fmt"
	"io"

	"bookban-guard/internal/core/ports"
)

var _ ports.Slots = (*Inventory)(nil)

// Inventory is a fixed-size array of item stacks. It is live host storage:
// reads and writes take effect immediately and it is not safe for
// concurrent use.
type Inventory struct {
	slots []*Stack
}

// NewInventory creates an empty inventory with size slots.
func NewInventory(size int) *Inventory {
	return &Inventory{
		slots: make([]*Stack, size),
	}
}

func (inv *Inventory) Size() int {
	return len(inv.slots)
}

// Item returns the stack in slot, or nil when the slot is empty.
func (inv *Inventory) Item(slot int) ports.Item {
	if s := inv.slots[slot]; s != nil {
		return s
	}
	return nil
}

// Stack is Item without the interface conversion.
func (inv *Inventory) Stack(slot int) *Stack {
	return inv.slots[slot]
}

// SetItem stores item in slot. Only *Stack values and nil are accepted.
func (inv *Inventory) SetItem(slot int, item ports.Item) {
	if item == nil {
		inv.slots[slot] = nil
		return
	}
	s, ok := item.(*Stack)
	if !ok {
		panic(fmt.Sprintf("store: cannot place %T in an inventory", item))
	}
	inv.slots[slot] = s
}

// Occupied returns the number of non-empty slots.
func (inv *Inventory) Occupied() int {
	n := 0
	for _, s := range inv.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// slotRecord is the serialized form of one occupied slot.
type slotRecord struct {
	Slot  int    `json:"slot"`
	Stack *Stack `json:"stack"`
}

type inventoryRecord struct {
	Size  int          `json:"size"`
	Slots []slotRecord `json:"slots"`
}

func (inv *Inventory) record() inventoryRecord {
	rec := inventoryRecord{Size: len(inv.slots), Slots: make([]slotRecord, 0, inv.Occupied())}
	for i, s := range inv.slots {
		if s != nil {
			rec.Slots = append(rec.Slots, slotRecord{Slot: i, Stack: s})
		}
	}
	return rec
}

// Snapshot writes the inventory to w as JSON.
func (inv *Inventory) Snapshot(w io.Writer) error {
	return json.NewEncoder(w).Encode(inv.record())
}

// Restore replaces the inventory's size and contents with those read from r.
func (inv *Inventory) Restore(r io.Reader) error {
	var rec inventoryRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return err
	}
	if rec.Size < 0 {
		return fmt.Errorf("store: negative inventory size %d", rec.Size)
	}
	slots := make([]*Stack, rec.Size)
	for _, sr := range rec.Slots {
		if sr.Slot < 0 || sr.Slot >= rec.Size {
			return fmt.Errorf("store: slot %d out of range [0,%d)", sr.Slot, rec.Size)
		}
		slots[sr.Slot] = sr.Stack
	}
	inv.slots = slots
	return nil
}
