package dump

import (
	"errors"
	"fmt"

	"bookban-guard/internal/core/ports"
	"bookban-guard/internal/store"
	"bookban-guard/internal/view"

	"github.com/google/uuid"
)

var (
	// ErrSlotRange is returned for slot indices outside their range.
	ErrSlotRange = errors.New("slot index out of range")
	// ErrRangeSize is returned for range sizes the host never creates.
	ErrRangeSize = errors.New("range size out of bounds")
)

// Tree is a document loaded into live host storage.
type Tree struct {
	Subject uuid.UUID
	Names   []string
	Ranges  []*store.Inventory
	// Root spans all ranges in document order.
	Root ports.ContainerView
}

// Build loads doc into host inventories. Nested contents are encoded into
// their container's state the same way the host persists them.
func Build(doc *Document) (*Tree, error) {
	t := &Tree{}
	if doc.Subject != "" {
		id, err := uuid.Parse(doc.Subject)
		if err != nil {
			return nil, fmt.Errorf("subject: %w", err)
		}
		t.Subject = id
	}

	views := make([]ports.ContainerView, 0, len(doc.Ranges))
	for i, r := range doc.Ranges {
		if r.Size <= 0 {
			return nil, fmt.Errorf("range %d: %w: %d", i, ErrRangeSize, r.Size)
		}
		inv, err := buildInventory(r, r.Size)
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		t.Names = append(t.Names, r.Name)
		t.Ranges = append(t.Ranges, inv)
		views = append(views, view.NewSingle(inv, nil))
	}

	if len(views) == 1 {
		t.Root = views[0]
	} else {
		t.Root = view.NewComposite(views...)
	}
	return t, nil
}

// Item returns the item at slot of range r, or nil when the position is
// empty or does not exist.
func (t *Tree) Item(r, slot int) ports.Item {
	if r < 0 || r >= len(t.Ranges) {
		return nil
	}
	inv := t.Ranges[r]
	if slot < 0 || slot >= inv.Size() {
		return nil
	}
	return inv.Item(slot)
}

func buildInventory(r Range, size int) (*store.Inventory, error) {
	if size > store.MaxInventorySize {
		return nil, fmt.Errorf("%w: %d > %d", ErrRangeSize, size, store.MaxInventorySize)
	}
	inv := store.NewInventory(size)
	for _, s := range r.Slots {
		if s.Index < 0 || s.Index >= size {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSlotRange, s.Index, size)
		}
		if inv.Item(s.Index) != nil {
			return nil, fmt.Errorf("slot %d: duplicate", s.Index)
		}
		stack, err := buildStack(s)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", s.Index, err)
		}
		inv.SetItem(s.Index, stack)
	}
	return inv, nil
}

func buildStack(s Slot) (*store.Stack, error) {
	amount := s.Amount
	if amount == 0 {
		amount = 1
	}
	stack := &store.Stack{
		Material: s.Material,
		Amount:   amount,
		Title:    s.Title,
		Author:   s.Author,
		Text:     s.Pages,
	}
	if s.Contents == nil {
		return stack, nil
	}

	if !store.IsContainerMaterial(s.Material) {
		return nil, fmt.Errorf("%w: %s has contents", store.ErrNotContainer, s.Material)
	}
	size := s.Contents.Size
	if size == 0 {
		size = store.ContainerSize(s.Material)
	}
	inner, err := buildInventory(*s.Contents, size)
	if err != nil {
		return nil, err
	}
	state, err := store.EncodeState(inner)
	if err != nil {
		return nil, err
	}
	stack.State = state
	return stack, nil
}

// Capture converts the tree's current host state back into a document.
func Capture(t *Tree) (*Document, error) {
	doc := &Document{}
	if t.Subject != uuid.Nil {
		doc.Subject = t.Subject.String()
	}
	for i, inv := range t.Ranges {
		r, err := captureInventory(inv)
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		if i < len(t.Names) {
			r.Name = t.Names[i]
		}
		doc.Ranges = append(doc.Ranges, r)
	}
	return doc, nil
}

func captureInventory(inv *store.Inventory) (Range, error) {
	r := Range{Size: inv.Size()}
	for i := 0; i < inv.Size(); i++ {
		stack := inv.Stack(i)
		if stack == nil {
			continue
		}
		slot := Slot{
			Index:    i,
			Material: stack.Material,
			Amount:   stack.Amount,
			Title:    stack.Title,
			Author:   stack.Author,
			Pages:    stack.Text,
		}
		if stack.IsContainer() && len(stack.State) > 0 {
			contents, err := stack.Contents()
			if err != nil {
				return r, fmt.Errorf("slot %d: %w", i, err)
			}
			nested, err := captureInventory(contents)
			if err != nil {
				return r, fmt.Errorf("slot %d: %w", i, err)
			}
			slot.Contents = &nested
		}
		r.Slots = append(r.Slots, slot)
	}
	return r, nil
}
