package scan

import (
	"errors"
	"strings"
	"testing"

	"bookban-guard/internal/core/ports"
	"bookban-guard/internal/payload"
	"bookban-guard/internal/store"
	"bookban-guard/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContainer(t *testing.T, material string, inv *store.Inventory) *store.Stack {
	t.Helper()
	s, err := store.NewContainer(material, inv)
	require.NoError(t, err)
	return s
}

func sumCosts(cs []Candidate) int {
	total := 0
	for _, c := range cs {
		total += c.Cost
	}
	return total
}

func TestScan_FlatInventory(t *testing.T) {
	inv := store.NewInventory(5)
	inv.SetItem(0, store.NewBook("a", "hello"))
	inv.SetItem(2, &store.Stack{Material: "stone", Amount: 3})
	inv.SetItem(4, store.NewBook("b", "€€", "x"))

	res, err := Scan(view.NewSingle(inv, nil))
	require.NoError(t, err)

	want := payload.Estimate([]string{"hello"}) + payload.Estimate([]string{"€€", "x"})
	assert.Equal(t, want, res.TotalCost)
	assert.Equal(t, want, sumCosts(res.Candidates))
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, 6, res.Candidates[0].Cost)
	assert.Equal(t, 8, res.Candidates[1].Cost)
	assert.Len(t, res.Touched, 1)
}

func TestScan_NoPayload(t *testing.T) {
	inv := store.NewInventory(3)
	inv.SetItem(1, &store.Stack{Material: "dirt", Amount: 1})

	res, err := Scan(view.NewSingle(inv, nil))
	require.NoError(t, err)
	assert.Zero(t, res.TotalCost)
	assert.Empty(t, res.Candidates)
}

func TestScan_NestedAttributesCostAndTouchesViews(t *testing.T) {
	inner := store.NewInventory(27)
	inner.SetItem(5, store.NewBook("inner", strings.Repeat("a", 200)))

	outer := store.NewInventory(27)
	outer.SetItem(0, store.NewBook("first", "x"))
	outer.SetItem(1, mustContainer(t, store.ShulkerBox, inner))
	outer.SetItem(2, store.NewBook("last", "yy"))

	root := view.NewSingle(outer, nil)
	res, err := Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Candidates, 3)
	// Discovery order: slot 0, nested slot 5, slot 2.
	assert.Equal(t, 2, res.Candidates[0].Cost)
	assert.Equal(t, 202, res.Candidates[1].Cost)
	assert.Equal(t, 3, res.Candidates[2].Cost)
	assert.Equal(t, 207, res.TotalCost)

	require.Len(t, res.Touched, 2)
	assert.Same(t, root, res.Touched[0])
	assert.Equal(t, 27, res.Touched[1].Size())
}

func TestScan_RemoveClearsOwningSlot(t *testing.T) {
	inner := store.NewInventory(27)
	inner.SetItem(7, store.NewBook("inner", "payload"))
	box := mustContainer(t, store.ShulkerBox, inner)

	outer := store.NewInventory(9)
	outer.SetItem(4, box)

	res, err := Scan(view.NewSingle(outer, nil))
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)

	res.Candidates[0].Remove()

	nested := res.Touched[1].(*view.Single)
	assert.True(t, nested.Dirty())
	assert.Nil(t, nested.Item(7))

	require.NoError(t, nested.Flush())
	contents, err := box.Contents()
	require.NoError(t, err)
	assert.Nil(t, contents.Item(7))
	assert.Same(t, box, outer.Stack(4))
}

func TestScan_NestedWriteBackMarksParentDirty(t *testing.T) {
	deepest := store.NewInventory(9)
	deepest.SetItem(0, store.NewBook("deep", "payload"))
	inner := store.NewInventory(27)
	inner.SetItem(2, mustContainer(t, store.Dispenser, deepest))
	box := mustContainer(t, store.ShulkerBox, inner)

	outer := store.NewInventory(1)
	outer.SetItem(0, box)
	root := view.NewSingle(outer, nil)

	res, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, res.Touched, 3)
	require.Len(t, res.Candidates, 1)

	res.Candidates[0].Remove()
	for i := len(res.Touched) - 1; i >= 0; i-- {
		require.NoError(t, res.Touched[i].Flush())
	}

	middle, err := box.Contents()
	require.NoError(t, err)
	dispenser, err := middle.Stack(2).Contents()
	require.NoError(t, err)
	assert.Nil(t, dispenser.Item(0))
}

func TestScan_EmptyContainerIsTouched(t *testing.T) {
	outer := store.NewInventory(1)
	outer.SetItem(0, mustContainer(t, store.Barrel, nil))

	res, err := Scan(view.NewSingle(outer, nil))
	require.NoError(t, err)
	assert.Len(t, res.Touched, 2)
	assert.Empty(t, res.Candidates)
}

func TestScan_CompositeRoot(t *testing.T) {
	top := store.NewInventory(2)
	bottom := store.NewInventory(2)
	top.SetItem(1, store.NewBook("t", "aaa"))
	bottom.SetItem(0, store.NewBook("b", "bb"))

	root := view.TopBottom(top, bottom)
	res, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, 7, res.TotalCost)

	res.Candidates[1].Remove()
	assert.Nil(t, bottom.Item(0))
	assert.NotNil(t, top.Item(1))
}

// chain is a fake container item whose nested storage is held directly.
type chain struct {
	slots ports.Slots
	fail  error
}

func (c *chain) IsContainer() bool { return true }
func (c *chain) Unwrap() (ports.Slots, ports.WriteBack, error) {
	if c.fail != nil {
		return nil, nil, c.fail
	}
	return c.slots, nil, nil
}
func (c *chain) HasPages() bool { return false }
func (c *chain) Pages() []string { return nil }

// wrapperSlots is a one-slot range holding an arbitrary item.
type wrapperSlots struct {
	item ports.Item
}

func (w *wrapperSlots) Size() int { return 1 }
func (w *wrapperSlots) Item(int) ports.Item { return w.item }
func (w *wrapperSlots) SetItem(_ int, item ports.Item) { w.item = item }

func TestScan_DeepNesting(t *testing.T) {
	const depth = 10_000

	leaf := store.NewInventory(1)
	leaf.SetItem(0, store.NewBook("deep", "z"))

	var slots ports.Slots = leaf
	for i := 0; i < depth; i++ {
		slots = &wrapperSlots{item: &chain{slots: slots}}
	}

	res, err := Scan(view.NewSingle(slots, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCost)
	require.Len(t, res.Candidates, 1)
	assert.Len(t, res.Touched, depth+1)

	res.Candidates[0].Remove()
	assert.Nil(t, leaf.Item(0))
}

func TestScan_UnwrapFailurePropagates(t *testing.T) {
	boom := errors.New("invalidated")
	res, err := Scan(view.NewSingle(&wrapperSlots{item: &chain{fail: boom}}, nil))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func BenchmarkScan(b *testing.B) {
	page := strings.Repeat("€", 320)
	inner := store.NewInventory(27)
	for i := 0; i < inner.Size(); i++ {
		inner.SetItem(i, store.NewBook("b", page, page))
	}
	outer := store.NewInventory(27)
	for i := 0; i < outer.Size(); i++ {
		box, err := store.NewContainer(store.ShulkerBox, inner)
		if err != nil {
			b.Fatal(err)
		}
		outer.SetItem(i, box)
	}
	root := view.NewSingle(outer, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Scan(root); err != nil {
			b.Fatal(err)
		}
	}
}
