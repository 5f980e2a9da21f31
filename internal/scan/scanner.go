// Package scan walks a container tree and prices every book in it.
package scan

import (
	"fmt"

	"bookban-guard/internal/core/ports"
	"bookban-guard/internal/payload"
	"bookban-guard/internal/view"
)

// Candidate is a removable book. Remove clears the exact slot it was found in.
type Candidate struct {
	Cost   int
	Remove func()
}

// Result is the outcome of one scan. TotalCost equals the sum of the costs
// of Candidates, and the evictor keeps it that way as it removes them.
type Result struct {
	TotalCost  int
	Candidates []Candidate
	// Touched holds every view visited, root first, in discovery order. A
	// nested view always comes after the view that contains it.
	Touched []ports.ContainerView
}

// frame is one view being walked and the next slot to visit in it.
type frame struct {
	view ports.ContainerView
	size int
	next int
}

// Scan walks root depth first. Container items are unwrapped into their own
// view and descended into in place of being priced; books are priced and
// become candidates in discovery order. Nesting depth is limited only by
// memory since the walk keeps its own stack.
func Scan(root ports.ContainerView) (*Result, error) {
	res := &Result{Touched: []ports.ContainerView{root}}
	stack := []*frame{{view: root, size: root.Size()}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= top.size {
			stack = stack[:len(stack)-1]
			continue
		}
		slot := top.next
		top.next++

		item := top.view.Item(slot)
		if item == nil {
			continue
		}

		if item.IsContainer() {
			slots, writeBack, err := item.Unwrap()
			if err != nil {
				return nil, fmt.Errorf("scan: unwrap slot %d: %w", slot, err)
			}
			nested := view.NewSingle(slots, propagate(top.view, slot, item, writeBack))
			res.Touched = append(res.Touched, nested)
			stack = append(stack, &frame{view: nested, size: nested.Size()})
			continue
		}

		if !item.HasPages() {
			continue
		}

		cost := payload.Estimate(item.Pages())
		res.TotalCost += cost
		res.Candidates = append(res.Candidates, Candidate{
			Cost:   cost,
			Remove: removeFunc(top.view, slot),
		})
	}

	return res, nil
}

// propagate extends a nested write-back so that re-committing the item also
// marks the containing view dirty. Flushing children before parents then
// carries a deep removal all the way up.
func propagate(parent ports.ContainerView, slot int, item ports.Item, writeBack ports.WriteBack) ports.WriteBack {
	if writeBack == nil {
		return nil
	}
	return func() error {
		if err := writeBack(); err != nil {
			return err
		}
		parent.SetItem(slot, item)
		return nil
	}
}

func removeFunc(v ports.ContainerView, slot int) func() {
	return func() {
		v.SetItem(slot, nil)
	}
}
