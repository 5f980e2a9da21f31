// Package evict removes books from a scan result until it fits a budget.
package evict

import (
	"slices"

	"bookban-guard/internal/scan"
)

// DefaultBudget is the aggregate payload size, in bytes, at which eviction
// starts. It sits below the smallest packet limit observed across server
// versions, with headroom for framing overhead.
const DefaultBudget = 1_400_000

// Outcome reports what an eviction pass did.
type Outcome struct {
	Removed int
	// Exhausted is set when the budget was still exceeded but no candidate
	// was left. It means the scan's accounting is off.
	Exhausted bool
}

// Evictor applies a Policy against a budget.
type Evictor struct {
	policy Policy
}

// Option configures an Evictor.
type Option func(*Evictor)

// WithPolicy replaces the default LargestFirst policy.
func WithPolicy(p Policy) Option {
	return func(e *Evictor) {
		e.policy = p
	}
}

// New creates an Evictor.
func New(opts ...Option) *Evictor {
	e := &Evictor{policy: LargestFirst{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evict removes candidates from res while res.TotalCost >= budget. Each
// removal runs the candidate's Remove and subtracts its cost, so TotalCost
// keeps matching the remaining candidates.
func (e *Evictor) Evict(res *scan.Result, budget int) Outcome {
	var out Outcome
	for res.TotalCost >= budget {
		idx := e.policy.SelectVictim(res.Candidates)
		if idx < 0 {
			out.Exhausted = true
			break
		}

		victim := res.Candidates[idx]
		res.Candidates = slices.Delete(res.Candidates, idx, idx+1)
		victim.Remove()

		res.TotalCost -= victim.Cost
		out.Removed++
	}
	return out
}

