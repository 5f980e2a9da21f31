package evict

import (
	"bookban-guard/internal/scan"
)

// Policy defines how the evictor picks the next candidate to remove.
type Policy interface {
	// SelectVictim returns the index of the candidate to remove next, or -1
	// if there is none.
	SelectVictim(candidates []scan.Candidate) int
}

// LargestFirst removes the most expensive candidate. On equal cost the one
// discovered first wins.
type LargestFirst struct{}

func (LargestFirst) SelectVictim(candidates []scan.Candidate) int {
	maxIndex := -1
	maxCost := -1
	for i, c := range candidates {
		// Strictly greater keeps the first of equal costs.
		if c.Cost > maxCost {
			maxCost = c.Cost
			maxIndex = i
		}
	}
	return maxIndex
}
