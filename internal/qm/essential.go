package qm

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// extractEssentials finds the PIs that are the sole cover of some care
// minterm. Essentiality is defined per minterm against the full PI
// set, so a single pass suffices. It returns the essential PI indices
// in ascending order and the residual care minterms no essential
// covers.
func extractEssentials(c *chart) ([]int, mapset.Set[int]) {
	essential := mapset.NewThreadUnsafeSet[int]()
	for _, m := range c.minterms() {
		if covers := c.byMinterm[m]; len(covers) == 1 {
			essential.Add(covers[0])
		}
	}

	residual := mapset.NewThreadUnsafeSet[int]()
	for m := range c.byMinterm {
		residual.Add(m)
	}
	for _, i := range essential.ToSlice() {
		residual = residual.Difference(c.byPI[i])
	}

	idx := essential.ToSlice()
	sort.Ints(idx)
	return idx, residual
}
