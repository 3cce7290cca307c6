package qm

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// chart is the coverage relation between prime implicants and the care
// minterms. Don't-care minterms carry no coverage obligation and never
// appear on the minterm axis, but PIs covering only don't-cares remain
// in the PI list as (useless) candidates.
type chart struct {
	pis       []Term
	byMinterm map[int][]int     // care minterm -> indices into pis
	byPI      []mapset.Set[int] // pi index -> care minterms it covers
}

// buildChart constructs the coverage relation. Every care minterm must
// be covered by at least one PI; a gap is an internal invariant
// violation surfaced as UnsatisfiableMintermError.
func buildChart(pis []Term, care mapset.Set[int]) (*chart, error) {
	c := &chart{
		pis:       pis,
		byMinterm: make(map[int][]int, care.Cardinality()),
		byPI:      make([]mapset.Set[int], len(pis)),
	}
	for i, pi := range pis {
		c.byPI[i] = pi.Covered().Intersect(care)
		for _, m := range c.byPI[i].ToSlice() {
			c.byMinterm[m] = append(c.byMinterm[m], i)
		}
	}
	minterms := care.ToSlice()
	sort.Ints(minterms)
	for _, m := range minterms {
		if len(c.byMinterm[m]) == 0 {
			return nil, &UnsatisfiableMintermError{Minterm: m}
		}
		sort.Ints(c.byMinterm[m])
	}
	return c, nil
}

// minterms returns the care minterms in ascending order.
func (c *chart) minterms() []int {
	out := make([]int, 0, len(c.byMinterm))
	for m := range c.byMinterm {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}
