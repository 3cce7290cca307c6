package qm

import "sort"

// group holds one generation's terms sharing a ones count.
type group struct {
	ones  int
	terms []Term
}

// groupByOnes partitions a generation's terms by the number of 1
// symbols in their patterns, returned in ascending ones-count order.
// Two terms can only combine if their ones counts differ by exactly
// one, so the combiner only ever compares adjacent groups.
func groupByOnes(terms []Term) []group {
	byCount := make(map[int][]Term)
	for _, t := range terms {
		n := t.Ones()
		byCount[n] = append(byCount[n], t)
	}
	counts := make([]int, 0, len(byCount))
	for n := range byCount {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	groups := make([]group, len(counts))
	for i, n := range counts {
		groups[i] = group{ones: n, terms: byCount[n]}
	}
	return groups
}
