package qm

import (
	"math/bits"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// product is one candidate cover during Petrick expansion: a bitset
// over the non-essential candidate PIs. Products live in a flat arena
// and are combined iteratively, never recursively, so the expansion
// ceiling is enforceable.
type product struct {
	bits []uint64
	size int
}

func newProduct(words int) product {
	return product{bits: make([]uint64, words)}
}

func (p product) with(i int) product {
	q := product{bits: make([]uint64, len(p.bits)), size: p.size}
	copy(q.bits, p.bits)
	if !q.has(i) {
		q.bits[i/64] |= 1 << (i % 64)
		q.size++
	}
	return q
}

func (p product) has(i int) bool {
	return p.bits[i/64]&(1<<(i%64)) != 0
}

// subsetOf reports whether every PI in p also appears in q.
func (p product) subsetOf(q product) bool {
	for w := range p.bits {
		if p.bits[w]&^q.bits[w] != 0 {
			return false
		}
	}
	return true
}

func (p product) fingerprint() string {
	buf := make([]byte, 0, len(p.bits)*8)
	for _, w := range p.bits {
		for s := 0; s < 64; s += 8 {
			buf = append(buf, byte(w>>s))
		}
	}
	return string(buf)
}

func (p product) members() []int {
	var out []int
	for w, word := range p.bits {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, w*64+b)
			word &= word - 1
		}
	}
	return out
}

// solveCover selects a minimum cover of the residual care minterms
// from the non-essential PIs via Petrick's method: each residual
// minterm contributes a sum of its covering candidates, the
// product-of-sums is expanded iteratively, and absorption prunes
// non-minimal products eagerly. Ties between minimum-cardinality
// covers break on total literal count, then on the lexicographic
// order of the candidates' sorted patterns.
func solveCover(c *chart, essentials []int, residual mapset.Set[int], opt options) ([]int, error) {
	if residual.Cardinality() == 0 {
		return nil, nil
	}

	isEssential := make(map[int]bool, len(essentials))
	for _, i := range essentials {
		isEssential[i] = true
	}

	// Candidates are non-essential PIs covering at least one residual
	// minterm. PIs covering only don't-cares never qualify.
	var cands []int
	candPos := make(map[int]int)
	for i := range c.pis {
		if isEssential[i] {
			continue
		}
		if c.byPI[i].Intersect(residual).Cardinality() == 0 {
			continue
		}
		candPos[i] = len(cands)
		cands = append(cands, i)
	}

	minterms := residual.ToSlice()
	sort.Ints(minterms)
	words := (len(cands) + 63) / 64

	products := []product{newProduct(words)}
	for _, m := range minterms {
		var sum []int
		for _, i := range c.byMinterm[m] {
			if pos, ok := candPos[i]; ok {
				sum = append(sum, pos)
			}
		}
		if len(sum) == 0 {
			// Essential extraction already removed every minterm an
			// essential covers, so an empty sum is a chart bug.
			return nil, &UnsatisfiableMintermError{Minterm: m}
		}

		next := make([]product, 0, len(products)*len(sum))
		seen := make(map[string]bool)
		for _, p := range products {
			for _, cand := range sum {
				q := p.with(cand)
				fp := q.fingerprint()
				if seen[fp] {
					continue
				}
				seen[fp] = true
				next = append(next, q)
			}
		}
		products = absorb(next)
		if len(products) > opt.maxProducts {
			return nil, errors.Wrapf(ErrSearchLimit, "petrick expansion grew to %d products", len(products))
		}
	}

	best := -1
	for i := range products {
		if best < 0 || c.betterProduct(products[i], products[best], cands) {
			best = i
		}
	}
	if best < 0 {
		return nil, &UnsatisfiableMintermError{Minterm: minterms[0]}
	}

	chosen := make([]int, 0, products[best].size)
	for _, pos := range products[best].members() {
		chosen = append(chosen, cands[pos])
	}
	sort.Ints(chosen)
	return chosen, nil
}

// absorb drops every product that is a proper superset of another
// (X+XY = X). Products are sorted smallest-first so each survivor only
// needs checking against smaller survivors.
func absorb(products []product) []product {
	sort.SliceStable(products, func(i, j int) bool { return products[i].size < products[j].size })
	kept := products[:0:0]
	for _, p := range products {
		dominated := false
		for _, k := range kept {
			if k.subsetOf(p) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}
	return kept
}

// betterProduct is the deterministic cover tie-break: fewest PIs, then
// fewest total literals, then lexicographic on the sorted pattern
// sequence.
func (c *chart) betterProduct(a, b product, cands []int) bool {
	if a.size != b.size {
		return a.size < b.size
	}
	la, lb := c.productLiterals(a, cands), c.productLiterals(b, cands)
	if la != lb {
		return la < lb
	}
	pa, pb := c.productPatterns(a, cands), c.productPatterns(b, cands)
	for i := range pa {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return false
}

func (c *chart) productLiterals(p product, cands []int) int {
	total := 0
	for _, pos := range p.members() {
		total += c.pis[cands[pos]].Literals()
	}
	return total
}

func (c *chart) productPatterns(p product, cands []int) []string {
	out := make([]string, 0, p.size)
	for _, pos := range p.members() {
		out = append(out, c.pis[cands[pos]].Pattern())
	}
	sort.Strings(out)
	return out
}
