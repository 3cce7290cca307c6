package qm

import (
	"fmt"
	"math/bits"

	mapset "github.com/deckarep/golang-set/v2"
)

// Term is a product term over numVars variables, encoded as two
// parallel bitmasks: value holds the polarity of each fixed position,
// dashes marks positions the term does not constrain. Bit numVars-1 is
// variable A (the most significant bit of a minterm index). A Term is
// immutable once constructed; covered is derived from the pattern at
// construction time and never mutated.
type Term struct {
	value   uint32
	dashes  uint32
	numVars int
	covered mapset.Set[int]
}

// FromIndex builds the fully specified term for a single minterm.
func FromIndex(index, numVars int) Term {
	return Term{
		value:   uint32(index),
		dashes:  0,
		numVars: numVars,
		covered: mapset.NewThreadUnsafeSet(index),
	}
}

// CanCombine reports whether a and b have identical dash positions and
// differ in exactly one fixed position.
func CanCombine(a, b Term) bool {
	if a.numVars != b.numVars || a.dashes != b.dashes {
		return false
	}
	diff := a.value ^ b.value
	return diff != 0 && diff&(diff-1) == 0
}

// Combine merges two combinable terms by dashing out the position they
// differ in. The merged term covers the union of the inputs' minterms.
func Combine(a, b Term) (Term, error) {
	if !CanCombine(a, b) {
		return Term{}, fmt.Errorf("terms %s and %s cannot combine", a.Pattern(), b.Pattern())
	}
	diff := a.value ^ b.value
	return Term{
		value:   a.value &^ diff,
		dashes:  a.dashes | diff,
		numVars: a.numVars,
		covered: a.covered.Union(b.covered),
	}, nil
}

// Ones returns the number of 1 positions in the pattern. Dashes count
// as neither 0 nor 1.
func (t Term) Ones() int {
	return bits.OnesCount32(t.value)
}

// Literals returns the number of fixed positions, i.e. the literal
// count of the rendered product.
func (t Term) Literals() int {
	return t.numVars - bits.OnesCount32(t.dashes)
}

// NumVars returns the width of the term's pattern.
func (t Term) NumVars() int {
	return t.numVars
}

// Covered returns the minterm indices the term covers. The returned
// set must not be modified.
func (t Term) Covered() mapset.Set[int] {
	return t.covered
}

// CoversOnly reports whether every minterm the term covers lies in
// excluded. A prime implicant covering only don't-care minterms can
// never be essential and never helps a cover.
func (t Term) CoversOnly(excluded mapset.Set[int]) bool {
	return t.covered.IsSubset(excluded)
}

// Matches reports whether the term evaluates true for the given input
// combination.
func (t Term) Matches(index int) bool {
	return uint32(index)&^t.dashes == t.value
}

// Pattern renders the term as a string of 0, 1 and - symbols, variable
// A first. Patterns are the canonical identity of a term: two terms
// with equal patterns cover identical minterms.
func (t Term) Pattern() string {
	buf := make([]byte, t.numVars)
	for i := 0; i < t.numVars; i++ {
		bit := uint32(1) << (t.numVars - 1 - i)
		switch {
		case t.dashes&bit != 0:
			buf[i] = '-'
		case t.value&bit != 0:
			buf[i] = '1'
		default:
			buf[i] = '0'
		}
	}
	return string(buf)
}

// key is the fixed-width identity used for generation deduplication.
type key struct {
	value  uint32
	dashes uint32
}

func (t Term) key() key {
	return key{value: t.value, dashes: t.dashes}
}

// less orders terms by dash count descending (more general first),
// then by pattern. It is the canonical cover ordering.
func less(a, b Term) bool {
	da, db := bits.OnesCount32(a.dashes), bits.OnesCount32(b.dashes)
	if da != db {
		return da > db
	}
	return a.Pattern() < b.Pattern()
}
