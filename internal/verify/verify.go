// Package verify proves that a minimized cover is functionally
// equivalent to its defining truth sets. It builds a miter circuit --
// the cover XOR a reference encoding of the care minterms, restricted
// to inputs outside the don't-care set -- and hands its CNF to a SAT
// solver: the miter is unsatisfiable exactly when the cover is
// correct, and a satisfying assignment is a counterexample input.
package verify

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/pborges/qmc/internal/qm"
)

// MismatchError reports an input combination where the cover disagrees
// with the specified function.
type MismatchError struct {
	Index int
	Want  bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cover disagrees with specification at input %d (want %v)", e.Index, e.Want)
}

// Cover checks a cover against the function spec describes. It returns
// nil when the two are equivalent on every input outside the
// don't-care set, and a *MismatchError carrying a counterexample
// otherwise.
func Cover(spec qm.Spec, cover []qm.Term) error {
	care, dont, err := spec.Normalize()
	if err != nil {
		return err
	}

	c := logic.NewC()
	inputs := make([]z.Lit, spec.NumVars)
	for i := range inputs {
		inputs[i] = c.Lit()
	}

	covered := make([]z.Lit, 0, len(cover))
	for _, t := range cover {
		covered = append(covered, product(c, inputs, t.Pattern()))
	}
	got := c.Ors(covered...)

	want := indexDisjunction(c, inputs, spec.NumVars, care.ToSlice())
	free := indexDisjunction(c, inputs, spec.NumVars, dont.ToSlice())

	miter := c.And(c.Xor(got, want), free.Not())

	g := gini.New()
	c.ToCnfFrom(g, miter)
	// The circuit's constant-true literal is an ordinary variable in
	// the CNF; pin it so constant folding inside the circuit holds.
	g.Add(c.T)
	g.Add(z.LitNull)
	g.Assume(miter)
	if g.Solve() != 1 {
		return nil
	}

	index := 0
	for i, in := range inputs {
		if g.Value(in) {
			index |= 1 << (spec.NumVars - 1 - i)
		}
	}
	return &MismatchError{Index: index, Want: care.Contains(index)}
}

// product builds the AND of the pattern's fixed positions.
func product(c *logic.C, inputs []z.Lit, pattern string) z.Lit {
	var lits []z.Lit
	for i, sym := range pattern {
		switch sym {
		case '1':
			lits = append(lits, inputs[i])
		case '0':
			lits = append(lits, inputs[i].Not())
		}
	}
	return c.Ands(lits...)
}

// indexDisjunction builds the OR over the given minterm indices of
// their fully specified products.
func indexDisjunction(c *logic.C, inputs []z.Lit, numVars int, indices []int) z.Lit {
	terms := make([]z.Lit, 0, len(indices))
	for _, idx := range indices {
		lits := make([]z.Lit, numVars)
		for i := range inputs {
			if idx&(1<<(numVars-1-i)) != 0 {
				lits[i] = inputs[i]
			} else {
				lits[i] = inputs[i].Not()
			}
		}
		terms = append(terms, c.Ands(lits...))
	}
	return c.Ors(terms...)
}
