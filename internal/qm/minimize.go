// Package qm minimizes Boolean functions with the Quine-McCluskey
// procedure: prime implicant generation by iterative term combination,
// essential implicant extraction from the coverage chart, and minimal
// cover selection over the residual minterms via Petrick's method.
package qm

import (
	"errors"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxVars is the largest supported variable count. Minterm indices fit
// comfortably in an int and patterns in a uint32.
const MaxVars = 20

// Mode selects how Spec.Terms is interpreted.
type Mode int

const (
	// Minterm lists the input combinations where the function is 1.
	Minterm Mode = iota
	// Maxterm lists the combinations where the function is 0; the care
	// minterms are derived as the complement before minimization.
	Maxterm
)

func (m Mode) String() string {
	if m == Maxterm {
		return "maxterm"
	}
	return "minterm"
}

// Spec is one minimization problem. It is plain caller-owned data;
// the engine keeps no state across runs.
type Spec struct {
	NumVars   int
	Terms     []int
	DontCares []int
	Mode      Mode
}

// Normalize validates the spec and derives the care and don't-care
// minterm sets. In maxterm mode the care set is the complement of the
// listed zero terms and the don't-cares.
func (s Spec) Normalize() (care, dont mapset.Set[int], err error) {
	if s.NumVars < 1 || s.NumVars > MaxVars {
		return nil, nil, &InvalidInputError{Field: "numvars", Value: s.NumVars, Reason: "must be between 1 and 20"}
	}
	size := 1 << s.NumVars

	listed := mapset.NewThreadUnsafeSet[int]()
	for _, t := range s.Terms {
		if t < 0 || t >= size {
			return nil, nil, &InvalidInputError{Field: "term", Value: t, Reason: "out of range"}
		}
		listed.Add(t)
	}
	dont = mapset.NewThreadUnsafeSet[int]()
	for _, d := range s.DontCares {
		if d < 0 || d >= size {
			return nil, nil, &InvalidInputError{Field: "dont-care", Value: d, Reason: "out of range"}
		}
		if listed.Contains(d) {
			return nil, nil, &InvalidInputError{Field: "dont-care", Value: d, Reason: "also listed as a term"}
		}
		dont.Add(d)
	}

	if s.Mode == Maxterm {
		care = mapset.NewThreadUnsafeSet[int]()
		for i := 0; i < size; i++ {
			if !listed.Contains(i) && !dont.Contains(i) {
				care.Add(i)
			}
		}
		return care, dont, nil
	}
	return listed, dont, nil
}

// Result is the output of one minimization run.
type Result struct {
	NumVars    int
	Primes     []Term
	Cover      []Term
	Essentials int
	Expression string
	// Partial is set when the cover search hit its ceiling and Cover
	// holds only the essential PIs. It always travels with
	// ErrSearchLimit, never silently.
	Partial bool
}

// Eval evaluates the minimized function at one input combination.
func (r *Result) Eval(index int) bool {
	for _, t := range r.Cover {
		if t.Matches(index) {
			return true
		}
	}
	return false
}

type options struct {
	maxGenerations int
	maxProducts    int
	parallelism    int
}

// Option configures a minimization run.
type Option func(*options)

// WithMaxGenerations caps the combiner's generation count. The default
// of numvars+1 is unreachable for valid input; the cap exists so a bug
// surfaces as ErrSearchLimit instead of a hang.
func WithMaxGenerations(n int) Option {
	return func(o *options) { o.maxGenerations = n }
}

// WithMaxProducts caps the number of live products in the Petrick
// expansion.
func WithMaxProducts(n int) Option {
	return func(o *options) { o.maxProducts = n }
}

// WithParallelism fans the per-generation pair scan out across up to n
// workers. The result is identical to a serial run.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

func buildOptions(numVars int, opts []Option) options {
	o := options{
		maxGenerations: numVars + 1,
		maxProducts:    1 << 16,
		parallelism:    1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Minimize reduces the function described by spec to a minimal
// sum-of-products cover. The returned cover is deterministic: among
// equally small covers it prefers fewest total literals, then the
// lexicographically least pattern sequence.
func Minimize(spec Spec, opts ...Option) (*Result, error) {
	care, dont, err := spec.Normalize()
	if err != nil {
		return nil, err
	}
	opt := buildOptions(spec.NumVars, opts)

	if care.Cardinality() == 0 {
		return &Result{NumVars: spec.NumVars, Expression: FormatSOP(nil, spec.NumVars)}, nil
	}

	// Don't-cares join the combination phase so they can widen
	// implicants, but never appear in the coverage obligation.
	indices := care.Union(dont).ToSlice()
	sort.Ints(indices)
	initial := make([]Term, len(indices))
	for i, idx := range indices {
		initial[i] = FromIndex(idx, spec.NumVars)
	}

	primes, err := primeImplicants(initial, opt)
	if err != nil {
		return nil, err
	}
	ch, err := buildChart(primes, care)
	if err != nil {
		return nil, err
	}
	essentials, residual := extractEssentials(ch)

	chosen, err := solveCover(ch, essentials, residual, opt)
	if errors.Is(err, ErrSearchLimit) {
		// Hand the caller what was proven so far, explicitly flagged.
		res := &Result{NumVars: spec.NumVars, Primes: primes, Essentials: len(essentials), Partial: true}
		res.Cover = coverTerms(ch, essentials, nil)
		res.Expression = FormatSOP(res.Cover, spec.NumVars)
		return res, err
	}
	if err != nil {
		return nil, err
	}

	res := &Result{NumVars: spec.NumVars, Primes: primes, Essentials: len(essentials)}
	res.Cover = coverTerms(ch, essentials, chosen)
	res.Expression = FormatSOP(res.Cover, spec.NumVars)
	return res, nil
}

func coverTerms(c *chart, essentials, chosen []int) []Term {
	out := make([]Term, 0, len(essentials)+len(chosen))
	for _, i := range essentials {
		out = append(out, c.pis[i])
	}
	for _, i := range chosen {
		out = append(out, c.pis[i])
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
