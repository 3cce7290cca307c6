package qm

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// genResult is one adjacent-group scan's contribution to a generation:
// the merged terms it produced and the input terms it absorbed.
// Results from independent scans merge by plain set union.
type genResult struct {
	merged   map[key]Term
	absorbed map[key]bool
}

// primeImplicants runs the Quine-McCluskey merge phase. Each
// generation pairs terms from adjacent ones-count groups, merges pairs
// differing in one fixed position, and promotes terms absorbed by no
// pair to the prime implicant set. The loop ends when a generation
// yields no merges. Dash count strictly increases per generation and
// is bounded by the variable count, so the generation ceiling is
// defensive only.
func primeImplicants(initial []Term, opt options) ([]Term, error) {
	current := dedupe(initial)

	var primes []Term
	promoted := make(map[key]bool)

	for gen := 0; len(current) > 0; gen++ {
		if gen > opt.maxGenerations {
			return nil, errors.Wrapf(ErrSearchLimit, "no convergence after %d combination generations", gen)
		}
		res := combineGeneration(groupByOnes(current), opt)
		for _, t := range current {
			k := t.key()
			if !res.absorbed[k] && !promoted[k] {
				promoted[k] = true
				primes = append(primes, t)
			}
		}
		current = current[:0]
		for _, t := range res.merged {
			current = append(current, t)
		}
	}

	sort.Slice(primes, func(i, j int) bool { return less(primes[i], primes[j]) })
	return primes, nil
}

// combineGeneration scans every adjacent group pair of one generation.
// Pairs are independent, so with parallelism enabled they fan out
// across workers; the union of their results is identical to a serial
// scan.
func combineGeneration(groups []group, opt options) genResult {
	var pairs [][2]group
	for i := 0; i+1 < len(groups); i++ {
		if groups[i+1].ones == groups[i].ones+1 {
			pairs = append(pairs, [2]group{groups[i], groups[i+1]})
		}
	}

	if opt.parallelism <= 1 || len(pairs) < 2 {
		total := newGenResult()
		for _, p := range pairs {
			total.merge(combinePair(p[0].terms, p[1].terms))
		}
		return total
	}

	results := make([]genResult, len(pairs))
	var eg errgroup.Group
	eg.SetLimit(opt.parallelism)
	for i, p := range pairs {
		i, p := i, p
		eg.Go(func() error {
			results[i] = combinePair(p[0].terms, p[1].terms)
			return nil
		})
	}
	// Workers never fail; Wait only synchronizes.
	_ = eg.Wait()

	total := newGenResult()
	for _, r := range results {
		total.merge(r)
	}
	return total
}

// combinePair merges every combinable term pair between two adjacent
// groups.
func combinePair(lo, hi []Term) genResult {
	res := newGenResult()
	for _, a := range lo {
		for _, b := range hi {
			if !CanCombine(a, b) {
				continue
			}
			m, err := Combine(a, b)
			if err != nil {
				continue
			}
			res.absorbed[a.key()] = true
			res.absorbed[b.key()] = true
			if _, ok := res.merged[m.key()]; !ok {
				res.merged[m.key()] = m
			}
		}
	}
	return res
}

func newGenResult() genResult {
	return genResult{
		merged:   make(map[key]Term),
		absorbed: make(map[key]bool),
	}
}

func (r genResult) merge(other genResult) {
	for k, t := range other.merged {
		if _, ok := r.merged[k]; !ok {
			r.merged[k] = t
		}
	}
	for k := range other.absorbed {
		r.absorbed[k] = true
	}
}

// dedupe drops pattern duplicates, keeping first occurrence order.
func dedupe(terms []Term) []Term {
	seen := make(map[key]bool, len(terms))
	out := terms[:0:0]
	for _, t := range terms {
		k := t.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
