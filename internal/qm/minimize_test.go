package qm

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patterns(terms []Term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Pattern()
	}
	return out
}

// checkEquivalence exhaustively compares the minimized cover against
// the defining truth sets at every input outside the don't-care set.
func checkEquivalence(t *testing.T, spec Spec, res *Result) {
	t.Helper()
	care, dont, err := spec.Normalize()
	require.NoError(t, err)
	for x := 0; x < 1<<spec.NumVars; x++ {
		if dont.Contains(x) {
			continue
		}
		require.Equal(t, care.Contains(x), res.Eval(x), "input %d", x)
	}
}

// checkPrimality verifies no cover term can lose a literal without the
// widened term escaping the allowed (care plus don't-care) set.
func checkPrimality(t *testing.T, spec Spec, res *Result) {
	t.Helper()
	care, dont, err := spec.Normalize()
	require.NoError(t, err)
	allowed := care.Union(dont)
	for _, term := range res.Cover {
		for bit := 0; bit < spec.NumVars; bit++ {
			mask := uint32(1) << bit
			if term.dashes&mask != 0 {
				continue
			}
			widened := Term{value: term.value &^ mask, dashes: term.dashes | mask, numVars: term.numVars}
			escapes := false
			for x := 0; x < 1<<spec.NumVars; x++ {
				if widened.Matches(x) && !allowed.Contains(x) {
					escapes = true
					break
				}
			}
			assert.True(t, escapes, "term %s is not prime: position %d is removable", term.Pattern(), bit)
		}
	}
}

func TestMinimizeTautology(t *testing.T) {
	res, err := Minimize(Spec{NumVars: 3, Terms: []int{0, 1, 2, 3, 4, 5, 6, 7}})
	require.NoError(t, err)
	assert.Equal(t, []string{"---"}, patterns(res.Cover))
	assert.Equal(t, "1", res.Expression)
}

func TestMinimizeConstantFalse(t *testing.T) {
	res, err := Minimize(Spec{NumVars: 3})
	require.NoError(t, err)
	assert.Empty(t, res.Cover)
	assert.Equal(t, "0", res.Expression)
}

func TestMinimizeNonAdjacentMinterms(t *testing.T) {
	res, err := Minimize(Spec{NumVars: 2, Terms: []int{0, 3}})
	require.NoError(t, err)
	assert.Equal(t, []string{"00", "11"}, patterns(res.Cover))
	assert.Equal(t, 2, res.Essentials)
	assert.Equal(t, "A'B' + AB", res.Expression)
}

func TestMinimizeTextbookFourVars(t *testing.T) {
	// Classic four-variable case with a known four-term minimal cover.
	spec := Spec{NumVars: 4, Terms: []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 14}}
	res, err := Minimize(spec)
	require.NoError(t, err)
	assert.Len(t, res.Cover, 4)
	checkEquivalence(t, spec, res)
	checkPrimality(t, spec, res)

	// Identical input must reproduce a bit-identical result.
	again, err := Minimize(spec)
	require.NoError(t, err)
	assert.Equal(t, res.Expression, again.Expression)
	assert.Equal(t, patterns(res.Cover), patterns(again.Cover))
}

func TestMinimizeWithDontCares(t *testing.T) {
	spec := Spec{NumVars: 4, Terms: []int{1, 3, 7, 11, 15}, DontCares: []int{0, 2, 5}}
	res, err := Minimize(spec)
	require.NoError(t, err)
	// --11 is essential; minterm 1 has two equally sized covers and
	// the pattern tie-break prefers 0--1 over 00--.
	assert.Equal(t, []string{"--11", "0--1"}, patterns(res.Cover))
	assert.Equal(t, "CD + A'D", res.Expression)
	checkEquivalence(t, spec, res)
}

func TestMinimizeCyclicChart(t *testing.T) {
	// Six minterms forming a cyclic chart: every minterm has two
	// covers, no PI is essential, and two exact three-term covers
	// exist. The tie-break contract picks the lexicographically least
	// pattern sequence.
	spec := Spec{NumVars: 3, Terms: []int{0, 1, 2, 5, 6, 7}}
	res, err := Minimize(spec)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Essentials)
	assert.Equal(t, []string{"-01", "0-0", "11-"}, patterns(res.Cover))
	assert.Equal(t, "B'C + A'C' + AB", res.Expression)
	checkEquivalence(t, spec, res)
}

func TestMinimizeMaxtermMode(t *testing.T) {
	// Maxterm input lists the zeros; the engine minimizes the
	// complement.
	spec := Spec{NumVars: 3, Terms: []int{0, 7}, Mode: Maxterm}
	res, err := Minimize(spec)
	require.NoError(t, err)
	checkEquivalence(t, spec, res)

	// Duality: minimizing the complementary minterm set directly must
	// agree.
	direct, err := Minimize(Spec{NumVars: 3, Terms: []int{1, 2, 3, 4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, direct.Expression, res.Expression)
}

func TestMinimizeParallelMatchesSerial(t *testing.T) {
	spec := Spec{NumVars: 4, Terms: []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 14}}
	serial, err := Minimize(spec)
	require.NoError(t, err)
	parallel, err := Minimize(spec, WithParallelism(4))
	require.NoError(t, err)
	assert.Equal(t, patterns(serial.Cover), patterns(parallel.Cover))
	assert.Equal(t, serial.Expression, parallel.Expression)
}

func TestMinimizeRandomEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 25; trial++ {
		numVars := 5 + rng.Intn(2)
		size := 1 << numVars
		var terms, dontCares []int
		for x := 0; x < size; x++ {
			switch rng.Intn(4) {
			case 0:
				terms = append(terms, x)
			case 1:
				dontCares = append(dontCares, x)
			}
		}
		spec := Spec{NumVars: numVars, Terms: terms, DontCares: dontCares}
		res, err := Minimize(spec)
		require.NoError(t, err, "trial %d", trial)
		checkEquivalence(t, spec, res)
		checkPrimality(t, spec, res)
	}
}

func TestMinimizeInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
	}{
		{"numvars too small", Spec{NumVars: 0, Terms: []int{0}}},
		{"numvars too large", Spec{NumVars: 21, Terms: []int{0}}},
		{"term out of range", Spec{NumVars: 2, Terms: []int{4}}},
		{"negative term", Spec{NumVars: 2, Terms: []int{-1}}},
		{"dont-care out of range", Spec{NumVars: 2, Terms: []int{0}, DontCares: []int{4}}},
		{"overlapping dont-care", Spec{NumVars: 2, Terms: []int{1}, DontCares: []int{1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Minimize(tc.spec)
			var inputErr *InvalidInputError
			require.ErrorAs(t, err, &inputErr)
		})
	}
}

func TestMinimizeSearchLimit(t *testing.T) {
	// The cyclic chart forces a Petrick expansion; a one-product
	// ceiling aborts it. The partial result is flagged, never silent.
	spec := Spec{NumVars: 3, Terms: []int{0, 1, 2, 5, 6, 7}}
	res, err := Minimize(spec, WithMaxProducts(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchLimit))
	require.NotNil(t, res)
	assert.True(t, res.Partial)
}

func TestMinimizeGenerationLimit(t *testing.T) {
	_, err := Minimize(Spec{NumVars: 3, Terms: []int{0, 1, 2, 3, 4, 5, 6, 7}}, WithMaxGenerations(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchLimit))
}
