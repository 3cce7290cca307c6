package qm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromIndex(t *testing.T) {
	cases := []struct {
		index   int
		numVars int
		pattern string
	}{
		{0, 3, "000"},
		{5, 3, "101"},
		{7, 3, "111"},
		{9, 4, "1001"},
		{1, 1, "1"},
	}
	for _, tc := range cases {
		term := FromIndex(tc.index, tc.numVars)
		assert.Equal(t, tc.pattern, term.Pattern())
		assert.Equal(t, []int{tc.index}, term.Covered().ToSlice())
		assert.Equal(t, tc.numVars, term.Literals())
	}
}

func TestCanCombine(t *testing.T) {
	a := FromIndex(0, 3) // 000
	b := FromIndex(1, 3) // 001
	c := FromIndex(3, 3) // 011
	assert.True(t, CanCombine(a, b))
	assert.True(t, CanCombine(b, c))
	assert.False(t, CanCombine(a, c), "terms differing in two positions")
	assert.False(t, CanCombine(a, a), "identical terms")

	ab, err := Combine(a, b) // 00-
	require.NoError(t, err)
	cd, err := Combine(c, FromIndex(2, 3)) // 01-
	require.NoError(t, err)
	assert.True(t, CanCombine(ab, cd))

	// Dash positions must line up.
	ac, err := Combine(FromIndex(0, 3), FromIndex(2, 3)) // 0-0
	require.NoError(t, err)
	assert.False(t, CanCombine(ab, ac))
}

func TestCombine(t *testing.T) {
	a := FromIndex(5, 3) // 101
	b := FromIndex(7, 3) // 111
	m, err := Combine(a, b)
	require.NoError(t, err)
	assert.Equal(t, "1-1", m.Pattern())

	covered := m.Covered().ToSlice()
	sort.Ints(covered)
	assert.Equal(t, []int{5, 7}, covered)
	assert.Equal(t, 2, m.Literals())
	assert.Equal(t, 2, m.Ones())
}

func TestCombineRejectsIncompatible(t *testing.T) {
	_, err := Combine(FromIndex(0, 3), FromIndex(3, 3))
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	m, err := Combine(FromIndex(5, 3), FromIndex(7, 3)) // 1-1
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		assert.Equal(t, x == 5 || x == 7, m.Matches(x), "input %d", x)
	}
}

func TestGroupByOnes(t *testing.T) {
	terms := []Term{
		FromIndex(0, 3), // 0 ones
		FromIndex(1, 3), // 1
		FromIndex(2, 3), // 1
		FromIndex(7, 3), // 3
	}
	groups := groupByOnes(terms)
	require.Len(t, groups, 3)
	assert.Equal(t, 0, groups[0].ones)
	assert.Len(t, groups[0].terms, 1)
	assert.Equal(t, 1, groups[1].ones)
	assert.Len(t, groups[1].terms, 2)
	assert.Equal(t, 3, groups[2].ones)
	assert.Len(t, groups[2].terms, 1)
}
