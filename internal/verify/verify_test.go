package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pborges/qmc/internal/qm"
)

func TestCoverEquivalent(t *testing.T) {
	specs := []qm.Spec{
		{NumVars: 2, Terms: []int{0, 3}},
		{NumVars: 3, Terms: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{NumVars: 3},
		{NumVars: 3, Terms: []int{0, 7}, Mode: qm.Maxterm},
		{NumVars: 4, Terms: []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 14}},
		{NumVars: 4, Terms: []int{1, 3, 7, 11, 15}, DontCares: []int{0, 2, 5}},
	}
	for _, spec := range specs {
		res, err := qm.Minimize(spec)
		require.NoError(t, err)
		assert.NoError(t, Cover(spec, res.Cover), "spec %+v", spec)
	}
}

func TestCoverDetectsMissingTerm(t *testing.T) {
	spec := qm.Spec{NumVars: 2, Terms: []int{0, 3}}
	res, err := qm.Minimize(spec)
	require.NoError(t, err)
	require.Len(t, res.Cover, 2)

	err = Cover(spec, res.Cover[:1])
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	// The counterexample is the care minterm the dropped term covered.
	assert.True(t, mismatch.Want)
	assert.True(t, res.Eval(mismatch.Index))
}

func TestCoverDetectsWrongTerm(t *testing.T) {
	spec := qm.Spec{NumVars: 3, Terms: []int{0, 1}}
	wrong := []qm.Term{qm.FromIndex(7, 3)}
	err := Cover(spec, wrong)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestCoverIgnoresDontCares(t *testing.T) {
	// A cover that disagrees only inside the don't-care set is fine.
	spec := qm.Spec{NumVars: 2, Terms: []int{3}, DontCares: []int{2}}
	cover := []qm.Term{mustCombine(t, qm.FromIndex(2, 2), qm.FromIndex(3, 2))} // 1-
	assert.NoError(t, Cover(spec, cover))
}

func TestCoverInvalidSpec(t *testing.T) {
	err := Cover(qm.Spec{NumVars: 0}, nil)
	var inputErr *qm.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
}

func mustCombine(t *testing.T, a, b qm.Term) qm.Term {
	t.Helper()
	m, err := qm.Combine(a, b)
	require.NoError(t, err)
	return m
}
