package verilog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pborges/qmc/internal/qm"
	"github.com/pborges/qmc/internal/testutil"
)

func TestMakeModule(t *testing.T) {
	res, err := qm.Minimize(qm.Spec{NumVars: 2, Terms: []int{0, 3}})
	require.NoError(t, err)

	got := MakeModule(Config{Name: "boolean_function_1"}, res.Cover, 2)
	want := `module boolean_function_1 (
    input a, b,
    output x
);

    assign x = (~a & ~b) |
               (a & b);

endmodule
`
	assert.Equal(t, want, got)
}

func TestMakeModuleConstants(t *testing.T) {
	empty := MakeModule(Config{Name: "f"}, nil, 2)
	assert.Contains(t, empty, "assign x = 1'b0;")

	res, err := qm.Minimize(qm.Spec{NumVars: 2, Terms: []int{0, 1, 2, 3}})
	require.NoError(t, err)
	tautology := MakeModule(Config{Name: "f"}, res.Cover, 2)
	assert.Contains(t, tautology, "assign x = (1'b1);")
}

func TestMakeModuleHeader(t *testing.T) {
	got := MakeModule(Config{Name: "f", Header: []string{"generated by qmc"}}, nil, 1)
	assert.Contains(t, got, "// generated by qmc\n")
}

func TestModuleMatchesTruthTable(t *testing.T) {
	spec := qm.Spec{NumVars: 4, Terms: []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 14}}
	res, err := qm.Minimize(spec)
	require.NoError(t, err)

	text := MakeModule(Config{Name: "boolean_function_4"}, res.Cover, spec.NumVars)
	mod, err := testutil.ParseModule(text)
	require.NoError(t, err)
	assert.Equal(t, "boolean_function_4", mod.Name)
	require.Len(t, mod.Inputs, 4)

	for x := 0; x < 1<<spec.NumVars; x++ {
		assert.Equal(t, res.Eval(x), mod.Eval(x), "input %d", x)
	}
}
