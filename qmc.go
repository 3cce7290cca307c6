// Package qmc minimizes Boolean functions of up to 20 variables into
// minimal sum-of-products covers using the Quine-McCluskey procedure.
// It re-exports the engine's entry points; the CLI under cmd/qmc adds
// test case batching and Verilog emission on top.
package qmc

import "github.com/pborges/qmc/internal/qm"

type (
	Spec   = qm.Spec
	Result = qm.Result
	Term   = qm.Term
	Mode   = qm.Mode
	Option = qm.Option
)

const (
	Minterm = qm.Minterm
	Maxterm = qm.Maxterm
)

// ErrSearchLimit reports that a run exceeded its search ceiling.
var ErrSearchLimit = qm.ErrSearchLimit

// Minimize reduces the function described by spec to a minimal cover.
func Minimize(spec Spec, opts ...Option) (*Result, error) {
	return qm.Minimize(spec, opts...)
}
