package qm

import (
	"errors"
	"fmt"
)

// ErrSearchLimit reports that a combination or cover search exceeded
// its configured ceiling. The run is abandoned; results accompanied by
// this error are never silently truncated.
var ErrSearchLimit = errors.New("search limit exceeded")

// InvalidInputError reports a caller error in the minimization input,
// carrying the offending value. Retrying with the same input fails
// identically.
type InvalidInputError struct {
	Field  string
	Value  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %d: %s", e.Field, e.Value, e.Reason)
}

// UnsatisfiableMintermError reports a care minterm that no prime
// implicant covers. Every minterm is coverable by its own fully
// specified term, so this indicates an internal bug, not bad input.
type UnsatisfiableMintermError struct {
	Minterm int
}

func (e *UnsatisfiableMintermError) Error() string {
	return fmt.Sprintf("minterm %d is covered by no prime implicant", e.Minterm)
}
