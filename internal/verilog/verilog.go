// Package verilog renders a minimized cover as a synthesizable
// Verilog module. It is a pure serializer: the minimization logic
// never depends on it.
package verilog

import (
	"fmt"
	"strings"

	"github.com/pborges/qmc/internal/qm"
)

type Config struct {
	// Name is the module name, e.g. boolean_function_3.
	Name string
	// Header lines are emitted as comments above the module.
	Header []string
}

// MakeModule generates the module text for a cover over numVars
// inputs. Each cover term translates literal for literal into an AND
// of (possibly negated) inputs; terms are ORed into the single output.
func MakeModule(cfg Config, cover []qm.Term, numVars int) string {
	var buf strings.Builder
	for _, line := range cfg.Header {
		buf.WriteString("// ")
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	names := make([]string, numVars)
	for i := range names {
		names[i] = inputName(i)
	}

	fmt.Fprintf(&buf, "module %s (\n", cfg.Name)
	fmt.Fprintf(&buf, "    input %s,\n", strings.Join(names, ", "))
	buf.WriteString("    output x\n")
	buf.WriteString(");\n\n")

	terms := make([]string, 0, len(cover))
	for _, t := range cover {
		terms = append(terms, makeTerm(t))
	}

	switch {
	case len(terms) == 0:
		buf.WriteString("    assign x = 1'b0;\n")
	default:
		buf.WriteString("    assign x = ")
		for i, term := range terms {
			if i > 0 {
				buf.WriteString(" |\n               ")
			}
			fmt.Fprintf(&buf, "(%s)", term)
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("\nendmodule\n")
	return buf.String()
}

// makeTerm renders one product term: ~a for a 0 position, a for a 1,
// dashes omitted. A term with no fixed position is the constant true.
func makeTerm(t qm.Term) string {
	var parts []string
	for i, sym := range t.Pattern() {
		switch sym {
		case '1':
			parts = append(parts, inputName(i))
		case '0':
			parts = append(parts, "~"+inputName(i))
		}
	}
	if len(parts) == 0 {
		return "1'b1"
	}
	return strings.Join(parts, " & ")
}

func inputName(i int) string {
	return string(rune('a' + i))
}
