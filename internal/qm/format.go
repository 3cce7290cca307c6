package qm

import "strings"

// VarName returns the display name for variable position i: A for the
// most significant index bit, then B, C, ...
func VarName(i int) string {
	return string(rune('A' + i))
}

// FormatSOP renders a cover as a sum of products, one product per
// term: 1 positions appear plain, 0 positions primed, dashes omitted.
// An empty cover is the constant 0 and an unconstrained term the
// constant 1.
func FormatSOP(cover []Term, numVars int) string {
	if len(cover) == 0 {
		return "0"
	}
	parts := make([]string, len(cover))
	for i, t := range cover {
		if t.Literals() == 0 {
			return "1"
		}
		parts[i] = formatProduct(t)
	}
	return strings.Join(parts, " + ")
}

// FormatPOS renders a product of sums from a cover of the function's
// zero set: each zero-cover term negates, by De Morgan, into one sum
// factor. An empty zero cover means the function is the constant 1.
func FormatPOS(zeroCover []Term, numVars int) string {
	if len(zeroCover) == 0 {
		return "1"
	}
	var buf strings.Builder
	for _, t := range zeroCover {
		if t.Literals() == 0 {
			return "0"
		}
		buf.WriteByte('(')
		first := true
		for i, sym := range t.Pattern() {
			if sym == '-' {
				continue
			}
			if !first {
				buf.WriteString(" + ")
			}
			first = false
			buf.WriteString(VarName(i))
			// The factor is the negation of the zero-set product, so
			// polarity flips: a 1 position renders primed.
			if sym == '1' {
				buf.WriteByte('\'')
			}
		}
		buf.WriteByte(')')
	}
	return buf.String()
}

func formatProduct(t Term) string {
	var buf strings.Builder
	for i, sym := range t.Pattern() {
		switch sym {
		case '1':
			buf.WriteString(VarName(i))
		case '0':
			buf.WriteString(VarName(i))
			buf.WriteByte('\'')
		}
	}
	return buf.String()
}
