// Package tcase loads minimization problems from the line-oriented
// test case format and parses test case selection expressions.
//
// A case file has the variable count on the first line, a
// comma-separated term list (m3 for minterms, M3 for maxterms) on the
// second, and an optional comma-separated don't-care list (d3) on the
// third.
package tcase

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/qmc/internal/qm"
)

// CasePath returns the conventional file path of one numbered case.
func CasePath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("test%d.txt", n))
}

// LoadCase reads and parses one case file.
func LoadCase(path string) (qm.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return qm.Spec{}, errors.Wrap(err, "read case file")
	}
	spec, err := ParseCase(data)
	if err != nil {
		return qm.Spec{}, errors.Wrapf(err, "parse %s", path)
	}
	return spec, nil
}

// ParseCase parses the case format. Any M token switches the whole
// case to maxterm mode, matching the file format's convention that a
// case lists either minterms or maxterms.
func ParseCase(data []byte) (qm.Spec, error) {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	if len(lines) < 2 {
		return qm.Spec{}, errors.New("case file needs at least a variable count line and a term line")
	}

	numVars, err := strconv.Atoi(lines[0])
	if err != nil {
		return qm.Spec{}, fmt.Errorf("line 1: invalid variable count %q", lines[0])
	}

	spec := qm.Spec{NumVars: numVars}
	for _, tok := range splitTokens(lines[1]) {
		switch tok[0] {
		case 'M':
			spec.Mode = qm.Maxterm
			fallthrough
		case 'm':
			v, err := strconv.Atoi(tok[1:])
			if err != nil {
				return qm.Spec{}, fmt.Errorf("line 2: invalid term %q", tok)
			}
			spec.Terms = append(spec.Terms, v)
		default:
			return qm.Spec{}, fmt.Errorf("line 2: invalid term %q", tok)
		}
	}

	if len(lines) > 2 && lines[2] != "" {
		for _, tok := range splitTokens(lines[2]) {
			if tok[0] != 'd' && tok[0] != 'D' {
				return qm.Spec{}, fmt.Errorf("line 3: invalid don't-care %q", tok)
			}
			v, err := strconv.Atoi(tok[1:])
			if err != nil {
				return qm.Spec{}, fmt.Errorf("line 3: invalid don't-care %q", tok)
			}
			spec.DontCares = append(spec.DontCares, v)
		}
	}
	return spec, nil
}

func splitTokens(line string) []string {
	var out []string
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseSelection expands a selection expression like "1 3-5, 7" into
// an ordered, deduplicated list of case numbers. Reversed ranges are
// normalized.
func ParseSelection(s string) ([]int, error) {
	var cases []int
	seen := make(map[int]bool)
	add := func(n int) {
		if !seen[n] {
			seen[n] = true
			cases = append(cases, n)
		}
	}

	for _, part := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid case number %q", part)
			}
			add(n)
			continue
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		if start > end {
			start, end = end, start
		}
		for n := start; n <= end; n++ {
			add(n)
		}
	}
	if len(cases) == 0 {
		return nil, errors.New("no case numbers in selection")
	}
	return cases, nil
}
