package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitList flattens repeated and comma separated values ("train,bus", "ferry")
// into a lowercased, de-duplicated slice.
func SplitList(raw ...string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, r := range raw {
		parts := strings.FieldsFunc(r, func(c rune) bool {
			return c == ',' || c == ';' || c == '\n'
		})
		for _, p := range parts {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
