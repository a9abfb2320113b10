package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitList splits comma/semicolon/newline separated values into cleaned slices.
func SplitList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// UniqueTrimmed trims every value, drops blanks and keeps the first occurrence.
func UniqueTrimmed(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
