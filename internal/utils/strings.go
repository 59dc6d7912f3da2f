package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitReferences splits comma/semicolon/newline separated reference strings
// into cleaned entries. Blank entries are dropped.
func SplitReferences(raw string) []string {
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

// JoinReferences serializes reference entries into the stored comma form.
// Entries are trimmed and blanks skipped so the column never holds ",,".
func JoinReferences(refs []string) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		parts = append(parts, r)
	}
	return strings.Join(parts, ",")
}
