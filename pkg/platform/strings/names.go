// Package strings provides normalisation helpers for free-text names coming
// from vessel feeds (port names, country names).
package strings

import (
	"strings"
)

// NameKey folds a free-text name into a lookup key: trimmed, lower-cased,
// inner whitespace collapsed to single spaces.
//
// Example:
//
//	NameKey("  Bandar   ABBAS ")
//	// Returns: "bandar abbas"
func NameKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// DedupeNames removes empty values and values whose NameKey was already seen,
// trimming whitespace from the kept ones. The first spelling wins and order
// is preserved.
//
// Example:
//
//	DedupeNames([]string{" Iran ", "IRAN", "", "Persia"})
//	// Returns: []string{"Iran", "Persia"}
func DedupeNames(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		key := NameKey(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			result = append(result, strings.TrimSpace(v))
		}
	}

	return result
}
