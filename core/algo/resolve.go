// Package algo has pure resolution and matching helpers for analysis.
package algo

import (
	"fmt"
	"sort"
	"strings"

	"incsight/internal/contract"
)

const maxSuggestions = 5

// ResolveFieldPath maps a user-supplied grouping field onto a concrete path
// from the enumerated set. An exact path match always wins. Otherwise any
// path containing the name as a complete dot segment is a candidate: the tag
// value form tags.<name>.value is preferred since tag shorthand is the
// common case, then the lexicographically smallest candidate keeps
// resolution deterministic.
func ResolveFieldPath(paths []string, name string) (string, error) {
	// 1. Exact path match
	for _, p := range paths {
		if p == name {
			return p, nil
		}
	}

	// 2. Complete-segment matches
	var candidates []string
	for _, p := range paths {
		if hasSegment(p, name) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		if near := nearMisses(paths, name); len(near) > 0 {
			return "", fmt.Errorf("%w: no field matches %q, did you mean one of: %s",
				contract.ErrInput, name, strings.Join(near, ", "))
		}
		return "", fmt.Errorf("%w: no field matches %q, run list-fields to see available fields",
			contract.ErrInput, name)
	}

	// 3. Prefer the tag value form
	tagValue := "tags." + name + ".value"
	for _, c := range candidates {
		if c == tagValue {
			return c, nil
		}
	}

	// 4. Deterministic fallback
	sort.Strings(candidates)
	return candidates[0], nil
}

// hasSegment reports whether name appears as a complete dot segment of path.
func hasSegment(path, name string) bool {
	for _, seg := range strings.Split(path, ".") {
		if seg == name {
			return true
		}
	}
	return false
}

// nearMisses returns up to maxSuggestions paths containing name
// case-insensitively, for error messages.
func nearMisses(paths []string, name string) []string {
	lower := strings.ToLower(name)
	var near []string
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p), lower) {
			near = append(near, p)
			if len(near) == maxSuggestions {
				break
			}
		}
	}
	return near
}
