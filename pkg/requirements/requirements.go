// Package requirements defines the requirement-set model shared by the
// packaging and manifest extractors.
//
// A requirement is an opaque dependency string such as "numpy" or
// "pandas>=2.0". Equality is exact string match after normalization; the
// package never decomposes a requirement into name and version parts.
package requirements

import "sort"

// Set is a deduplicated collection of requirement strings.
// Comparison is order-insensitive; Sorted provides deterministic output.
type Set map[string]bool

// NewSet builds a Set from an ordered sequence, dropping duplicates.
func NewSet(reqs ...string) Set {
	s := make(Set, len(reqs))
	for _, r := range reqs {
		s[r] = true
	}
	return s
}

// Contains reports whether req is in the set.
func (s Set) Contains(req string) bool {
	return s[req]
}

// Len returns the number of distinct requirements.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the requirements in ascending lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set containing every requirement in s or o.
// Neither input is modified.
func (s Set) Union(o Set) Set {
	out := make(Set, len(s)+len(o))
	for r := range s {
		out[r] = true
	}
	for r := range o {
		out[r] = true
	}
	return out
}

// Diff returns the requirements present in s but not in o.
func (s Set) Diff(o Set) Set {
	out := make(Set)
	for r := range s {
		if !o[r] {
			out[r] = true
		}
	}
	return out
}

// Equal reports whether s and o contain exactly the same requirements.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for r := range s {
		if !o[r] {
			return false
		}
	}
	return true
}

// Bundle holds the two requirement groups declared by the packaging layer.
// Dev is additive to Base: the driver unions them before comparing against
// a dev environment manifest.
type Bundle struct {
	Base Set
	Dev  Set

	// Source names the file the bundle was extracted from
	// (e.g., "setup.py"), for report labels and diagnostics.
	Source string
}
