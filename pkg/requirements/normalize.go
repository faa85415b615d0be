package requirements

import (
	"sort"
	"strings"
)

// Rules describes the superficial differences between two dependency
// declarations that the comparison should not see: historical distribution
// name aliases and environment-only convenience packages.
//
// Apply is idempotent: renaming rewrites the old prefix away, so a second
// pass finds nothing left to rewrite or drop.
type Rules struct {
	// Renames maps an old distribution-name prefix to its current name.
	// A requirement equal to or prefixed by the old name is rewritten,
	// keeping any version or extras suffix (e.g. "pytables>=3.7" becomes
	// "tables>=3.7" under {"pytables": "tables"}).
	Renames map[string]string

	// DropPrefixes lists name prefixes whose requirements are removed
	// entirely before comparison.
	DropPrefixes []string
}

// Apply normalizes reqs, preserving order. The input slice is not modified.
func (r Rules) Apply(reqs []string) []string {
	out := make([]string, 0, len(reqs))
	for _, req := range reqs {
		req = r.rename(req)
		if r.dropped(req) {
			continue
		}
		out = append(out, req)
	}
	return out
}

func (r Rules) rename(req string) string {
	for _, old := range sortedKeys(r.Renames) {
		if strings.HasPrefix(req, old) {
			return r.Renames[old] + req[len(old):]
		}
	}
	return req
}

// sortedKeys keeps rename application deterministic when several
// rules are configured.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Rules) dropped(req string) bool {
	for _, prefix := range r.DropPrefixes {
		if strings.HasPrefix(req, prefix) {
			return true
		}
	}
	return false
}
