// Package reconcile compares two requirement sets and reports their
// symmetric difference.
//
// A reconciliation is pure: it depends only on its two input sets, with no
// retries and no partial success. Printing is separated into Report so the
// comparison itself stays testable without capturing output.
package reconcile

import (
	"fmt"
	"io"

	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// Result holds the outcome of comparing two requirement sets.
// Both difference lists are sorted ascending for reproducible output.
type Result struct {
	OnlyInA []string
	OnlyInB []string
}

// Reconcile computes the symmetric difference between a and b.
func Reconcile(a, b requirements.Set) Result {
	return Result{
		OnlyInA: a.Diff(b).Sorted(),
		OnlyInB: b.Diff(a).Sorted(),
	}
}

// Matched reports whether the two sets were equal.
func (r Result) Matched() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0
}

// Report writes the human-readable reconciliation report to w. Each
// non-empty difference is printed as a labeled, sorted section, followed by
// a single match or mismatch summary line.
func (r Result) Report(w io.Writer, labelA, labelB string) {
	if len(r.OnlyInA) > 0 {
		fmt.Fprintf(w, "Requirements only in %s:\n", labelA)
		for _, req := range r.OnlyInA {
			fmt.Fprintf(w, "  %s\n", req)
		}
	}
	if len(r.OnlyInB) > 0 {
		fmt.Fprintf(w, "Requirements only in %s:\n", labelB)
		for _, req := range r.OnlyInB {
			fmt.Fprintf(w, "  %s\n", req)
		}
	}

	if r.Matched() {
		fmt.Fprintf(w, "Requirements match between %s and %s\n", labelA, labelB)
	} else {
		fmt.Fprintln(w, "Requirements do not match.")
	}
}
