package reconcile

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/reqcheck/pkg/requirements"
)

func TestReconcile_MatchedIffEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b requirements.Set
		want bool
	}{
		{"equal sets", requirements.NewSet("numpy", "pandas"), requirements.NewSet("pandas", "numpy"), true},
		{"duplicates irrelevant", requirements.NewSet("numpy", "numpy"), requirements.NewSet("numpy"), true},
		{"missing from b", requirements.NewSet("numpy", "pandas"), requirements.NewSet("numpy"), false},
		{"missing from a", requirements.NewSet("numpy"), requirements.NewSet("numpy", "pandas"), false},
		{"both empty", requirements.NewSet(), requirements.NewSet(), true},
		{"disjoint", requirements.NewSet("a"), requirements.NewSet("b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconcile(tt.a, tt.b)
			if got := r.Matched(); got != tt.want {
				t.Errorf("Matched = %v, want %v", got, tt.want)
			}
			if want := tt.a.Equal(tt.b); r.Matched() != want {
				t.Errorf("Matched = %v disagrees with set equality %v", r.Matched(), want)
			}
		})
	}
}

func TestReconcile_DifferencesSorted(t *testing.T) {
	a := requirements.NewSet("zlib", "numpy", "h5py", "abc")
	b := requirements.NewSet("numpy")

	r := Reconcile(a, b)
	want := []string{"abc", "h5py", "zlib"}
	if !reflect.DeepEqual(r.OnlyInA, want) {
		t.Errorf("OnlyInA = %v, want %v", r.OnlyInA, want)
	}
}

func TestReport_Match(t *testing.T) {
	r := Reconcile(requirements.NewSet("numpy", "pandas"), requirements.NewSet("numpy", "pandas"))

	var buf strings.Builder
	r.Report(&buf, "setup.py", "conda environment.yml")

	got := buf.String()
	if !strings.Contains(got, "Requirements match between setup.py and conda environment.yml") {
		t.Errorf("Report = %q, want match line", got)
	}
	if strings.Contains(got, "only in") {
		t.Errorf("Report = %q, should have no diff sections", got)
	}
}

func TestReport_Mismatch(t *testing.T) {
	r := Reconcile(requirements.NewSet("numpy", "pandas"), requirements.NewSet("numpy"))

	var buf strings.Builder
	r.Report(&buf, "setup.py", "conda environment.yml")

	got := buf.String()
	if !strings.Contains(got, "Requirements only in setup.py:\n  pandas\n") {
		t.Errorf("Report = %q, want labeled setup.py section", got)
	}
	if strings.Contains(got, "only in conda environment.yml") {
		t.Errorf("Report = %q, empty section should be omitted", got)
	}
	if !strings.Contains(got, "Requirements do not match.") {
		t.Errorf("Report = %q, want mismatch summary", got)
	}
}

func TestReport_BothDirections(t *testing.T) {
	r := Reconcile(requirements.NewSet("only-a"), requirements.NewSet("only-b"))

	var buf strings.Builder
	r.Report(&buf, "setup.py", "env.yml")

	got := buf.String()
	aIdx := strings.Index(got, "Requirements only in setup.py:")
	bIdx := strings.Index(got, "Requirements only in env.yml:")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Errorf("Report = %q, want A section before B section", got)
	}
}
