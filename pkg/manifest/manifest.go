// Package manifest extracts requirement declarations from conda environment
// files.
//
// A conda environment file splits dependencies between natively packaged
// entries and a nested pip section:
//
//	dependencies:
//	  - numpy
//	  - pandas>=2.0
//	  - pip:
//	      - tables>=3.7
//
// Parse flattens both into a single ordered requirement list and applies the
// configured normalization rules. Entries that are neither plain strings nor
// pip-keyed mappings are skipped silently.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// environment is the subset of a conda environment file we care about.
type environment struct {
	Dependencies []any `yaml:"dependencies"`
}

// Parse reads the environment file at path and returns its flattened,
// normalized requirement list. Order follows the file; duplicates are kept
// (the reconciler deduplicates).
//
// A missing file or invalid YAML is a fatal parse error.
func Parse(path string, rules requirements.Rules) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestParse, err, "failed to read manifest %s", path)
	}

	var env environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestParse, err, "invalid YAML in manifest %s", path)
	}

	return rules.Apply(flatten(env.Dependencies)), nil
}

// flatten walks the dependencies list, collecting plain strings and the
// contents of pip-keyed mappings. Other item shapes are ignored, matching
// conda's own leniency toward unknown sections.
func flatten(deps []any) []string {
	var reqs []string
	for _, dep := range deps {
		switch v := dep.(type) {
		case string:
			reqs = append(reqs, v)
		case map[string]any:
			reqs = append(reqs, pipEntries(v)...)
		}
	}
	return reqs
}

func pipEntries(m map[string]any) []string {
	nested, ok := m["pip"].([]any)
	if !ok {
		return nil
	}
	var reqs []string
	for _, item := range nested {
		if s, ok := item.(string); ok {
			reqs = append(reqs, s)
		}
	}
	return reqs
}
