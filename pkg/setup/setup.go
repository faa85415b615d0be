// Package setup extracts the requirement bundle declared by a project's
// packaging layer.
//
// Two sources are supported behind a common Extractor interface:
//
//   - setup.py, read through a subprocess boundary: a short Python shim
//     imports the script from an explicitly passed root and prints the two
//     requirement lists as JSON on stdout. The tool itself holds no
//     process-wide mutable state; any sys.path juggling is confined to the
//     short-lived child process.
//   - pyproject.toml, read declaratively (PEP 621 [project] tables).
//
// Detect picks the extractor for a project root, preferring setup.py when
// both files exist since it is the historically authoritative declaration.
package setup

import (
	"context"
	"time"

	"github.com/matzehuels/reqcheck/pkg/cache"
	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// Extractor reads the packaging declaration under a project root.
type Extractor interface {
	// Extract returns the base and dev requirement sets.
	Extract(ctx context.Context, root string) (*requirements.Bundle, error)
	// Supports reports whether the extractor's source file exists under root.
	Supports(root string) bool
	// Type returns the source identifier (e.g., "setup.py").
	Type() string
}

// Options configures extraction.
type Options struct {
	// Source selects the packaging source: "auto", "setup.py", or
	// "pyproject.toml". Empty means auto.
	Source string
	// Interpreter is the Python executable used for the setup.py shim.
	// Empty means "python3".
	Interpreter string
	// DropDevPrefixes removes dev requirements by name prefix before the
	// bundle is returned (environment-only conveniences such as ipython).
	DropDevPrefixes []string
	// Cache, when set, stores the decoded subprocess output keyed by the
	// script content. Nil disables caching.
	Cache cache.Cache
	// CacheTTL bounds the lifetime of cached extraction results.
	CacheTTL time.Duration
}

// DefaultCacheTTL bounds how long a cached extraction result is trusted.
const DefaultCacheTTL = 24 * time.Hour

// Detect finds an extractor whose source file exists under root.
// Extractors are tried in order; an error names root when none match.
func Detect(root string, extractors ...Extractor) (Extractor, error) {
	for _, e := range extractors {
		if e.Supports(root) {
			return e, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSetupLoad, "no packaging source found under %s", root)
}

// Extract reads the packaging declaration under root according to opts and
// returns the normalized bundle. Any failure to locate, execute, or decode
// the packaging source is a fatal load error.
func Extract(ctx context.Context, root string, opts Options) (*requirements.Bundle, error) {
	extractor, err := pick(root, opts)
	if err != nil {
		return nil, err
	}

	bundle, err := extractor.Extract(ctx, root)
	if err != nil {
		return nil, err
	}
	bundle.Source = extractor.Type()

	if len(opts.DropDevPrefixes) > 0 {
		rules := requirements.Rules{DropPrefixes: opts.DropDevPrefixes}
		bundle.Dev = requirements.NewSet(rules.Apply(bundle.Dev.Sorted())...)
	}
	return bundle, nil
}

func pick(root string, opts Options) (Extractor, error) {
	setupPy := &SetupPy{Interpreter: opts.Interpreter, Cache: opts.Cache, CacheTTL: opts.CacheTTL}
	pyproject := &Pyproject{}

	switch opts.Source {
	case "", "auto":
		return Detect(root, setupPy, pyproject)
	case setupPy.Type():
		return setupPy, nil
	case pyproject.Type():
		return pyproject, nil
	default:
		return nil, errors.New(errors.ErrCodeSetupLoad, "unknown packaging source: %s", opts.Source)
	}
}
