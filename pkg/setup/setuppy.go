package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/reqcheck/pkg/cache"
	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// defaultInterpreter runs the extraction shim when none is configured.
const defaultInterpreter = "python3"

// shim is the Python program run in the child process. It imports the
// packaging script from the root passed as its only argument, calls the two
// zero-argument accessors the script is expected to expose, and prints the
// result as a single JSON object on stdout.
const shim = `import json, sys
sys.path.insert(0, sys.argv[1])
import setup
base = list(setup.install_requires())
extras = {name: list(reqs) for name, reqs in setup.extras_require().items()}
json.dump({"base": base, "extras": extras}, sys.stdout)
`

// SetupPy extracts requirements from a setup.py script via a subprocess
// boundary. The script must be importable as a module and expose the
// zero-argument callables install_requires() and extras_require().
type SetupPy struct {
	// Interpreter is the Python executable. Empty means python3.
	Interpreter string
	// Cache, when set, stores the shim output keyed by the script content.
	Cache cache.Cache
	// CacheTTL bounds the lifetime of cached entries.
	CacheTTL time.Duration
}

// payload is the wire format the shim prints on stdout.
type payload struct {
	Base   []string            `json:"base"`
	Extras map[string][]string `json:"extras"`
}

func (s *SetupPy) Type() string { return "setup.py" }

// Supports reports whether root contains a setup.py.
func (s *SetupPy) Supports(root string) bool {
	info, err := os.Stat(filepath.Join(root, "setup.py"))
	return err == nil && !info.IsDir()
}

// Extract runs the shim against root and decodes its output.
// Results are cached keyed by the script content, so edits invalidate the
// entry without any explicit bookkeeping.
func (s *SetupPy) Extract(ctx context.Context, root string) (*requirements.Bundle, error) {
	script := filepath.Join(root, "setup.py")
	content, err := os.ReadFile(script)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "failed to read %s", script)
	}

	key := cache.Key("setup", content)
	if out, ok := s.cached(ctx, key); ok {
		return decode(out, script)
	}

	out, err := s.run(ctx, root)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)

	return decode(out, script)
}

// run executes the shim in a child process and returns its stdout.
func (s *SetupPy) run(ctx context.Context, root string) ([]byte, error) {
	interpreter := s.Interpreter
	if interpreter == "" {
		interpreter = defaultInterpreter
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, interpreter, "-c", shim, root)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "failed to import setup.py under %s: %s", root, detail)
		}
		return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "failed to import setup.py under %s", root)
	}
	return stdout.Bytes(), nil
}

func decode(out []byte, script string) (*requirements.Bundle, error) {
	var p payload
	if err := json.Unmarshal(out, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "unexpected output from %s", script)
	}
	return &requirements.Bundle{
		Base: requirements.NewSet(p.Base...),
		Dev:  requirements.NewSet(p.Extras["dev"]...),
	}, nil
}

func (s *SetupPy) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.Cache == nil {
		return nil, false
	}
	out, ok, err := s.Cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	return out, true
}

func (s *SetupPy) store(ctx context.Context, key string, out []byte) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	_ = s.Cache.Set(ctx, key, out, ttl)
}
