package setup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// Pyproject extracts requirements declaratively from a PEP 621
// pyproject.toml, reading [project].dependencies as the base group and
// [project.optional-dependencies].dev as the dev extra.
type Pyproject struct{}

type pyprojectFile struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

func (p *Pyproject) Type() string { return "pyproject.toml" }

// Supports reports whether root contains a pyproject.toml.
func (p *Pyproject) Supports(root string) bool {
	info, err := os.Stat(filepath.Join(root, "pyproject.toml"))
	return err == nil && !info.IsDir()
}

// Extract parses the project tables from pyproject.toml.
func (p *Pyproject) Extract(ctx context.Context, root string) (*requirements.Bundle, error) {
	path := filepath.Join(root, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "failed to read %s", path)
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSetupLoad, err, "invalid TOML in %s", path)
	}

	return &requirements.Bundle{
		Base: requirements.NewSet(file.Project.Dependencies...),
		Dev:  requirements.NewSet(file.Project.OptionalDependencies["dev"]...),
	}, nil
}
