// Package config provides configuration loading for reqcheck.
//
// Everything has a working default, so the tool runs with zero arguments;
// a .reqcheck.yaml at the project root overrides paths, the packaging
// source, and the normalization rules.
package config

import (
	"fmt"
)

// Source selects which packaging declaration to read.
type Source string

const (
	// SourceAuto picks setup.py when present, pyproject.toml otherwise.
	SourceAuto Source = "auto"
	// SourceSetupPy forces the subprocess setup.py extractor.
	SourceSetupPy Source = "setup.py"
	// SourcePyproject forces the declarative pyproject.toml extractor.
	SourcePyproject Source = "pyproject.toml"
)

// Config is the complete reqcheck configuration.
type Config struct {
	// Root is the project root directory holding the packaging script.
	Root string `mapstructure:"root"`

	Setup     SetupConfig     `mapstructure:"setup"`
	Manifests ManifestsConfig `mapstructure:"manifests"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
}

// SetupConfig configures the packaging-side extractor.
type SetupConfig struct {
	// Source selects the packaging declaration to read.
	Source Source `mapstructure:"source"`
	// Interpreter is the Python executable for the setup.py shim.
	Interpreter string `mapstructure:"interpreter"`
}

// ManifestsConfig names the environment manifests, relative to Root.
type ManifestsConfig struct {
	User string `mapstructure:"user"`
	Dev  string `mapstructure:"dev"`
}

// NormalizeConfig holds the rules that paper over the known superficial
// differences between the two ecosystems.
type NormalizeConfig struct {
	// Renames maps old distribution-name prefixes to current ones,
	// applied to manifest requirements.
	Renames map[string]string `mapstructure:"renames"`
	// DropDevPrefixes removes packaging dev requirements by prefix.
	DropDevPrefixes []string `mapstructure:"drop_dev_prefixes"`
	// DropManifestPrefixes removes manifest requirements by prefix.
	DropManifestPrefixes []string `mapstructure:"drop_manifest_prefixes"`
}

// Default returns the configuration used when no config file is present.
// The defaults encode the historical conventions: the pytables/tables alias,
// ipython as a packaging-side convenience, jupyter as a manifest-side one.
func Default() *Config {
	return &Config{
		Root: ".",
		Setup: SetupConfig{
			Source:      SourceAuto,
			Interpreter: "python3",
		},
		Manifests: ManifestsConfig{
			User: "environment.yml",
			Dev:  "environment-dev.yml",
		},
		Normalize: NormalizeConfig{
			Renames:              map[string]string{"pytables": "tables"},
			DropDevPrefixes:      []string{"ipython"},
			DropManifestPrefixes: []string{"jupyter"},
		},
	}
}

// ApplyDefaults fills unset fields with their default values.
func (c *Config) ApplyDefaults() {
	def := Default()
	if c.Root == "" {
		c.Root = def.Root
	}
	if c.Setup.Source == "" {
		c.Setup.Source = def.Setup.Source
	}
	if c.Setup.Interpreter == "" {
		c.Setup.Interpreter = def.Setup.Interpreter
	}
	if c.Manifests.User == "" {
		c.Manifests.User = def.Manifests.User
	}
	if c.Manifests.Dev == "" {
		c.Manifests.Dev = def.Manifests.Dev
	}
	if c.Normalize.Renames == nil {
		c.Normalize.Renames = def.Normalize.Renames
	}
	if c.Normalize.DropDevPrefixes == nil {
		c.Normalize.DropDevPrefixes = def.Normalize.DropDevPrefixes
	}
	if c.Normalize.DropManifestPrefixes == nil {
		c.Normalize.DropManifestPrefixes = def.Normalize.DropManifestPrefixes
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Setup.Source {
	case SourceAuto, SourceSetupPy, SourcePyproject:
	default:
		return fmt.Errorf("setup.source must be one of %q, %q, %q (got %q)",
			SourceAuto, SourceSetupPy, SourcePyproject, c.Setup.Source)
	}
	if c.Manifests.User == "" {
		return fmt.Errorf("manifests.user must not be empty")
	}
	if c.Manifests.Dev == "" {
		return fmt.Errorf("manifests.dev must not be empty")
	}
	return nil
}
