package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".reqcheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `root: /srv/project
setup:
  source: pyproject.toml
  interpreter: python3.12
manifests:
  user: conda/user.yml
  dev: conda/dev.yml
normalize:
  renames:
    pytables: tables
  drop_dev_prefixes: [ipython]
  drop_manifest_prefixes: [jupyter, nb]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "/srv/project" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.Setup.Source != SourcePyproject {
		t.Errorf("Source = %q, want %q", cfg.Setup.Source, SourcePyproject)
	}
	if cfg.Setup.Interpreter != "python3.12" {
		t.Errorf("Interpreter = %q", cfg.Setup.Interpreter)
	}
	if cfg.Manifests.User != "conda/user.yml" || cfg.Manifests.Dev != "conda/dev.yml" {
		t.Errorf("Manifests = %+v", cfg.Manifests)
	}
	if len(cfg.Normalize.DropManifestPrefixes) != 2 {
		t.Errorf("DropManifestPrefixes = %v", cfg.Normalize.DropManifestPrefixes)
	}
}

func TestLoadConfig_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "root: /srv/project\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Setup.Source != SourceAuto {
		t.Errorf("Source = %q, want default", cfg.Setup.Source)
	}
	if cfg.Manifests.User != "environment.yml" {
		t.Errorf("Manifests.User = %q, want default", cfg.Manifests.User)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfig_MissingDefaultFileUsesDefaults(t *testing.T) {
	// Run from a directory without a .reqcheck.yaml.
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != "." {
		t.Errorf("Root = %q, want default", cfg.Root)
	}
}

func TestLoadConfig_InvalidSource(t *testing.T) {
	path := writeConfig(t, "setup:\n  source: Pipfile\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "root: [unclosed\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"_ROOT", "/env/root")
	t.Setenv(EnvPrefix+"_SETUP_INTERPRETER", "python3.11")
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Root != "/env/root" {
		t.Errorf("Root = %q, want env override", cfg.Root)
	}
	if cfg.Setup.Interpreter != "python3.11" {
		t.Errorf("Interpreter = %q, want env override", cfg.Setup.Interpreter)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup (t.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}
