// Package cli implements the reqcheck command-line interface.
//
// reqcheck validates that a project's packaging requirements (setup.py or
// pyproject.toml) and its conda environment manifests declare the same
// dependency lists. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Run both reconciliations (also the bare-invocation default)
//   - show: Print the requirement sets extracted from one source
//   - cache: Manage the extraction result cache
//   - completion: Generate shell completion scripts
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reqcheck/pkg/buildinfo"
	"github.com/matzehuels/reqcheck/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "reqcheck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a new CLI instance. Logs go to w; reports go to Out (stdout
// unless a test swaps it).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Invoking the bare root runs a check with default options, so
// the tool works as a zero-argument CI gate.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "reqcheck validates packaging and conda requirement lists against each other",
		Long:          `reqcheck extracts the dependency declarations from a project's packaging layer (setup.py or pyproject.toml) and its conda environment manifests, normalizes known naming differences, and reports any requirements present on only one side.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), checkOpts{})
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache returns the extraction cache, or a null cache when disabled or
// when no cache directory is available.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// cacheDir returns the cache directory using XDG standard (~/.cache/reqcheck/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
