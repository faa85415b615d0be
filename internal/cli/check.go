package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reqcheck/internal/config"
	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/manifest"
	"github.com/matzehuels/reqcheck/pkg/reconcile"
	"github.com/matzehuels/reqcheck/pkg/requirements"
	"github.com/matzehuels/reqcheck/pkg/setup"
)

// checkOpts holds the command-line flags for the check command.
// The zero value runs with pure configuration defaults, which is what the
// bare root invocation uses.
type checkOpts struct {
	configPath string // explicit config file (empty: .reqcheck.yaml or defaults)
	root       string // project root override
	noCache    bool   // bypass the extraction cache
}

// checkCommand creates the check command, the tool's main operation.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that packaging and conda requirement lists agree",
		Long: `Extract the base and dev requirement lists from the packaging layer and
from the user and dev conda environment manifests, then report any
requirement present on only one side.

Both reconciliations always run, so a single invocation shows the full
picture. Exit 0 if both sides agree; exit 1 on any mismatch or on a fatal
extraction error. Suitable for CI pipelines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: .reqcheck.yaml if present)")
	cmd.Flags().StringVar(&opts.root, "root", "", "project root (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the extraction cache")

	return cmd
}

// runCheck is the driver: one packaging extraction, two manifest parses,
// two reconciliations, one aggregate exit status.
func (c *CLI) runCheck(ctx context.Context, opts checkOpts) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}

	bundle, err := c.extractBundle(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	rules := requirements.Rules{
		Renames:      cfg.Normalize.Renames,
		DropPrefixes: cfg.Normalize.DropManifestPrefixes,
	}
	userReqs, err := manifest.Parse(resolvePath(cfg.Root, cfg.Manifests.User), rules)
	if err != nil {
		return err
	}
	devReqs, err := manifest.Parse(resolvePath(cfg.Root, cfg.Manifests.Dev), rules)
	if err != nil {
		return err
	}

	// Both reconciliations run regardless of the first outcome: the
	// operator gets the full picture in one invocation.
	fmt.Fprintln(c.Out, "Checking user requirements...")
	user := reconcile.Reconcile(bundle.Base, requirements.NewSet(userReqs...))
	user.Report(c.Out, bundle.Source, cfg.Manifests.User)

	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, "Checking dev requirements...")
	dev := reconcile.Reconcile(bundle.Base.Union(bundle.Dev), requirements.NewSet(devReqs...))
	dev.Report(c.Out, bundle.Source, cfg.Manifests.Dev)

	fmt.Fprintln(c.Out)
	if user.Matched() && dev.Matched() {
		c.printSuccess("All requirements match.")
		return nil
	}
	c.printError("Some requirements do not match.")
	return errors.New(errors.ErrCodeMismatch, "requirement lists out of sync")
}

// extractBundle runs the packaging extraction with progress logging.
// Name renames apply to both sides of the comparison, so a legacy name in
// the packaging declaration reconciles against the current one in a
// manifest and vice versa.
func (c *CLI) extractBundle(ctx context.Context, cfg *config.Config, noCache bool) (*requirements.Bundle, error) {
	prog := newProgress(c.Logger)
	bundle, err := setup.Extract(ctx, cfg.Root, setup.Options{
		Source:          string(cfg.Setup.Source),
		Interpreter:     cfg.Setup.Interpreter,
		DropDevPrefixes: cfg.Normalize.DropDevPrefixes,
		Cache:           newCache(noCache),
		CacheTTL:        setup.DefaultCacheTTL,
	})
	if err != nil {
		return nil, err
	}

	renames := requirements.Rules{Renames: cfg.Normalize.Renames}
	bundle.Base = requirements.NewSet(renames.Apply(bundle.Base.Sorted())...)
	bundle.Dev = requirements.NewSet(renames.Apply(bundle.Dev.Sorted())...)

	prog.done(fmt.Sprintf("Extracted %d base and %d dev requirements from %s",
		bundle.Base.Len(), bundle.Dev.Len(), bundle.Source))
	return bundle, nil
}

// resolvePath joins a manifest path with the project root unless it is
// already absolute.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
