package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reqcheck/internal/config"
	"github.com/matzehuels/reqcheck/pkg/manifest"
	"github.com/matzehuels/reqcheck/pkg/requirements"
)

// showCommand creates the show command for inspecting one extraction side
// without running a comparison.
func (c *CLI) showCommand() *cobra.Command {
	var (
		opts   checkOpts
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show <setup|user|dev>",
		Short: "Print the requirement set extracted from one source",
		Long: `Print the normalized requirement set the checker would use for one side
of the comparison: the packaging bundle (setup), the user manifest, or the
dev manifest. Useful for debugging a mismatch report.`,
		ValidArgs: []string{"setup", "user", "dev"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.root != "" {
				cfg.Root = opts.root
			}

			switch args[0] {
			case "setup":
				return c.showSetup(cmd, cfg, opts.noCache, asJSON)
			default:
				return c.showManifest(cfg, args[0], asJSON)
			}
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default: .reqcheck.yaml if present)")
	cmd.Flags().StringVar(&opts.root, "root", "", "project root (overrides config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the extraction cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func (c *CLI) showSetup(cmd *cobra.Command, cfg *config.Config, noCache, asJSON bool) error {
	bundle, err := c.extractBundle(cmd.Context(), cfg, noCache)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(c.Out).Encode(map[string]any{
			"source": bundle.Source,
			"base":   bundle.Base.Sorted(),
			"dev":    bundle.Dev.Sorted(),
		})
	}

	c.printInfo("%s base requirements:", bundle.Source)
	for _, req := range bundle.Base.Sorted() {
		c.printDetail("%s", req)
	}
	c.printInfo("%s dev requirements:", bundle.Source)
	for _, req := range bundle.Dev.Sorted() {
		c.printDetail("%s", req)
	}
	return nil
}

func (c *CLI) showManifest(cfg *config.Config, which string, asJSON bool) error {
	path := cfg.Manifests.User
	if which == "dev" {
		path = cfg.Manifests.Dev
	}

	rules := requirements.Rules{
		Renames:      cfg.Normalize.Renames,
		DropPrefixes: cfg.Normalize.DropManifestPrefixes,
	}
	reqs, err := manifest.Parse(resolvePath(cfg.Root, path), rules)
	if err != nil {
		return err
	}
	sorted := requirements.NewSet(reqs...).Sorted()

	if asJSON {
		return json.NewEncoder(c.Out).Encode(map[string]any{
			"source":       path,
			"requirements": sorted,
		})
	}

	c.printInfo("%s requirements:", path)
	for _, req := range sorted {
		c.printDetail("%s", req)
	}
	return nil
}
