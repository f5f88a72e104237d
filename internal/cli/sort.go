package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stackorder/pkg/errors"
	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/resolve"
)

// Output formats for the sort command.
const (
	outputText = "text"
	outputJSON = "json"
)

type sortOptions struct {
	strategy string
	format   string
	noCache  bool
	refresh  bool
}

// sortOutput is the JSON form of a resolved order.
type sortOutput struct {
	Order    []string         `json:"order"`
	Elements []manifest.Entry `json:"elements"`
	Edges    int              `json:"edges"`
	Strategy string           `json:"strategy"`
	Cached   bool             `json:"cached"`
}

// sortCommand creates the sort command.
func (c *CLI) sortCommand() *cobra.Command {
	var opts sortOptions

	cmd := &cobra.Command{
		Use:   "sort FILE...",
		Short: "Resolve manifests into an order",
		Long: `Resolve one or more manifests (.toml, .json, .yaml) into a single order.

Manifests are applied in the order given. When two elements are not
constrained relative to each other, the one declared first comes first.`,
		Example: `  stackorder sort core.toml plugins.json
  stackorder sort --strategy dfs --format json middleware.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSort(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.strategy, "strategy", resolve.DefaultStrategy, "sort strategy (kahn, dfs)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", outputText, "output format (text, json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the order cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached orders and resolve again")

	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions(graph.Strategies(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{outputText, outputJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runSort(ctx context.Context, w io.Writer, paths []string, opts sortOptions) error {
	if err := errs.ValidateOneOf(errs.ErrCodeInvalidFormat, "output format", opts.format, outputText, outputJSON); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	res, err := runner.ResolveFiles(ctx, paths, resolve.Options{
		Strategy: opts.strategy,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}

	if opts.format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sortOutput{
			Order:    res.IDs(),
			Elements: res.Order,
			Edges:    len(res.Edges),
			Strategy: res.Strategy,
			Cached:   res.CacheHit,
		})
	}

	labels := make([]string, len(res.Order))
	for i, e := range res.Order {
		labels[i] = e.Label
	}
	printOrder(w, res.IDs(), labels)
	printStats(w, len(res.Order), len(res.Edges), res.Strategy, res.CacheHit)
	return nil
}
