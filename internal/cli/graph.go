package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stackorder/pkg/errors"
	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/render/dot"
)

// Output formats for the graph command.
const (
	graphDOT = "dot"
	graphSVG = "svg"
)

type graphOptions struct {
	format   string
	output   string
	strategy string
	detailed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph FILE...",
		Short: "Export the constraint graph as DOT or SVG",
		Long: `Export the precedence graph built from the manifests.

Nodes are annotated with their rank in the resolved order. If the
constraints contain a cycle, the graph is still written and the cycle is
highlighted in red.`,
		Example: `  stackorder graph core.toml plugins.json -o order.svg
  stackorder graph --format dot core.toml | dot -Tpng > order.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (dot, svg); inferred from --output, default dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", graph.StrategyKahn, "sort strategy used for ranks (kahn, dfs)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include rank and metadata in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, stdout, stderr io.Writer, paths []string, opts graphOptions) error {
	format := opts.format
	if format == "" {
		format = graphDOT
		if strings.HasSuffix(strings.ToLower(opts.output), ".svg") {
			format = graphSVG
		}
	}
	if err := errs.ValidateOneOf(errs.ErrCodeInvalidFormat, "graph format", format, graphDOT, graphSVG); err != nil {
		return err
	}
	factory, err := graph.FactoryFor[manifest.Entry](opts.strategy)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)

	ms, err := manifest.LoadAll(paths...)
	if err != nil {
		return err
	}
	g, err := dot.Build(manifest.NewBuilder(factory, ms...))
	if err != nil {
		return err
	}
	if len(g.Cycle) > 0 {
		printWarning(stderr, "constraints contain a cycle: %s", strings.Join(g.Cycle, " -> "))
	}

	out := []byte(dot.ToDOT(g, dot.Options{Detailed: opts.detailed}))
	if format == graphSVG {
		if out, err = dot.RenderSVG(ctx, string(out)); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Exported graph with %d elements", len(g.Nodes)))
	printSuccess(stderr, "Wrote %s graph", format)
	printFile(stderr, opts.output)
	return nil
}
