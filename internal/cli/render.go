package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/io"
)

// renderCommand creates the render command, which renders a graph exported
// with --json without querying any source.
func (c *CLI) renderCommand() *cobra.Command {
	opts := defaultGraphOpts()

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a previously exported dependency graph",
		Long: `Render a dependency graph exported with --json.

The graph is serialized and rendered exactly as in a normal run, so a graph
can be rendered in another format or by another plantuml installation
without querying apt again.`,
		Example: `  aptgraph -p curl -o curl.png --plantuml-path plantuml --json curl.json
  aptgraph render curl.json -o curl.svg --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(&opts, cmd.Flags().Changed); err != nil {
				return err
			}
			if err := opts.validateOutput(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path, .png or .svg (required)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/aptgraph/config.toml)")
	addOutputFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// runRender loads the graph file and renders it.
func (c *CLI) runRender(ctx context.Context, input string, opts graphOpts) error {
	g, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	c.Logger.Debug("loaded graph", "path", input, "packages", g.Len(), "edges", g.EdgeCount())
	return c.writeGraph(ctx, g, opts)
}
