package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/aptgraph/pkg/deps"
	"github.com/matzehuels/aptgraph/pkg/deps/apt"
	"github.com/matzehuels/aptgraph/pkg/deps/archive"
	errs "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
	"github.com/matzehuels/aptgraph/pkg/io"
	"github.com/matzehuels/aptgraph/pkg/render/nodelink"
	"github.com/matzehuels/aptgraph/pkg/render/plantuml"
)

const (
	formatPUML = "puml" // PlantUML source rendered by an external plantuml
	formatDOT  = "dot"  // Graphviz DOT rendered in-process

	sourceApt     = "apt"     // apt-cache depends
	sourceArchive = "archive" // Packages index from the repository
)

// graphOpts holds the command-line flags for resolving and rendering.
type graphOpts struct {
	pkg          string        // start package
	output       string        // image path (.png or .svg)
	plantumlPath string        // plantuml executable
	depth        int           // maximum traversal depth
	repo         string        // repository root for the archive source
	source       string        // "apt" or "archive"
	suite        string        // archive suite
	component    string        // archive component
	arch         string        // archive architecture
	index        string        // explicit Packages index location
	aptCachePath string        // apt-cache executable
	timeout      time.Duration // per-query timeout
	format       string        // "puml" or "dot"
	detailed     bool          // dependency counts in DOT labels
	jsonPath     string        // optional graph.json export
	configPath   string        // TOML config file
}

func defaultGraphOpts() graphOpts {
	return graphOpts{
		depth:        deps.DefaultMaxDepth,
		repo:         archive.DefaultRepoURL,
		source:       sourceApt,
		suite:        archive.DefaultSuite,
		component:    archive.DefaultComponent,
		arch:         archive.DefaultArch,
		aptCachePath: apt.DefaultPath,
		format:       formatPUML,
	}
}

// graphCommand creates the root command, which resolves a package's
// dependency graph and renders it.
func (c *CLI) graphCommand() *cobra.Command {
	opts := defaultGraphOpts()

	cmd := &cobra.Command{
		Use:   appName,
		Short: "aptgraph visualizes Debian package dependency graphs",
		Long: `aptgraph resolves the dependencies of a Debian/Ubuntu package up to a
maximum depth and renders the resulting graph as an image.

Dependencies are read from apt-cache (--source apt, the default) or from the
repository's Packages index (--source archive). The graph is written as
PlantUML next to the output image and rendered with plantuml, or as Graphviz
DOT rendered in-process with --format dot.

Defaults for every flag can be set in a TOML config file
(~/.config/aptgraph/config.toml, or --config).`,
		Example: `  aptgraph --plantuml-path /usr/bin/plantuml --package curl --output curl.png
  aptgraph -p libssl3 -o ssl.svg --format dot --depth 2
  aptgraph -p bash -o bash.png --source archive --suite jammy --json bash.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyConfig(&opts, cmd.Flags().Changed); err != nil {
				return err
			}
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "name of the package to analyze (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path, .png or .svg (required)")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "maximum depth of dependency analysis")
	cmd.Flags().StringVar(&opts.repo, "repo", opts.repo, "repository URL (archive source)")
	cmd.Flags().StringVar(&opts.source, "source", opts.source, "dependency source: apt, archive")
	cmd.Flags().StringVar(&opts.suite, "suite", opts.suite, "distribution suite (archive source)")
	cmd.Flags().StringVar(&opts.component, "component", opts.component, "archive component (archive source)")
	cmd.Flags().StringVar(&opts.arch, "arch", opts.arch, "binary architecture (archive source)")
	cmd.Flags().StringVar(&opts.index, "index", "", "explicit Packages index URL or file (archive source)")
	cmd.Flags().StringVar(&opts.aptCachePath, "apt-cache-path", opts.aptCachePath, "apt-cache executable (apt source)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout per package query, e.g. 10s (0 = none)")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "also export the graph as JSON to this path")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/aptgraph/config.toml)")
	addOutputFlags(cmd, &opts)
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// addOutputFlags registers the rendering flags shared with the render command.
func addOutputFlags(cmd *cobra.Command, opts *graphOpts) {
	cmd.Flags().StringVar(&opts.plantumlPath, "plantuml-path", "", "path to the plantuml executable (required for puml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "graph format: puml, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dependency counts in node labels (dot)")
}

// applyConfig merges the config file into opts.
func (c *CLI) applyConfig(opts *graphOpts, changed func(string) bool) error {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg.apply(opts, changed)
}

// validate checks the resolution flags and the output flags.
func (o graphOpts) validate() error {
	if err := errs.ValidatePackageName(o.pkg); err != nil {
		return err
	}
	switch o.source {
	case sourceApt, sourceArchive:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "invalid source: %s (must be 'apt' or 'archive')", o.source)
	}
	if o.timeout < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "timeout must not be negative, got %s", o.timeout)
	}
	return o.validateOutput()
}

// validateOutput checks the flags needed to render a graph.
func (o graphOpts) validateOutput() error {
	if o.output == "" {
		return errs.New(errs.ErrCodeInvalidInput, "output path is required")
	}
	if ext := filepath.Ext(o.output); !strings.EqualFold(ext, ".png") && !strings.EqualFold(ext, ".svg") {
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported output extension %q (must be .png or .svg)", ext)
	}
	switch o.format {
	case formatPUML:
		if o.plantumlPath == "" {
			return errs.New(errs.ErrCodeInvalidInput, "--plantuml-path is required for puml output")
		}
	case formatDOT:
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be 'puml' or 'dot')", o.format)
	}
	return nil
}

// newSource builds the dependency source selected by the flags. The
// repository settings only matter to the archive source.
func (o graphOpts) newSource() deps.Source {
	if o.source == sourceArchive {
		return archive.New(archive.Config{
			RepoURL:   o.repo,
			Suite:     o.suite,
			Component: o.component,
			Arch:      o.arch,
			Index:     o.index,
		})
	}
	return apt.New(apt.Config{Path: o.aptCachePath})
}

// runGraph resolves the graph for opts.pkg and renders it.
func (c *CLI) runGraph(ctx context.Context, opts graphOpts) error {
	c.Logger.Debug("resolving", "package", opts.pkg, "depth", opts.depth, "source", opts.source)

	g, err := c.resolve(ctx, opts)
	if err != nil {
		return err
	}
	return c.writeGraph(ctx, g, opts)
}

// resolve runs the resolver with a spinner and per-query logging. A start
// package that cannot be queried is reported as an empty graph.
func (c *CLI) resolve(ctx context.Context, opts graphOpts) (*graph.Graph, error) {
	var spinner *Spinner
	if c.spin {
		spinner = newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Resolving %s...", opts.pkg))
		spinner.Start()
	}

	queries := 0
	prog := newProgress(c.Logger)
	g, err := deps.NewResolver(opts.newSource()).Resolve(ctx, opts.pkg, deps.Options{
		MaxDepth:     opts.depth,
		QueryTimeout: opts.timeout,
		Logger:       c.Logger.Warnf,
		OnQuery: func(ev deps.QueryEvent) {
			queries++
			logQuery(c.Logger, ev)
			if spinner != nil {
				spinner.SetMessage(fmt.Sprintf("Resolving %s... %d queried (%s)", opts.pkg, queries, ev.Name))
			}
		},
	})
	if spinner != nil {
		spinner.Stop()
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		if errs.Is(err, errs.ErrCodeQueryFailed) {
			return nil, errs.Wrap(errs.ErrCodeEmptyGraph, err, "no dependencies found for package %s", opts.pkg)
		}
		return nil, err
	}
	if g.IsEmpty() {
		return nil, errs.New(errs.ErrCodeEmptyGraph, "no dependencies found for package %s", opts.pkg)
	}

	prog.done(fmt.Sprintf("Resolved %d packages in %d queries", g.Len(), queries))
	return g, nil
}

// writeGraph exports and renders g according to opts. The serialized source
// is written next to the output and kept even if rendering fails.
func (c *CLI) writeGraph(ctx context.Context, g *graph.Graph, opts graphOpts) error {
	if opts.jsonPath != "" {
		if err := io.ExportJSON(g, opts.jsonPath); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		c.Logger.Debug("exported graph", "path", opts.jsonPath)
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	prog := newProgress(c.Logger)
	var (
		src string
		err error
	)
	switch opts.format {
	case formatDOT:
		src, err = nodelink.RenderFile(ctx, nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed}), opts.output)
	default:
		src, err = plantuml.NewRenderer(opts.plantumlPath).RenderFile(ctx, plantuml.Serialize(g), opts.output)
	}
	c.Logger.Debug("wrote graph source", "path", src)
	if err != nil {
		return err
	}
	prog.done("Rendered " + opts.output)

	printStats(g.Len(), g.EdgeCount(), len(g.Leaves()))
	printSuccess("Graph successfully saved to %s", opts.output)
	return nil
}
