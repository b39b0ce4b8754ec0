package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
)

// Extension is the file extension used for DOT sources.
const Extension = ".dot"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the number of direct dependencies to expanded nodes'
	// labels. When false, only the package name is shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format for node-link visualization.
// Output is sorted and therefore stable for a given graph.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range g.Names() {
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(fmtAttrs(g, name, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, name string, detailed bool) string {
	if !detailed || !g.Has(name) {
		return name
	}
	return fmt.Sprintf("%s\ndeps: %d", name, len(g.Dependencies(name)))
}

func fmtAttrs(g *graph.Graph, name string, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, name, detailed))}
	if !g.Has(name) {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// SourcePath returns where the DOT source for an image at output is written.
func SourcePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + Extension
}

// RenderFile writes dot next to output and renders the image to output,
// choosing SVG for a .svg extension and PNG otherwise. The DOT file is kept
// whatever the outcome; its path is returned.
func RenderFile(ctx context.Context, dot, output string) (string, error) {
	src := SourcePath(output)
	if err := os.WriteFile(src, []byte(dot), 0o644); err != nil {
		return src, fmt.Errorf("write %s: %w", src, err)
	}

	var (
		img []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(output), ".svg") {
		img, err = RenderSVG(ctx, dot)
	} else {
		img, err = RenderPNG(ctx, dot)
	}
	if err != nil {
		return src, errs.Wrap(errs.ErrCodeRenderFailed, err, "graphviz rendering failed")
	}
	if err := os.WriteFile(output, img, 0o644); err != nil {
		return src, fmt.Errorf("write %s: %w", output, err)
	}
	return src, nil
}
