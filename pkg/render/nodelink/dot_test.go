package nodelink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.New()
	g.Set("app", []string{"libfoo", "libbar"})
	g.Set("libbar", []string{"libfoo"})
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`"app" -> "libbar";`, `"app" -> "libfoo";`, `"libbar" -> "libfoo";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing edge %s", want)
		}
	}
	if n := strings.Count(dot, " -> "); n != 3 {
		t.Errorf("edge count = %d, want 3", n)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("ToDOT() output not closed")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(graph.New(), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("ToDOT(empty) has edges:\n%s", dot)
	}
}

func TestToDOT_IsolatedKey(t *testing.T) {
	g := graph.New()
	g.Set("lonely", nil)

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"lonely" [label="lonely"];`) {
		t.Errorf("ToDOT() missing isolated node:\n%s", dot)
	}
}

func TestToDOT_Unexpanded(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	var line string
	for _, l := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), `"libfoo" [`) {
			line = l
		}
	}
	if !strings.Contains(line, "dashed") || !strings.Contains(line, "lightgrey") {
		t.Errorf("unexpanded node not styled: %q", line)
	}
}

func TestToDOT_Stable(t *testing.T) {
	if ToDOT(sample(), Options{}) != ToDOT(sample(), Options{}) {
		t.Error("ToDOT() output differs between runs")
	}
}

func TestFmtLabel(t *testing.T) {
	g := sample()

	if got := fmtLabel(g, "app", false); got != "app" {
		t.Errorf("fmtLabel(app, false) = %q, want app", got)
	}
	if got := fmtLabel(g, "app", true); got != "app\ndeps: 2" {
		t.Errorf("fmtLabel(app, true) = %q, want %q", got, "app\ndeps: 2")
	}
	if got := fmtLabel(g, "libfoo", true); got != "libfoo" {
		t.Errorf("fmtLabel(libfoo, true) = %q, want libfoo", got)
	}
}

func TestFmtAttrs(t *testing.T) {
	g := sample()

	if attrs := fmtAttrs(g, "app", false); len(attrs) != 1 {
		t.Errorf("fmtAttrs(app) = %v, want 1 attr", attrs)
	}
	if attrs := fmtAttrs(g, "libfoo", false); len(attrs) != 4 {
		t.Errorf("fmtAttrs(libfoo) = %v, want 4 attrs", attrs)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestSourcePath(t *testing.T) {
	if got := SourcePath("out/graph.png"); got != "out/graph.dot" {
		t.Errorf("SourcePath() = %q, want out/graph.dot", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRenderFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "graph.svg")

	src, err := RenderFile(context.Background(), ToDOT(sample(), Options{}), out)
	if err != nil {
		t.Fatalf("RenderFile() error: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("DOT source not written: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("image is not SVG")
	}
}
