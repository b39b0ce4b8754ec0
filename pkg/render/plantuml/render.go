package plantuml

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/aptgraph/pkg/errors"
)

// Format is a PlantUML output type passed as -t<format>.
type Format string

// Output formats supported by the renderer.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatFromPath picks the output format from an image path's extension,
// defaulting to PNG.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// Renderer runs the PlantUML executable.
type Renderer struct {
	path string
}

// NewRenderer creates a Renderer for the executable at path.
func NewRenderer(path string) *Renderer {
	return &Renderer{path: path}
}

// SourcePath returns where the PlantUML source for an image at output is
// written: same directory and base name, .puml extension.
func SourcePath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + Extension
}

// Render converts the PlantUML file at source into an image in outDir.
// The image is named after source by PlantUML itself.
func (r *Renderer) Render(ctx context.Context, source, outDir string, format Format) error {
	if r.path == "" {
		return errs.New(errs.ErrCodeInvalidInput, "plantuml path is required")
	}
	if _, err := exec.LookPath(r.path); err != nil {
		return errs.Wrap(errs.ErrCodeToolNotFound, err,
			"plantuml not found at %q. Install with:\n  macOS:  brew install plantuml\n  Linux:  apt install plantuml", r.path)
	}

	abs, err := filepath.Abs(outDir)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "resolve output directory")
	}

	cmd := exec.CommandContext(ctx, r.path, source, "-t"+string(format), "-o", abs)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errs.Wrap(errs.ErrCodeRenderFailed, &stderrError{stderr: errBuf.String(), exit: err}, "plantuml rendering failed")
	}
	return nil
}

// RenderFile writes text to the .puml sibling of output and renders it,
// leaving the source in place whatever the outcome. It returns the path of
// the source file.
func (r *Renderer) RenderFile(ctx context.Context, text, output string) (string, error) {
	src := SourcePath(output)
	if err := os.WriteFile(src, []byte(text), 0o644); err != nil {
		return src, fmt.Errorf("write %s: %w", src, err)
	}
	return src, r.Render(ctx, src, filepath.Dir(output), FormatFromPath(output))
}

// stderrError carries the renderer's diagnostics unchanged; it falls back to
// the exit status when stderr is empty.
type stderrError struct {
	stderr string
	exit   error
}

func (e *stderrError) Error() string {
	if strings.TrimSpace(e.stderr) == "" {
		return e.exit.Error()
	}
	return e.stderr
}

func (e *stderrError) Unwrap() error { return e.exit }
