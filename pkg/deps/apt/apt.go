package apt

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/deps"
	errs "github.com/matzehuels/aptgraph/pkg/errors"
)

// DefaultPath is the apt-cache executable looked up on PATH.
const DefaultPath = "apt-cache"

const dependsPrefix = "Depends:"

// Config configures a Source.
type Config struct {
	Path string // apt-cache executable (default: DefaultPath)
}

// Source implements deps.Source on top of apt-cache.
type Source struct {
	path string
	run  runFunc
}

// runFunc executes a command and returns its stdout and stderr.
type runFunc func(ctx context.Context, path string, args ...string) (stdout, stderr []byte, err error)

// New creates a Source for the given configuration.
func New(cfg Config) *Source {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	return &Source{path: path, run: execRun}
}

// Path returns the apt-cache executable the Source invokes.
func (s *Source) Path() string { return s.path }

// DirectDependencies runs apt-cache depends for name and returns the
// declared direct dependencies in output order, without duplicates.
func (s *Source) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	stdout, stderr, err := s.run(ctx, s.path, "depends", name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %w", deps.ErrQuery, errs.Wrap(errs.ErrCodeTimeout, ctxErr, "apt-cache depends %s", name))
			}
			return nil, fmt.Errorf("%w: %s: %v", deps.ErrQuery, name, ctxErr)
		}
		if errs.Is(err, errs.ErrCodeToolNotFound) {
			return nil, fmt.Errorf("%w: %w", deps.ErrQuery, err)
		}
		if notFound(stderr) {
			return nil, fmt.Errorf("%w: %s", deps.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: apt-cache depends %s: %v: %s", deps.ErrQuery, name, err, strings.TrimSpace(string(stderr)))
	}
	if len(bytes.TrimSpace(stdout)) == 0 {
		return nil, fmt.Errorf("%w: %s", deps.ErrNotFound, name)
	}
	return ParseDepends(bytes.NewReader(stdout))
}

// ParseDepends extracts direct dependency names from apt-cache depends
// output. Lines whose trimmed text starts with "Depends:" contribute the
// remainder of the line; everything else is ignored.
func ParseDepends(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		dep, ok := strings.CutPrefix(line, dependsPrefix)
		if !ok {
			continue
		}
		dep = strings.TrimSpace(dep)
		if dep == "" || seen[dep] {
			continue
		}
		seen[dep] = true
		out = append(out, dep)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read apt-cache output: %v", deps.ErrQuery, err)
	}
	return out, nil
}

func notFound(stderr []byte) bool {
	s := string(stderr)
	return strings.Contains(s, "No packages found") || strings.Contains(s, "Unable to locate package")
}

func execRun(ctx context.Context, path string, args ...string) ([]byte, []byte, error) {
	if _, err := exec.LookPath(path); err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeToolNotFound, err,
			"%s not found. Install apt (Debian/Ubuntu) or use --source archive", path)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(cmd.Environ(), "LC_ALL=C")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return out.Bytes(), errBuf.Bytes(), err
}
