package deps

import (
	"context"
	"slices"
	"time"

	errs "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/graph"
)

// Resolver builds a dependency graph by walking a Source.
type Resolver struct {
	source Source
}

// NewResolver creates a Resolver that queries source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve expands start up to opts.MaxDepth levels and returns the graph of
// every package it queried. A fresh graph and visited set are used per call,
// so a Resolver may be reused sequentially.
func (r *Resolver) Resolve(ctx context.Context, start string, opts Options) (*graph.Graph, error) {
	if start == "" {
		return nil, errs.New(errs.ErrCodeInvalidPackage, "package name cannot be empty")
	}
	t := &traversal{
		ctx:     ctx,
		opts:    opts.WithDefaults(),
		source:  r.source,
		root:    start,
		g:       graph.New(),
		visited: make(map[string]bool),
	}
	return t.run()
}

// traversal owns the state of a single Resolve call.
type traversal struct {
	ctx    context.Context
	opts   Options
	source Source
	root   string

	g       *graph.Graph
	visited map[string]bool
	stack   []job
}

type job struct {
	name  string
	depth int
}

// run pops jobs in the order a recursive depth-first walk would visit them:
// children are pushed in reverse so the first dependency is expanded first.
func (t *traversal) run() (*graph.Graph, error) {
	if t.opts.MaxDepth < 1 {
		return t.g, nil
	}
	if err := t.load(); err != nil {
		return nil, err
	}

	t.stack = append(t.stack, job{name: t.root, depth: 1})

	for len(t.stack) > 0 {
		if err := t.ctx.Err(); err != nil {
			return nil, err
		}

		j := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]

		if j.depth > t.opts.MaxDepth || t.visited[j.name] {
			continue
		}
		t.visited[j.name] = true

		deps, err := t.query(j)
		if err != nil {
			if ctxErr := t.ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if j.name == t.root {
				return nil, errs.Wrap(errs.ErrCodeQueryFailed, err, "query %s", j.name)
			}
			t.opts.Logger("query failed: %s: %v", j.name, err)
			deps = nil
		}

		t.g.Set(j.name, deps)

		for _, dep := range slices.Backward(deps) {
			t.stack = append(t.stack, job{name: dep, depth: j.depth + 1})
		}
	}

	return t.g, nil
}

// load prepares a Loader source under the caller's context only.
func (t *traversal) load() error {
	l, ok := t.source.(Loader)
	if !ok {
		return nil
	}
	if err := l.Load(t.ctx); err != nil {
		if ctxErr := t.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		code := errs.GetCode(err)
		if code == "" {
			code = errs.ErrCodeQueryFailed
		}
		return errs.Wrap(code, err, "load source")
	}
	return nil
}

func (t *traversal) query(j job) ([]string, error) {
	ctx := t.ctx
	if t.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.QueryTimeout)
		defer cancel()
	}

	start := time.Now()
	deps, err := t.source.DirectDependencies(ctx, j.name)
	if err != nil {
		deps = nil
	}
	t.opts.OnQuery(QueryEvent{
		Name:         j.name,
		Depth:        j.depth,
		Dependencies: deps,
		Err:          err,
		Elapsed:      time.Since(start),
	})
	return deps, err
}
