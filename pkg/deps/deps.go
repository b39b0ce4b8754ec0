package deps

import (
	"context"
	"errors"
	"time"
)

// DefaultMaxDepth is the depth used by the CLI when none is given.
const DefaultMaxDepth = 3

var (
	// ErrNotFound is returned by a Source when the package is unknown to it.
	ErrNotFound = errors.New("package not found")

	// ErrQuery is returned by a Source when the query mechanism itself failed
	// (tool missing, non-zero exit, network error, timeout).
	ErrQuery = errors.New("query failed")
)

// Source answers direct-dependency queries for single packages.
type Source interface {
	// DirectDependencies returns the names of the packages name directly
	// depends on. Order is preserved by the resolver when descending.
	// Failures wrap ErrNotFound or ErrQuery.
	DirectDependencies(ctx context.Context, name string) ([]string, error)
}

// Loader is implemented by sources that fetch their data once up front.
// The resolver calls Load with its own context before the first query, so
// the load is not bound by the per-query timeout.
type Loader interface {
	Load(ctx context.Context) error
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func(ctx context.Context, name string) ([]string, error)

// DirectDependencies calls f(ctx, name).
func (f SourceFunc) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	return f(ctx, name)
}

// QueryEvent describes one completed source query.
type QueryEvent struct {
	Name         string        // Package queried
	Depth        int           // Traversal depth (1 = start package)
	Dependencies []string      // Answer, nil on failure
	Err          error         // Query error, if any
	Elapsed      time.Duration // Wall time spent in the source
}

// Options configures dependency resolution behavior.
type Options struct {
	MaxDepth     int                  // Maximum depth to traverse; <= 0 yields an empty graph
	QueryTimeout time.Duration        // Per-query timeout (0 = none)
	Logger       func(string, ...any) // Warning callback for degraded packages (optional)
	OnQuery      func(QueryEvent)     // Called after every query (optional)
}

// WithDefaults returns a copy of Options with nil callbacks replaced by
// no-ops. MaxDepth is left alone: zero means "resolve nothing".
func (o Options) WithDefaults() Options {
	opts := o
	if opts.QueryTimeout < 0 {
		opts.QueryTimeout = 0
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnQuery == nil {
		opts.OnQuery = func(QueryEvent) {}
	}
	return opts
}
