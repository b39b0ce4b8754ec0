// Package deps resolves the dependency graph of a Debian package.
//
// # Overview
//
// A [Resolver] walks the direct-dependency relation exposed by a [Source],
// starting from one package and expanding depth-first up to
// [Options.MaxDepth] levels. The result is a [graph.Graph] in which every
// expanded package is a key mapped to the set of its direct dependencies.
//
// Two sources ship with aptgraph:
//
//   - [apt]: asks the local apt-cache, one process per package
//   - [archive]: downloads a Packages index from a Debian mirror once and
//     answers from memory
//
// # Resolving Dependencies
//
//	src := apt.New(apt.Config{})
//	g, err := deps.NewResolver(src).Resolve(ctx, "curl", deps.Options{
//	    MaxDepth:     3,
//	    QueryTimeout: 5 * time.Second,
//	})
//
// The resolver:
//
//  1. Skips a package if it is deeper than MaxDepth or was already expanded
//  2. Marks it expanded and queries the source once
//  3. Records the answer, even when empty
//  4. Descends into each dependency in the order the source returned them
//
// Depth 1 means only the starting package is queried. MaxDepth <= 0 yields
// an empty graph without touching the source.
//
// # Failures
//
// A query that fails for any package other than the start is logged through
// [Options.Logger] and recorded as an empty dependency set; resolution goes
// on. A failure for the start package aborts with a QUERY_FAILED error.
// [Options.QueryTimeout] bounds each individual query; expiry counts as a
// query failure for that package only. Cancelling the context passed to
// [Resolver.Resolve] stops the walk and returns ctx.Err().
//
// [apt]: github.com/matzehuels/aptgraph/pkg/deps/apt
// [archive]: github.com/matzehuels/aptgraph/pkg/deps/archive
// [graph.Graph]: github.com/matzehuels/aptgraph/pkg/graph.Graph
package deps
