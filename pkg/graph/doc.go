// Package graph provides the dependency graph produced by a resolution run.
//
// # Overview
//
// A [Graph] maps each expanded package to the set of its direct
// dependencies. Only packages the resolver actually queried appear as keys;
// packages that were merely referenced (because the depth bound was reached,
// or because they were already expanded elsewhere) show up only inside
// dependency sets.
//
// Unlike a layered DAG, cycles are allowed: "a" depending on "b" and "b"
// depending on "a" is a valid graph with two keys.
//
// # Basic Usage
//
//	g := graph.New()
//	g.Set("app", []string{"libfoo", "libbar"})
//	g.Set("libfoo", nil)
//
//	g.Has("app")              // true
//	g.Has("libbar")           // false (referenced, never expanded)
//	g.Dependencies("app")     // [libbar libfoo]
//	g.EdgeCount()             // 2
//
// # Ordering
//
// Sets carry no order. Every accessor that returns a slice ([Graph.Keys],
// [Graph.Dependencies], [Graph.Edges], [Graph.Names]) returns it sorted so
// that serializers produce byte-identical output for identical graphs.
package graph
