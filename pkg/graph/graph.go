package graph

import (
	"maps"
	"slices"
)

// Edge is a directed (package, dependency) pair.
type Edge struct {
	From string // Dependent package
	To   string // Direct dependency
}

// Graph maps package names to the set of their direct dependencies.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	deps map[string]map[string]struct{}
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{deps: make(map[string]map[string]struct{})}
}

// Set records deps as the dependency set of name, replacing any previous
// entry. Duplicate names in deps collapse to one member. A nil or empty
// deps still creates the key.
func (g *Graph) Set(name string, deps []string) {
	set := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		set[d] = struct{}{}
	}
	g.deps[name] = set
}

// Add inserts a single edge name -> dep, creating the key if needed.
func (g *Graph) Add(name, dep string) {
	set, ok := g.deps[name]
	if !ok {
		set = make(map[string]struct{})
		g.deps[name] = set
	}
	set[dep] = struct{}{}
}

// Has reports whether name is a key, i.e. whether it was expanded.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Dependencies returns the sorted dependency set of name.
// It returns nil if name is not a key.
func (g *Graph) Dependencies(name string) []string {
	set, ok := g.deps[name]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}

// Keys returns all expanded package names in sorted order.
func (g *Graph) Keys() []string {
	return slices.Sorted(maps.Keys(g.deps))
}

// Len returns the number of keys.
func (g *Graph) Len() int { return len(g.deps) }

// IsEmpty reports whether the graph has no keys.
func (g *Graph) IsEmpty() bool { return len(g.deps) == 0 }

// EdgeCount returns the sum of the sizes of all dependency sets.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, set := range g.deps {
		n += len(set)
	}
	return n
}

// Edges returns every (package, dependency) pair, sorted by From then To.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, from := range g.Keys() {
		for _, to := range g.Dependencies(from) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Names returns every package name mentioned in the graph, whether as a key
// or only as a dependency, in sorted order.
func (g *Graph) Names() []string {
	all := make(map[string]struct{}, len(g.deps))
	for name, set := range g.deps {
		all[name] = struct{}{}
		for d := range set {
			all[d] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(all))
}

// Leaves returns names that appear only as dependencies and were never
// expanded, in sorted order.
func (g *Graph) Leaves() []string {
	var out []string
	for _, n := range g.Names() {
		if !g.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Equal reports whether g and other have the same keys and dependency sets.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.deps) != len(other.deps) {
		return false
	}
	for name, set := range g.deps {
		o, ok := other.deps[name]
		if !ok || !maps.Equal(set, o) {
			return false
		}
	}
	return true
}
