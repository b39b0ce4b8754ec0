// Package pkg provides the libraries behind aptgraph.
//
// # Overview
//
// aptgraph builds the dependency graph of a Debian/Ubuntu package by
// querying a package index recursively, up to a maximum depth, and renders
// the result as an image. The pkg directory is organized by pipeline stage:
//
//  1. [deps] - the depth-bounded resolver and its metadata sources
//  2. [graph] - the resulting package → dependency-set mapping
//  3. [render] - serialization to PlantUML or DOT and image rendering
//  4. [io] - JSON export and import of graphs
//
// # Architecture
//
//	apt-cache / Packages index
//	         ↓
//	    [deps] Resolver (depth-first, each package queried once)
//	         ↓
//	    [graph] Graph
//	         ↓
//	    [render/plantuml] or [render/nodelink]
//	         ↓
//	    PNG/SVG output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/aptgraph/pkg/deps"
//	    "github.com/matzehuels/aptgraph/pkg/deps/apt"
//	    "github.com/matzehuels/aptgraph/pkg/render/plantuml"
//	)
//
//	r := deps.NewResolver(apt.New(apt.Config{}))
//	g, err := r.Resolve(ctx, "curl", deps.Options{MaxDepth: 3})
//	if err != nil {
//	    return err
//	}
//	text := plantuml.Serialize(g)
//	_, err = plantuml.NewRenderer("plantuml").RenderFile(ctx, text, "curl.png")
//
// # Error Handling
//
// Failures carry codes from [errors] (QUERY_FAILED, EMPTY_GRAPH,
// RENDER_FAILED, ...) so the CLI can choose messages and exit codes without
// matching on text.
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/deps
// [graph]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/render
// [render/plantuml]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/render/plantuml
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/aptgraph/pkg/errors
package pkg
