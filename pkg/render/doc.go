// Package render groups the graph renderers.
//
// # Overview
//
// Both renderers follow the same two steps: serialize the [graph.Graph] to a
// text format, write that text next to the requested image (same base name),
// then turn it into a PNG or SVG. The text file is kept even when rendering
// fails, so it can be inspected or rendered by hand.
//
//   - [plantuml]: PlantUML source, rendered by the external plantuml tool
//   - [nodelink]: Graphviz DOT, rendered in-process with go-graphviz
//
// Layout is left entirely to PlantUML and Graphviz.
//
// [graph.Graph]: github.com/matzehuels/aptgraph/pkg/graph
// [plantuml]: github.com/matzehuels/aptgraph/pkg/render/plantuml
// [nodelink]: github.com/matzehuels/aptgraph/pkg/render/nodelink
package render
