// Package nodelink renders dependency graphs as node-link diagrams with
// Graphviz.
//
// # Overview
//
// This is the alternative to the PlantUML pipeline: [ToDOT] serializes a
// graph to Graphviz DOT and [RenderPNG] / [RenderSVG] lay it out and draw it
// in-process, so no external executable is needed.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// Every package mentioned in the graph becomes a node. Expanded packages
// (graph keys) are drawn as white rounded boxes; packages that were only
// referenced, because the depth bound was reached, are drawn dashed and
// grey. One edge is emitted per (package, dependency) pair:
//
//	digraph G {
//	  rankdir=TB;
//	  ...
//	  "app" [label="app"];
//	  "libfoo" [label="libfoo", style="rounded,filled,dashed", fillcolor=lightgrey];
//
//	  "app" -> "libfoo";
//	}
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for rendering.
package nodelink
