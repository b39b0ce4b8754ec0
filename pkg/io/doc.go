// Package io provides JSON import and export for dependency graphs.
//
// # Overview
//
// A resolution run can be saved with [ExportJSON] and rendered again later
// with [ImportJSON], without querying the package index a second time.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "app", "expanded": true},
//	    {"id": "libbar", "expanded": true},
//	    {"id": "libfoo"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "libbar"},
//	    {"from": "app", "to": "libfoo"},
//	    {"from": "libbar", "to": "libfoo"}
//	  ]
//	}
//
// Every package mentioned in the graph is a node. "expanded" marks graph
// keys, so an expanded package without dependencies survives a round trip
// as a key with an empty set, while a merely referenced package does not
// become a key.
//
// Nodes and edges are written in sorted order.
package io
