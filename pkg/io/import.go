package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

var (
	// ErrEmptyNodeID is returned when a node has no id.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrUnknownNode is returned when an edge references an undeclared node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnexpandedSource is returned when an edge starts at a node that is
	// not marked expanded.
	ErrUnexpandedSource = errors.New("edge from unexpanded node")
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an error if the JSON is malformed, a node has an empty
// id, an edge references an undeclared node, or an edge starts at a node
// not marked expanded. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New()
	declared := make(map[string]bool, len(data.Nodes))
	for _, n := range data.Nodes {
		if n.ID == "" {
			return nil, ErrEmptyNodeID
		}
		declared[n.ID] = true
		if n.Expanded && !g.Has(n.ID) {
			g.Set(n.ID, nil)
		}
	}
	for _, e := range data.Edges {
		if !declared[e.From] {
			return nil, fmt.Errorf("edge %s->%s: %w %q", e.From, e.To, ErrUnknownNode, e.From)
		}
		if !declared[e.To] {
			return nil, fmt.Errorf("edge %s->%s: %w %q", e.From, e.To, ErrUnknownNode, e.To)
		}
		if !g.Has(e.From) {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, ErrUnexpandedSource)
		}
		g.Add(e.From, e.To)
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
