package archive

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pault.ag/go/debian/control"
	"pault.ag/go/debian/dependency"
)

// Index maps package names to their direct dependency names.
type Index map[string][]string

// ParseIndex reads a Debian binary Packages file and returns the Depends
// relation of every stanza. Stanzas without a Package field are skipped.
// When a package appears more than once (several versions), the first
// stanza wins. A malformed Depends field fails the whole index.
func ParseIndex(r io.Reader) (Index, error) {
	entries, err := control.ParseBinaryIndex(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	idx := make(Index, len(entries))
	for _, e := range entries {
		if e.Package == "" {
			continue
		}
		if _, dup := idx[e.Package]; dup {
			continue
		}
		idx[e.Package] = names(e.Depends)
	}
	return idx, nil
}

// ParseDepends reduces a Depends field value to package names in declared
// order, without duplicates. Only the first alternative of each relation
// is kept; version constraints, architecture qualifiers and restriction
// lists are dropped.
//
//	"libc6 (>= 2.34), mawk | gawk, perl:any, foo [amd64] <!nocheck>"
//
// yields [libc6 mawk perl foo].
func ParseDepends(field string) ([]string, error) {
	field = strings.Join(strings.Fields(field), " ")
	if field == "" {
		return nil, nil
	}
	dep, err := dependency.Parse(field)
	if err != nil {
		return nil, fmt.Errorf("parse depends %q: %w", field, err)
	}
	return names(*dep), nil
}

// names keeps the first alternative of each relation.
func names(dep dependency.Dependency) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rel := range dep.Relations {
		if len(rel.Possibilities) == 0 {
			continue
		}
		name := rel.Possibilities[0].Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
