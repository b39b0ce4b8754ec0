package plantuml

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/aptgraph/pkg/graph"
)

// Markers delimiting a PlantUML document.
const (
	StartMarker = "@startuml"
	EndMarker   = "@enduml"
)

// Extension is the file extension PlantUML sources use.
const Extension = ".puml"

// Serialize converts g to PlantUML source text.
func Serialize(g *graph.Graph) string {
	var b strings.Builder
	_ = Write(&b, g)
	return b.String()
}

// Write writes the PlantUML source for g to w.
func Write(w io.Writer, g *graph.Graph) error {
	if _, err := fmt.Fprintln(w, StartMarker); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(w, "%s --> %s\n", quote(e.From), quote(e.To)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, EndMarker)
	return err
}

// quote wraps a name in double quotes. PlantUML has no escape for an
// embedded quote, so it is replaced with a single quote.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `'`) + `"`
}
