// Package cli implements the aptgraph command-line interface.
//
// The root command resolves the dependency graph of a Debian package up to a
// depth bound, serializes it as PlantUML (or Graphviz DOT) and renders it to
// an image. The CLI is built using cobra and logs via the charmbracelet/log
// library.
//
// # Commands
//
//   - aptgraph: resolve and render a package graph
//   - render: render a previously exported graph.json without querying again
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every source query with its depth and timing.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aptgraph/pkg/deps"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Resolved 42 packages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logQuery logs one source query at debug level.
func logQuery(l *log.Logger, ev deps.QueryEvent) {
	elapsed := ev.Elapsed.Round(time.Millisecond)
	if ev.Err != nil {
		l.Debug("query failed", "package", ev.Name, "depth", ev.Depth, "elapsed", elapsed, "err", ev.Err)
		return
	}
	l.Debug("queried", "package", ev.Name, "depth", ev.Depth, "deps", len(ev.Dependencies), "elapsed", elapsed)
}
