// Package reporter writes pipeline results in the supported output formats.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/engine"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// Reporter formats and writes pipeline results.
type Reporter interface {
	// Report writes formatted output for the given result.
	Report(ctx context.Context, result *engine.Result) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatNodes:
		return NewNodesReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// flush flushes bw into *err unless an earlier error is already set.
func flush(bw *bufio.Writer, err *error) {
	if flushErr := bw.Flush(); *err == nil {
		*err = flushErr
	}
}

// Stats summarizes result for the one-line summary.
func Stats(result *engine.Result) pretty.Stats {
	if result == nil {
		return pretty.Stats{}
	}
	groups := make(map[int]struct{})
	for _, n := range result.Nodes {
		if n.IsSpoiler {
			groups[n.SpoilerGroupID] = struct{}{}
		}
	}
	return pretty.Stats{
		TextLength: result.TextLength,
		Nodes:      len(result.Nodes),
		Links:      len(result.Links),
		Spoilers:   len(groups),
		Dropped:    len(result.Dropped),
	}
}

// droppedRows lists dropped annotations as table rows.
func droppedRows(result *engine.Result) []pretty.TableRow {
	rows := make([]pretty.TableRow, 0, len(result.Dropped))
	for _, d := range result.Dropped {
		detail := ""
		if d.Conflict != nil {
			detail = "conflicts with " + d.Conflict.String()
		}
		rows = append(rows, pretty.TableRow{
			Start:    d.Range.Start,
			Length:   d.Range.Length,
			Kind:     d.Range.Kind().String(),
			Text:     detail,
			Status:   string(d.Reason),
			Rejected: true,
		})
	}
	return rows
}

// TerminalWidth reports the width of writer when it is a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

func termWidth(opts Options) int {
	if opts.TermWidth > 0 {
		return opts.TermWidth
	}
	return TerminalWidth(opts.Writer)
}
