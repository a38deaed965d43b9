package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go4.org/bytereplacer"

	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/engine"
)

// controlEscaper makes invisible characters visible in node dumps.
var controlEscaper = bytereplacer.New(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u00a0", `\u00a0`,
	"\u200b", `\u200b`,
	"\u200d", `\u200d`,
	"\ufffc", `\ufffc`,
)

// EscapeControl returns s with line breaks, tabs and invisible characters
// spelled out.
func EscapeControl(s string) string {
	return string(controlEscaper.Replace([]byte(s)))
}

// NodesReporter dumps the display nodes and dropped annotations as tables.
type NodesReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewNodesReporter creates a new nodes reporter.
func NewNodesReporter(opts Options) *NodesReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &NodesReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, termWidth(opts)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *NodesReporter) Report(_ context.Context, result *engine.Result) (err error) {
	defer flush(r.bw, &err)

	if result == nil {
		return nil
	}

	fmt.Fprintln(r.bw, r.styles.Title.Render("Nodes"))
	fmt.Fprint(r.bw, r.formatter.FormatTable(nodeRows(result.Nodes, 0)))

	if len(result.Dropped) > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Title.Render("Dropped"))
		fmt.Fprint(r.bw, r.formatter.FormatTable(droppedRows(result)))
	}

	fmt.Fprintln(r.bw)
	fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(Stats(result)))
	return nil
}

// nodeRows lists nodes, with spoiler children indented under their parent.
func nodeRows(nodes []display.Node, depth int) []pretty.TableRow {
	var rows []pretty.TableRow
	for _, n := range nodes {
		rows = append(rows, pretty.TableRow{
			Start:  n.Start,
			Length: n.Length,
			Kind:   strings.Repeat("  ", depth) + describeNode(n),
			Text:   EscapeControl(n.Text),
			Status: n.URL,
		})
		rows = append(rows, nodeRows(n.SpoilerChildren, depth+1)...)
	}
	return rows
}

// describeNode names the annotations on n, joined with "+".
func describeNode(n display.Node) string {
	var parts []string
	if n.IsSpoiler {
		parts = append(parts, "spoiler#"+strconv.Itoa(n.SpoilerGroupID))
	}
	if n.IsBold {
		parts = append(parts, "bold")
	}
	if n.IsItalic {
		parts = append(parts, "italic")
	}
	if n.IsStrikethrough {
		parts = append(parts, "strike")
	}
	if n.IsMonospace {
		parts = append(parts, "mono")
	}
	if n.URL != "" {
		parts = append(parts, "link")
	}
	if len(n.Mentions) > 0 {
		parts = append(parts, "mention")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, "+")
}
