package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/spanrender/internal/ui/pretty"
	"github.com/yaklabco/spanrender/pkg/engine"
)

// TextReporter paints render instructions as styled terminal output.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	painter   *pretty.Painter
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &TextReporter{
		opts:      opts,
		styles:    styles,
		painter:   pretty.NewPainter(styles),
		formatter: pretty.NewTableFormatter(styles, termWidth(opts)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *engine.Result) (err error) {
	defer flush(r.bw, &err)

	if result == nil {
		return nil
	}

	out := r.painter.Paint(result.Elements)
	fmt.Fprint(r.bw, out)
	if out == "" || out[len(out)-1] != '\n' {
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowDropped && len(result.Dropped) > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.formatter.FormatTable(droppedRows(result)))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(Stats(result)))
	}

	return nil
}
