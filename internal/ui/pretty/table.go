package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // SPAN, KIND, TEXT, STATUS
	minSpanWidth     = 6
	minKindWidth     = 4
	minTextWidth     = 20
	minStatusWidth   = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one annotation in an annotation table.
type TableRow struct {
	Start  int
	Length int
	Kind   string
	Text   string
	Status string

	// Rejected marks annotations missing from the output.
	Rejected bool
}

// TableFormatter formats annotations as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	span, kind, text, status int
}

// FormatTable formats rows with a header. An empty row set yields "".
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		span:   minSpanWidth,
		kind:   minKindWidth,
		status: minStatusWidth,
	}
	textWidth := 0
	for _, row := range rows {
		widths.span = max(widths.span, len(spanLabel(row)))
		widths.kind = max(widths.kind, len(row.Kind))
		widths.status = max(widths.status, len(row.Status))
		textWidth = max(textWidth, lipgloss.Width(row.Text))
	}

	available := t.termWidth - widths.span - widths.kind - widths.status - tableColumnCount*tablePadding
	widths.text = max(min(textWidth, available), minTextWidth)
	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.span, "SPAN",
		widths.kind, "KIND",
		widths.text, "TEXT",
		widths.status, "STATUS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	total := widths.span + widths.kind + widths.text + widths.status + tableColumnCount*tablePadding - 1
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	text := truncateString(strings.ReplaceAll(row.Text, "\n", "⏎"), widths.text)
	content := fmt.Sprintf(" %-*s  %-*s  %s  %-*s",
		widths.span, spanLabel(row),
		widths.kind, row.Kind,
		text+strings.Repeat(" ", max(widths.text-lipgloss.Width(text), 0)),
		widths.status, row.Status,
	)
	if row.Rejected {
		return t.styles.TableRejected.Render(content)
	}
	return content
}

func spanLabel(row TableRow) string {
	return fmt.Sprintf("%d:%d", row.Start, row.Length)
}

// truncateString truncates a string to maxLen cells, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if lipgloss.Width(str) <= maxLen {
		return str
	}
	runes := []rune(str)
	if maxLen <= 3 {
		return string(runes[:min(maxLen, len(runes))])
	}
	for lipgloss.Width(string(runes)) > maxLen-3 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
