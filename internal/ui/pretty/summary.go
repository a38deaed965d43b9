package pretty

import (
	"fmt"
	"strings"
)

// Stats counts what the pipeline produced for one message.
type Stats struct {
	TextLength int
	Nodes      int
	Links      int
	Spoilers   int
	Dropped    int
}

// FormatSummaryOneLine formats render statistics as a single line.
// Example: "42 characters in 5 nodes, 1 link, 2 spoilers, 1 dropped".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	parts := []string{
		fmt.Sprintf("%d %s in %d %s",
			stats.TextLength, plural(stats.TextLength, "character", "characters"),
			stats.Nodes, plural(stats.Nodes, "node", "nodes")),
	}

	if stats.Links > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", stats.Links, plural(stats.Links, "link", "links")))
	}
	if stats.Spoilers > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", stats.Spoilers, plural(stats.Spoilers, "spoiler", "spoilers")))
	}
	if stats.Dropped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d dropped", stats.Dropped)))
	} else {
		parts = append(parts, s.Success.Render("nothing dropped"))
	}

	return s.Dim.Render(strings.Join(parts[:len(parts)-1], ", ")+", ") + parts[len(parts)-1] + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
