package display

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrEmptyNode is reported for a zero-length node in non-empty text.
var ErrEmptyNode = errors.New("empty node")

// CheckTiling verifies that nodes cover [0, textLength) contiguously and that
// every spoiler's children tile the spoiler's own span.
func CheckTiling(nodes []Node, textLength int) error {
	if textLength == 0 {
		for _, n := range nodes {
			if n.Length != 0 {
				return fmt.Errorf("node at %d has length %d in empty text", n.Start, n.Length)
			}
		}
		return nil
	}
	return checkSpan(nodes, 0, textLength)
}

func checkSpan(nodes []Node, start, end int) error {
	cursor := start
	for i, n := range nodes {
		if n.Length <= 0 {
			return fmt.Errorf("node %d at %d: %w", i, n.Start, ErrEmptyNode)
		}
		if n.Start != cursor {
			return fmt.Errorf("node %d starts at %d, want %d", i, n.Start, cursor)
		}
		if got := utf8.RuneCountInString(n.Text); got != n.Length {
			return fmt.Errorf("node %d text has %d code points, length is %d", i, got, n.Length)
		}
		if n.IsSpoiler {
			if err := checkSpan(n.SpoilerChildren, n.Start, n.End()); err != nil {
				return fmt.Errorf("spoiler %d: %w", n.SpoilerGroupID, err)
			}
		} else if len(n.SpoilerChildren) > 0 {
			return fmt.Errorf("node %d is not a spoiler but has spoiler children", i)
		}
		cursor = n.End()
	}
	if cursor != end {
		return fmt.Errorf("nodes end at %d, want %d", cursor, end)
	}
	return nil
}
