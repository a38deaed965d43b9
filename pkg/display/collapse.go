package display

import (
	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/rangetree"
)

// inherited is the annotation state passed from a node to its descendants.
type inherited struct {
	flags     Flags
	url       string
	inSpoiler bool
}

type collapser struct {
	runes []rune
}

// Collapse walks the forest over text and returns the display nodes covering
// every code point of text exactly once.
//
// Uncovered text becomes plain nodes. Styles and link targets apply to every
// node emitted beneath the range that set them. A spoiler becomes a single
// node whose SpoilerChildren tile its span; a spoiler nested in another
// spoiler adds no extra group. A mention becomes a leaf node with one
// MentionRef. Ranges running past the end of text are clipped.
func Collapse(forest rangetree.Forest, text string) []Node {
	c := &collapser{runes: []rune(text)}
	if len(c.runes) == 0 {
		return []Node{{}}
	}
	return c.collapse(forest, 0, len(c.runes), inherited{})
}

func (c *collapser) collapse(nodes []*rangetree.Node, start, end int, parent inherited) []Node {
	var out []Node
	cursor := start

	for _, n := range nodes {
		nodeStart := max(n.Range.Start, cursor)
		nodeEnd := min(n.Range.End(), end)
		if nodeStart >= nodeEnd {
			continue
		}

		if cursor < nodeStart {
			out = append(out, c.leaf(cursor, nodeStart, parent))
		}
		out = append(out, c.node(n, nodeStart, nodeEnd, parent)...)
		cursor = nodeEnd
	}

	if cursor < end {
		out = append(out, c.leaf(cursor, end, parent))
	}
	return out
}

func (c *collapser) node(n *rangetree.Node, start, end int, parent inherited) []Node {
	state := parent

	switch v := n.Range.Value.(type) {
	case bodyrange.Format:
		if v.Kind() == bodyrange.KindSpoiler && !parent.inSpoiler {
			return []Node{c.spoiler(n, 0, start, end, parent)}
		}
		state.flags = withStyle(state.flags, v.Kind())
	case bodyrange.Link:
		state.url = v.URL
	case bodyrange.Mention:
		leaf := c.leaf(start, end, state)
		leaf.Mentions = []MentionRef{{
			Start:       0,
			Length:      end - start,
			TargetID:    v.TargetID,
			DisplayName: v.DisplayName,
		}}
		return []Node{leaf}
	case bodyrange.Spoiler:
		if !parent.inSpoiler {
			return []Node{c.spoiler(n, v.GroupID, start, end, parent)}
		}
	}

	if len(n.Children) == 0 {
		return []Node{c.leaf(start, end, state)}
	}
	return c.collapse(n.Children, start, end, state)
}

func (c *collapser) spoiler(n *rangetree.Node, group, start, end int, parent inherited) Node {
	spoiler := c.leaf(start, end, parent)
	spoiler.URL = ""
	spoiler.IsSpoiler = true
	spoiler.SpoilerGroupID = group

	state := parent
	state.inSpoiler = true
	spoiler.SpoilerChildren = c.collapse(n.Children, start, end, state)
	return spoiler
}

func (c *collapser) leaf(start, end int, state inherited) Node {
	return Node{
		Start:  start,
		Length: end - start,
		Text:   string(c.runes[start:end]),
		Flags:  state.flags,
		URL:    state.url,
	}
}

func withStyle(f Flags, kind bodyrange.Kind) Flags {
	switch kind {
	case bodyrange.KindBold:
		f.IsBold = true
	case bodyrange.KindItalic:
		f.IsItalic = true
	case bodyrange.KindStrikethrough:
		f.IsStrikethrough = true
	case bodyrange.KindMonospace:
		f.IsMonospace = true
	case bodyrange.KindUnknown, bodyrange.KindSpoiler, bodyrange.KindMention, bodyrange.KindLink:
	}
	return f
}
