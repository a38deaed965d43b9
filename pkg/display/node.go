// Package display flattens a range forest into display nodes.
//
// The nodes produced for a text tile [0, textLength) exactly: they are
// contiguous, never overlap and are never empty unless the text itself is.
package display

// Flags are the text styles in effect for a node, including those inherited
// from enclosing ranges.
type Flags struct {
	IsBold          bool `json:"isBold,omitempty"`
	IsItalic        bool `json:"isItalic,omitempty"`
	IsStrikethrough bool `json:"isStrikethrough,omitempty"`
	IsMonospace     bool `json:"isMonospace,omitempty"`
}

// Any reports whether any style is set.
func (f Flags) Any() bool {
	return f.IsBold || f.IsItalic || f.IsStrikethrough || f.IsMonospace
}

// MentionRef is a mention positioned relative to the text of its node.
type MentionRef struct {
	Start       int    `json:"start"`
	Length      int    `json:"length"`
	TargetID    string `json:"targetId"`
	DisplayName string `json:"displayName,omitempty"`
}

// Node is a flattened unit of text with resolved annotations.
type Node struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Text   string `json:"text"`

	Flags

	IsSpoiler bool `json:"isSpoiler,omitempty"`

	// SpoilerGroupID identifies the spoiler group; zero means none.
	SpoilerGroupID int `json:"spoilerGroupId,omitempty"`

	// SpoilerChildren tile the span of a spoiler node.
	SpoilerChildren []Node `json:"spoilerChildren,omitempty"`

	Mentions []MentionRef `json:"mentions,omitempty"`
	URL      string       `json:"url,omitempty"`
}

// End returns the exclusive end offset of the node.
func (n Node) End() int {
	return n.Start + n.Length
}

// IsPlain reports whether the node carries no annotation at all.
func (n Node) IsPlain() bool {
	return !n.Flags.Any() && !n.IsSpoiler && len(n.Mentions) == 0 && n.URL == ""
}
