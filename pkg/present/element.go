// Package present turns display nodes into render instructions.
//
// The Dispatcher is a pure function of a display node, the reveal state of
// spoilers and its own construction-time options. Painting the resulting
// Element trees is left to the caller.
package present

import "strings"

// ElementKind classifies a render instruction.
type ElementKind uint8

// Element kinds.
const (
	ElementText ElementKind = iota
	ElementBold
	ElementItalic
	ElementStrikethrough
	ElementMonospace
	ElementLink
	ElementMention
	ElementSpoiler
	ElementCodeBlock
	ElementGroup
)

// String returns the lower-case name of the kind.
func (k ElementKind) String() string {
	switch k {
	case ElementText:
		return "text"
	case ElementBold:
		return "bold"
	case ElementItalic:
		return "italic"
	case ElementStrikethrough:
		return "strikethrough"
	case ElementMonospace:
		return "monospace"
	case ElementLink:
		return "link"
	case ElementMention:
		return "mention"
	case ElementSpoiler:
		return "spoiler"
	case ElementCodeBlock:
		return "code-block"
	case ElementGroup:
		return "group"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ElementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Element is a single render instruction. Which fields are meaningful depends
// on Kind:
//
//   - Text: Text.
//   - Group: Children, shown one after another.
//   - Bold, Italic, Strikethrough, Monospace: Children.
//   - Link: URL and Children.
//   - Mention: TargetID and Text (the name to show, prefixed with "@").
//   - Spoiler: SpoilerGroupID, Revealed and Children.
//   - CodeBlock: Text (the body), Language (declared tag, may be empty) and
//     Highlight (the language to highlight with).
type Element struct {
	Kind           ElementKind `json:"kind"`
	Text           string      `json:"text,omitempty"`
	URL            string      `json:"url,omitempty"`
	TargetID       string      `json:"targetId,omitempty"`
	Language       string      `json:"language,omitempty"`
	Highlight      string      `json:"highlight,omitempty"`
	SpoilerGroupID int         `json:"spoilerGroupId,omitempty"`
	Revealed       bool        `json:"revealed,omitempty"`
	Children       []Element   `json:"children,omitempty"`
}

// PlainText returns the text an element shows once fully revealed.
func (e Element) PlainText() string {
	switch e.Kind {
	case ElementText, ElementMention, ElementCodeBlock:
		return e.Text
	case ElementBold, ElementItalic, ElementStrikethrough, ElementMonospace,
		ElementLink, ElementSpoiler, ElementGroup:
		var b strings.Builder
		for _, c := range e.Children {
			b.WriteString(c.PlainText())
		}
		return b.String()
	default:
		return ""
	}
}
