// Package bodyrange models annotation ranges over message text.
//
// Offsets are measured in Unicode code points of the message text. A range
// covers [Start, Start+Length). The annotation carried by a range is a closed
// set of variants implementing Value: Format, Spoiler, Mention and Link.
package bodyrange

import "fmt"

// Kind classifies the annotation carried by a Range.
type Kind uint8

// Annotation kinds.
const (
	KindUnknown Kind = iota
	KindBold
	KindItalic
	KindStrikethrough
	KindMonospace
	KindSpoiler
	KindMention
	KindLink
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindStrikethrough:
		return "strikethrough"
	case KindMonospace:
		return "monospace"
	case KindSpoiler:
		return "spoiler"
	case KindMention:
		return "mention"
	case KindLink:
		return "link"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsStyle reports whether the kind is a pure text style.
func (k Kind) IsStyle() bool {
	switch k {
	case KindBold, KindItalic, KindStrikethrough, KindMonospace:
		return true
	case KindUnknown, KindSpoiler, KindMention, KindLink:
		return false
	default:
		return false
	}
}

// ParseKind maps a kind name to a Kind. Unrecognized names yield KindUnknown.
func ParseKind(name string) Kind {
	for k := KindBold; k <= KindLink; k++ {
		if k.String() == name {
			return k
		}
	}
	return KindUnknown
}

// Value is the payload of a Range. The set of implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

// Format is a caller-supplied formatting annotation: one of the text styles
// or a spoiler mask. Spoiler formats are turned into Spoiler values with an
// assigned group id during normalization.
type Format Kind

// Formatting values.
const (
	Bold          = Format(KindBold)
	Italic        = Format(KindItalic)
	Strikethrough = Format(KindStrikethrough)
	Monospace     = Format(KindMonospace)
	SpoilerFormat = Format(KindSpoiler)
)

// Kind implements Value.
func (f Format) Kind() Kind {
	k := Kind(f)
	if k.IsStyle() || k == KindSpoiler {
		return k
	}
	return KindUnknown
}

func (Format) isValue() {}

// Spoiler masks its span until revealed. GroupID is assigned by Normalize.
type Spoiler struct {
	GroupID int
}

// Kind implements Value.
func (Spoiler) Kind() Kind { return KindSpoiler }

func (Spoiler) isValue() {}

// Mention refers to a user. Mentions are always leaves.
type Mention struct {
	TargetID    string
	DisplayName string
}

// Kind implements Value.
func (Mention) Kind() Kind { return KindMention }

func (Mention) isValue() {}

// Link is a detected hyperlink. URL is the matched text.
type Link struct {
	URL string
}

// Kind implements Value.
func (Link) Kind() Kind { return KindLink }

func (Link) isValue() {}

// Range is an annotation over a span of text.
type Range struct {
	Start  int
	Length int
	Value  Value
}

// End returns the exclusive end offset of the range.
func (r Range) End() int {
	return r.Start + r.Length
}

// Kind returns the kind of the range's value, or KindUnknown if it has none.
func (r Range) Kind() Kind {
	if r.Value == nil {
		return KindUnknown
	}
	return r.Value.Kind()
}

// Contains reports whether other lies entirely within r. Equal spans contain
// each other.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End() <= r.End()
}

// Overlaps reports whether r and other share at least one offset.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End() && other.Start < r.End()
}

// Crosses reports whether r and other partially intersect with neither
// containing the other.
func (r Range) Crosses(other Range) bool {
	return r.Overlaps(other) && !r.Contains(other) && !other.Contains(r)
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d:%s", r.Start, r.Length, r.Kind())
}
