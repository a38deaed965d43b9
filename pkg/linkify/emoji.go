package linkify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// placeholder replaces every code point of an emoji cluster. A space keeps
// the emoji from joining a neighbouring URL.
const placeholder = ' '

//nolint:gochecknoglobals // Read-only lookup table.
var emojiTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x20e3, Hi: 0x20e3, Stride: 1}, // combining keycap
		{Lo: 0x2300, Hi: 0x23ff, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1},
		{Lo: 0x3030, Hi: 0x3030, Stride: 1},
		{Lo: 0x303d, Hi: 0x303d, Stride: 1},
		{Lo: 0x3297, Hi: 0x3299, Stride: 2},
		{Lo: 0xfe0f, Hi: 0xfe0f, Stride: 1}, // emoji presentation selector
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1},
		{Lo: 0xe0020, Hi: 0xe007f, Stride: 1}, // tag sequences
	},
}

// span is a half-open range of code point offsets.
type span struct {
	start, end int
}

// masked is the scanner's view of the source text.
type masked struct {
	// text has every emoji cluster replaced by placeholders. It is valid
	// UTF-8 and has the same number of code points as the source.
	text string

	// unsafe lists words that held invalid UTF-8.
	unsafe []span
}

// mask replaces emoji grapheme clusters with one placeholder per code point so
// code point offsets in the result match the source.
func mask(source string) masked {
	var (
		out    masked
		b      strings.Builder
		offset int
	)
	b.Grow(len(source))

	graphemes := uniseg.NewGraphemes(source)
	for graphemes.Next() {
		cluster := graphemes.Str()
		width := len(graphemes.Runes())

		switch {
		case !utf8.ValidString(cluster):
			out.unsafe = append(out.unsafe, span{start: offset, end: offset + width})
			b.WriteString(strings.Repeat(string(placeholder), width))
		case isEmoji(cluster):
			b.WriteString(strings.Repeat(string(placeholder), width))
		default:
			b.WriteString(cluster)
		}
		offset += width
	}

	out.text = b.String()
	out.widen()
	return out
}

// widen stretches each unsafe span to the whitespace-delimited word around it.
func (m *masked) widen() {
	if len(m.unsafe) == 0 {
		return
	}
	runes := []rune(m.text)
	for i, s := range m.unsafe {
		for s.start > 0 && !unicode.IsSpace(runes[s.start-1]) {
			s.start--
		}
		for s.end < len(runes) && !unicode.IsSpace(runes[s.end]) {
			s.end++
		}
		m.unsafe[i] = s
	}
}

// isEmoji reports whether cluster holds a pictograph or an emoji presentation
// selector. A zero width joiner alone does not count.
func isEmoji(cluster string) bool {
	for _, r := range cluster {
		if unicode.Is(emojiTable, r) {
			return true
		}
	}
	return false
}

func (m masked) isUnsafe(start, end int) bool {
	for _, s := range m.unsafe {
		if s.start < end && start < s.end {
			return true
		}
	}
	return false
}
