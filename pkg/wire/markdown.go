package wire

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/engine"
)

// markdown parses chat-flavoured Markdown: CommonMark plus ~~strike~~ and
// ||spoiler||.
//
//nolint:gochecknoglobals // goldmark instances are safe for concurrent use.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, Spoilers))

// DecodeMarkdown converts Markdown-styled text into plain text plus
// formatting ranges. Emphasis becomes italic, strong emphasis and headings
// become bold, code spans and code blocks become monospace. A fenced block's
// info string is kept as the first line of its monospace span so that the
// dispatcher can read it as a language tag.
func DecodeMarkdown(source []byte) engine.Message {
	doc := markdown.Parser().Parse(text.NewReader(source))

	d := &mdDecoder{source: source}
	d.blocks(doc)

	return engine.Message{Text: d.text.String(), Formatting: d.ranges}
}

type mdDecoder struct {
	source []byte
	text   strings.Builder
	pos    int
	last   rune
	ranges []bodyrange.Range

	// marker is set right after a list item marker.
	marker bool
}

func (d *mdDecoder) write(s string) {
	if s == "" {
		return
	}
	d.text.WriteString(s)
	d.pos += utf8.RuneCountInString(s)
	d.last, _ = utf8.DecodeLastRuneInString(s)
}

// newline starts a new line unless the output is empty or already at one.
func (d *mdDecoder) newline() {
	if d.marker {
		d.marker = false
		return
	}
	if d.pos > 0 && d.last != '\n' {
		d.write("\n")
	}
}

func (d *mdDecoder) mark(start int, f bodyrange.Format) {
	if d.pos > start {
		d.ranges = append(d.ranges, bodyrange.Range{Start: start, Length: d.pos - start, Value: f})
	}
}

func (d *mdDecoder) blocks(parent gast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		d.block(n)
	}
}

func (d *mdDecoder) block(n gast.Node) {
	d.newline()

	switch n := n.(type) {
	case *gast.Heading:
		start := d.pos
		d.inlines(n)
		d.mark(start, bodyrange.Bold)

	case *gast.List:
		index := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			d.newline()
			if n.IsOrdered() {
				d.write(strconv.Itoa(index) + ". ")
				index++
			} else {
				d.write("- ")
			}
			d.marker = true
			d.blocks(item)
			d.marker = false
		}

	case *gast.FencedCodeBlock:
		start := d.pos
		if lang := n.Language(d.source); len(lang) > 0 {
			d.write(string(lang) + "\n")
		}
		d.write(d.lines(n))
		d.mark(start, bodyrange.Monospace)

	case *gast.CodeBlock:
		start := d.pos
		d.write(d.lines(n))
		d.mark(start, bodyrange.Monospace)

	case *gast.HTMLBlock:
		d.write(d.lines(n))

	case *gast.ThematicBreak:
		d.write("---")

	case *gast.Paragraph, *gast.TextBlock:
		d.inlines(n)

	default:
		if n.Type() == gast.TypeInline {
			d.inline(n)
			return
		}
		d.blocks(n)
	}
}

// lines returns the raw lines of a block without the final line break.
func (d *mdDecoder) lines(n gast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		b.Write(seg.Value(d.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (d *mdDecoder) inlines(parent gast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		d.inline(n)
	}
}

func (d *mdDecoder) inline(n gast.Node) {
	start := d.pos

	switch n := n.(type) {
	case *gast.Text:
		value := n.Segment.Value(d.source)
		if !n.IsRaw() {
			value = util.UnescapePunctuations(util.ResolveEntityNames(util.ResolveNumericReferences(value)))
		}
		d.write(string(value))
		if n.SoftLineBreak() || n.HardLineBreak() {
			d.write("\n")
		}

	case *gast.String:
		d.write(string(n.Value))

	case *gast.Emphasis:
		d.inlines(n)
		if n.Level >= 2 {
			d.mark(start, bodyrange.Bold)
		} else {
			d.mark(start, bodyrange.Italic)
		}

	case *east.Strikethrough:
		d.inlines(n)
		d.mark(start, bodyrange.Strikethrough)

	case *SpoilerNode:
		d.inlines(n)
		d.mark(start, bodyrange.SpoilerFormat)

	case *gast.CodeSpan:
		d.inlines(n)
		d.mark(start, bodyrange.Monospace)

	case *gast.AutoLink:
		d.write(string(n.URL(d.source)))

	case *gast.RawHTML:
		for i := range n.Segments.Len() {
			seg := n.Segments.At(i)
			d.write(string(seg.Value(d.source)))
		}

	default:
		// Links and images keep only their visible text.
		d.inlines(n)
	}
}
