package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/spanrender/pkg/present"
)

// Painter draws render instructions as styled terminal text.
type Painter struct {
	styles *Styles
}

// NewPainter returns a Painter using styles.
func NewPainter(styles *Styles) *Painter {
	return &Painter{styles: styles}
}

// Paint draws elements one after another.
func (p *Painter) Paint(elements []present.Element) string {
	var b strings.Builder
	for _, el := range elements {
		p.paint(&b, el, lipgloss.NewStyle())
	}
	return b.String()
}

// paint draws el with style, the combination of every enclosing style.
func (p *Painter) paint(b *strings.Builder, el present.Element, style lipgloss.Style) {
	switch el.Kind {
	case present.ElementText:
		b.WriteString(renderLines(style, el.Text))
	case present.ElementBold:
		p.children(b, el, style.Inherit(p.styles.Bold))
	case present.ElementItalic:
		p.children(b, el, style.Inherit(p.styles.Italic))
	case present.ElementStrikethrough:
		p.children(b, el, style.Inherit(p.styles.Strikethrough))
	case present.ElementMonospace:
		p.children(b, el, style.Inherit(p.styles.Code))
	case present.ElementLink:
		p.children(b, el, style.Inherit(p.styles.Link))
		if el.PlainText() != el.URL {
			b.WriteString(renderLines(p.styles.Dim, " <"+el.URL+">"))
		}
	case present.ElementMention:
		b.WriteString(renderLines(style.Inherit(p.styles.Mention), el.Text))
	case present.ElementSpoiler:
		if el.Revealed {
			p.children(b, el, style.Inherit(p.styles.Revealed))
			return
		}
		b.WriteString(renderLines(style.Inherit(p.styles.Spoiler), p.mask(el.PlainText())))
	case present.ElementCodeBlock:
		p.codeBlock(b, el)
	case present.ElementGroup:
		p.children(b, el, style)
	}
}

func (p *Painter) children(b *strings.Builder, el present.Element, style lipgloss.Style) {
	for _, c := range el.Children {
		p.paint(b, c, style)
	}
}

// codeBlock draws a code block on lines of its own, headed by its
// highlighting language.
func (p *Painter) codeBlock(b *strings.Builder, el present.Element) {
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteByte('\n')
	}
	if el.Highlight != "" {
		b.WriteString(p.styles.CodeLanguage.Render(el.Highlight))
		b.WriteByte('\n')
	}
	b.WriteString(p.styles.CodeBlock.Render(el.Text))
	b.WriteByte('\n')
}

// mask hides text one mask character per grapheme cluster. Line breaks are
// kept so that the shape of the message survives.
func (p *Painter) mask(text string) string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if cluster := gr.Str(); cluster == "\n" || cluster == "\r\n" {
			b.WriteString(cluster)
			continue
		}
		b.WriteString(p.styles.SpoilerMask)
	}
	return b.String()
}

// renderLines styles each line on its own so that lipgloss does not pad
// short lines to the width of the longest.
func renderLines(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
