package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/present"
)

// HTMLReporter renders render instructions as an HTML fragment.
//
// Spoilers are emitted with their text and a "spoiler" class; hiding them is
// left to the stylesheet of the page.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, result *engine.Result) (err error) {
	defer flush(r.bw, &err)

	root := element(atom.Div, attr("class", "message"))
	if result != nil {
		appendElements(root, result.Elements)
	}

	if err := html.Render(r.bw, root); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	if !r.opts.Compact {
		return r.bw.WriteByte('\n')
	}
	return nil
}

// RenderHTML renders elements as an HTML fragment without a wrapper.
func RenderHTML(elements []present.Element) (string, error) {
	var b strings.Builder
	root := element(atom.Div)
	appendElements(root, elements)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("render HTML: %w", err)
		}
	}
	return b.String(), nil
}

func appendElements(parent *html.Node, elements []present.Element) {
	for _, el := range elements {
		appendElement(parent, el)
	}
}

func appendElement(parent *html.Node, el present.Element) {
	switch el.Kind {
	case present.ElementText:
		appendText(parent, el.Text)
	case present.ElementBold:
		appendChildren(parent, element(atom.Strong), el)
	case present.ElementItalic:
		appendChildren(parent, element(atom.Em), el)
	case present.ElementStrikethrough:
		appendChildren(parent, element(atom.S), el)
	case present.ElementMonospace:
		appendChildren(parent, element(atom.Code), el)
	case present.ElementLink:
		appendChildren(parent, element(atom.A, attr("href", el.URL), attr("rel", "noopener noreferrer")), el)
	case present.ElementMention:
		span := element(atom.Span, attr("class", "mention"), attr("data-target", el.TargetID))
		appendText(span, el.Text)
		parent.AppendChild(span)
	case present.ElementSpoiler:
		class := "spoiler"
		if el.Revealed {
			class += " revealed"
		}
		appendChildren(parent, element(atom.Span,
			attr("class", class),
			attr("data-spoiler-group", strconv.Itoa(el.SpoilerGroupID)),
		), el)
	case present.ElementCodeBlock:
		code := element(atom.Code)
		if el.Highlight != "" {
			code.Attr = append(code.Attr, attr("class", "language-"+el.Highlight))
		}
		code.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
		pre := element(atom.Pre)
		pre.AppendChild(code)
		parent.AppendChild(pre)
	case present.ElementGroup:
		appendElements(parent, el.Children)
	}
}

func appendChildren(parent, n *html.Node, el present.Element) {
	appendElements(n, el.Children)
	parent.AppendChild(n)
}

// appendText adds text to parent, turning line breaks into <br> elements.
func appendText(parent *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			parent.AppendChild(element(atom.Br))
		}
		if line != "" {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
