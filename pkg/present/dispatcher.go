package present

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/langdetect"
	"github.com/yaklabco/spanrender/pkg/linkcheck"
	"github.com/yaklabco/spanrender/pkg/linkify"
)

// Context is where rendered text will be shown.
type Context string

// Render contexts. Only the timeline shows code blocks; elsewhere monospace
// text always stays inline.
const (
	ContextTimeline Context = "timeline"
	ContextPreview  Context = "preview"
	ContextSearch   Context = "search"
)

// ParseContext parses a context name.
func ParseContext(name string) (Context, error) {
	switch c := Context(strings.ToLower(strings.TrimSpace(name))); c {
	case ContextTimeline, ContextPreview, ContextSearch:
		return c, nil
	case "":
		return ContextTimeline, nil
	default:
		return "", fmt.Errorf("unknown render context %q; valid contexts: timeline, preview, search", name)
	}
}

// LinkChecker decides whether a URL is deceptive.
type LinkChecker interface {
	IsSneaky(url string) bool
}

// LanguageDetector guesses the language of untagged code.
type LanguageDetector interface {
	Detect(code string) string
}

// Options configures a Dispatcher. Zero fields take defaults.
type Options struct {
	// Context defaults to ContextTimeline.
	Context Context

	// Languages recognized as code block tags. Defaults to DefaultLanguages.
	Languages *LanguageTable

	// Schemes allowed for links. Defaults to linkify.DefaultSchemes.
	Schemes []string

	// LinkChecker defaults to linkcheck.Checker.
	LinkChecker LinkChecker

	// Detector defaults to langdetect.New().
	Detector LanguageDetector
}

// Dispatcher maps display nodes to render instructions.
type Dispatcher struct {
	context   Context
	languages *LanguageTable
	schemes   *linkify.Scanner
	checker   LinkChecker
	detector  LanguageDetector
}

// NewDispatcher returns a Dispatcher for opts.
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		context:   opts.Context,
		languages: opts.Languages,
		schemes:   linkify.NewScanner(opts.Schemes...),
		checker:   opts.LinkChecker,
		detector:  opts.Detector,
	}
	if d.context == "" {
		d.context = ContextTimeline
	}
	if d.languages == nil {
		d.languages = NewLanguageTable(defaultLanguages...)
	}
	if d.checker == nil {
		d.checker = linkcheck.Checker{}
	}
	if d.detector == nil {
		d.detector = langdetect.New()
	}
	return d
}

// Context returns the render context of the dispatcher.
func (d *Dispatcher) Context() Context {
	return d.context
}

// RenderAll renders each node in order.
func (d *Dispatcher) RenderAll(nodes []display.Node, reveal RevealState) []Element {
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.Render(n, reveal))
	}
	return out
}

// Render returns the render instruction for a single node.
//
// Styles nest with monospace innermost, then strikethrough, italic and bold;
// a link wraps all of them. A node is a link only if its URL uses an allowed scheme
// and is not deceptive. Spoilers are masked unless their group is revealed.
func (d *Dispatcher) Render(node display.Node, reveal RevealState) Element {
	if node.IsSpoiler {
		return d.spoiler(node, reveal)
	}

	if d.isCodeBlock(node) {
		return d.codeBlock(node.Text)
	}

	els := d.content(node)
	if node.IsMonospace {
		els = []Element{{Kind: ElementMonospace, Children: els}}
	}
	if node.IsStrikethrough {
		els = []Element{{Kind: ElementStrikethrough, Children: els}}
	}
	if node.IsItalic {
		els = []Element{{Kind: ElementItalic, Children: els}}
	}
	if node.IsBold {
		els = []Element{{Kind: ElementBold, Children: els}}
	}
	if d.isLink(node.URL) {
		els = []Element{{Kind: ElementLink, URL: node.URL, Children: els}}
	}

	if len(els) == 1 {
		return els[0]
	}
	return Element{Kind: ElementGroup, Children: els}
}

func (d *Dispatcher) spoiler(node display.Node, reveal RevealState) Element {
	children := make([]Element, 0, len(node.SpoilerChildren))
	for _, c := range node.SpoilerChildren {
		children = append(children, d.Render(c, reveal))
	}
	if len(children) == 0 {
		children = append(children, Element{Kind: ElementText, Text: node.Text})
	}

	return Element{
		Kind:           ElementSpoiler,
		SpoilerGroupID: node.SpoilerGroupID,
		Revealed:       reveal.IsRevealed(node.SpoilerGroupID),
		Children:       children,
	}
}

func (d *Dispatcher) isCodeBlock(node display.Node) bool {
	return node.IsMonospace &&
		d.context == ContextTimeline &&
		len(node.Mentions) == 0 &&
		strings.Contains(strings.TrimRight(node.Text, "\n"), "\n")
}

// codeBlock consumes a known language tag on the first line. Without one the
// whole text is code and the highlighting language is detected.
func (d *Dispatcher) codeBlock(text string) Element {
	first, rest, _ := strings.Cut(text, "\n")
	if tag, ok := d.languages.Lookup(first); ok {
		return Element{Kind: ElementCodeBlock, Text: rest, Language: tag, Highlight: tag}
	}
	return Element{Kind: ElementCodeBlock, Text: text, Highlight: d.detector.Detect(text)}
}

func (d *Dispatcher) isLink(url string) bool {
	return url != "" && d.schemes.Allowed(url) && !d.checker.IsSneaky(url)
}

// content splits node text around its mentions.
func (d *Dispatcher) content(node display.Node) []Element {
	if len(node.Mentions) == 0 {
		return []Element{{Kind: ElementText, Text: node.Text}}
	}

	mentions := slices.Clone(node.Mentions)
	slices.SortFunc(mentions, func(a, b display.MentionRef) int { return a.Start - b.Start })

	runes := []rune(node.Text)
	var out []Element
	cursor := 0
	for _, m := range mentions {
		start := min(max(m.Start, cursor), len(runes))
		end := min(m.Start+m.Length, len(runes))
		if start >= end {
			continue
		}
		if cursor < start {
			out = append(out, Element{Kind: ElementText, Text: string(runes[cursor:start])})
		}
		out = append(out, mentionElement(m, string(runes[start:end])))
		cursor = end
	}
	if cursor < len(runes) {
		out = append(out, Element{Kind: ElementText, Text: string(runes[cursor:])})
	}
	return out
}

func mentionElement(m display.MentionRef, original string) Element {
	text := original
	if m.DisplayName != "" {
		text = "@" + m.DisplayName
	}
	return Element{Kind: ElementMention, TargetID: m.TargetID, Text: text}
}
