package wire

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindSpoiler is the goldmark node kind of a ||spoiler|| span.
//
//nolint:gochecknoglobals // Node kinds are registered once.
var KindSpoiler = gast.NewNodeKind("Spoiler")

// SpoilerNode is an inline span delimited by double pipes.
type SpoilerNode struct {
	gast.BaseInline
}

// Dump implements ast.Node.
func (n *SpoilerNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

// Kind implements ast.Node.
func (n *SpoilerNode) Kind() gast.NodeKind {
	return KindSpoiler
}

type spoilerDelimiterProcessor struct{}

func (p *spoilerDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '|'
}

func (p *spoilerDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *spoilerDelimiterProcessor) OnMatch(_ int) gast.Node {
	return &SpoilerNode{}
}

type spoilerParser struct {
	delimiters *spoilerDelimiterProcessor
}

func (s *spoilerParser) Trigger() []byte {
	return []byte{'|'}
}

// Parse accepts exactly two pipes. A single pipe stays text.
func (s *spoilerParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, s.delimiters)
	if node == nil || node.OriginalLength != 2 || before == '|' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type spoilerExtension struct{}

// Spoilers is a goldmark extension parsing ||text|| as a SpoilerNode.
//
//nolint:gochecknoglobals // Extensions are stateless values.
var Spoilers goldmark.Extender = &spoilerExtension{}

func (e *spoilerExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&spoilerParser{delimiters: &spoilerDelimiterProcessor{}}, 500),
	))
}
