// Package engine runs the whole annotation pipeline for a message: link
// scanning, range normalization, tree building, collapsing, spoiler merging
// and dispatch.
package engine

import (
	"context"
	"fmt"

	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/linkify"
	"github.com/yaklabco/spanrender/pkg/present"
	"github.com/yaklabco/spanrender/pkg/rangetree"
)

// Message is the caller input for one rendering.
type Message struct {
	// Text is the full message text.
	Text string

	// DisplayLength truncates the display text to this many code points.
	// 0 uses the engine default.
	DisplayLength int

	// Formatting holds style and spoiler ranges.
	Formatting []bodyrange.Range

	// Mentions holds mention ranges.
	Mentions []bodyrange.Range
}

// Result is everything the pipeline produced for a message.
type Result struct {
	// DisplayText is the prefix of the message text that is shown.
	DisplayText string

	// TextLength is the length of DisplayText in code points.
	TextLength int

	// Links are the link ranges found by the scanner.
	Links []bodyrange.Range

	// Ranges are the normalized ranges in insertion order.
	Ranges []bodyrange.Range

	// Forest is the range tree.
	Forest rangetree.Forest

	// Nodes tile the display text.
	Nodes []display.Node

	// Elements are the render instructions for Nodes.
	Elements []present.Element

	// Dropped lists every annotation that did not reach the output.
	Dropped []Dropped
}

// Options configures an Engine. Zero fields take defaults.
type Options struct {
	// Schemes allowed for links. Defaults to linkify.DefaultSchemes.
	Schemes []string

	// Languages recognized as code block tags. Defaults to the built-in table.
	Languages []string

	// Context is the render context.
	Context present.Context

	// DisplayLength is the default truncation. 0 shows the whole text.
	DisplayLength int

	// LinkChecker and Detector override the dispatcher's collaborators.
	LinkChecker present.LinkChecker
	Detector    present.LanguageDetector
}

// Engine processes messages. It is safe for concurrent use.
type Engine struct {
	scanner       *linkify.Scanner
	dispatcher    *present.Dispatcher
	displayLength int
}

// New returns an Engine for opts.
func New(opts Options) *Engine {
	var languages *present.LanguageTable
	if len(opts.Languages) > 0 {
		languages = present.NewLanguageTable(opts.Languages...)
	}

	return &Engine{
		scanner: linkify.NewScanner(opts.Schemes...),
		dispatcher: present.NewDispatcher(present.Options{
			Context:     opts.Context,
			Languages:   languages,
			Schemes:     opts.Schemes,
			LinkChecker: opts.LinkChecker,
			Detector:    opts.Detector,
		}),
		displayLength: max(opts.DisplayLength, 0),
	}
}

// FromConfig returns an Engine configured from cfg.
func FromConfig(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	ctx, err := present.ParseContext(cfg.Context)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	return New(Options{
		Schemes:       cfg.Schemes,
		Languages:     cfg.Languages,
		Context:       ctx,
		DisplayLength: cfg.DisplayLength,
	}), nil
}

// Dispatcher returns the dispatcher used for rendering.
func (e *Engine) Dispatcher() *present.Dispatcher {
	return e.dispatcher
}

// Process runs the pipeline over msg. It never fails: annotations that cannot
// be honored are reported in Result.Dropped and logged at debug level to the
// logger carried by ctx.
func (e *Engine) Process(ctx context.Context, msg Message, reveal present.RevealState) *Result {
	logger := logging.FromContext(ctx)

	full := []rune(msg.Text)
	length := e.resolveLength(msg.DisplayLength, len(full))
	res := &Result{
		DisplayText: string(full[:length]),
		TextLength:  length,
	}

	res.Links = e.scanner.Scan(msg.Text, length)

	normalized := bodyrange.Normalize(msg.Formatting, msg.Mentions, res.Links, length)
	res.Ranges = normalized.Ranges
	for _, d := range normalized.Dropped {
		res.Dropped = append(res.Dropped, Dropped{Range: d.Range, Reason: Reason(d.Reason)})
	}

	var rejected []rangetree.Rejection
	res.Forest, rejected = rangetree.Build(res.Ranges)
	for _, rej := range rejected {
		conflict := rej.Conflict
		res.Dropped = append(res.Dropped, Dropped{Range: rej.Range, Reason: Reason(rej.Reason), Conflict: &conflict})
	}

	res.Nodes = display.GroupContiguousSpoilers(display.Collapse(res.Forest, res.DisplayText))
	res.Elements = e.dispatcher.RenderAll(res.Nodes, reveal)

	for _, d := range res.Dropped {
		logger.Debug("dropped annotation",
			logging.FieldKind, d.Range.Kind(),
			logging.FieldStart, d.Range.Start,
			logging.FieldLength, d.Range.Length,
			logging.FieldReason, d.Reason,
		)
	}
	logger.Debug("processed message",
		logging.FieldTextLength, len(full),
		logging.FieldDisplayLength, length,
		logging.FieldLinks, len(res.Links),
		logging.FieldRanges, len(res.Ranges),
		logging.FieldNodes, len(res.Nodes),
		logging.FieldDropped, len(res.Dropped),
	)

	return res
}

// Render re-renders nodes with a new reveal state.
func (e *Engine) Render(nodes []display.Node, reveal present.RevealState) []present.Element {
	return e.dispatcher.RenderAll(nodes, reveal)
}

func (e *Engine) resolveLength(requested, textLength int) int {
	length := requested
	if length <= 0 {
		length = e.displayLength
	}
	if length <= 0 || length > textLength {
		return textLength
	}
	return length
}
