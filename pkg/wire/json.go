// Package wire decodes stored message bodies into engine input.
//
// Two encodings are understood: a JSON envelope carrying the body text with
// its ranges, and Markdown-styled text whose emphasis becomes formatting
// ranges.
package wire

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/engine"
)

// Decoding errors.
var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNoText      = errors.New("message has no body text")
)

// styleNames maps envelope style names to formatting values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var styleNames = map[string]bodyrange.Format{
	"bold":          bodyrange.Bold,
	"italic":        bodyrange.Italic,
	"strikethrough": bodyrange.Strikethrough,
	"monospace":     bodyrange.Monospace,
	"spoiler":       bodyrange.SpoilerFormat,
}

// DecodeJSON decodes a message envelope:
//
//	{
//	  "body": "hi @ann",
//	  "displayLength": 0,
//	  "bodyRanges": [{"start": 0, "length": 2, "style": "BOLD"},
//	                 {"start": 3, "length": 4, "mentionAci": "a1"}],
//	  "mentions": [{"start": 3, "length": 4, "aci": "a1", "name": "Ann"}]
//	}
//
// Entries without numeric start and length are skipped. Unknown styles are
// passed through so that normalization reports them.
func DecodeJSON(data []byte) (engine.Message, error) {
	if !gjson.ValidBytes(data) {
		return engine.Message{}, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(data)
	body := doc.Get("body")
	if !body.Exists() {
		body = doc.Get("text")
	}
	if body.Type != gjson.String {
		return engine.Message{}, ErrNoText
	}

	msg := engine.Message{
		Text:          body.String(),
		DisplayLength: int(doc.Get("displayLength").Int()),
	}

	names := mentionNames(doc.Get("mentions"))
	seen := make(map[mentionKey]bool)

	doc.Get("bodyRanges").ForEach(func(_, entry gjson.Result) bool {
		start, length, ok := span(entry)
		if !ok {
			return true
		}

		if aci := entry.Get("mentionAci"); aci.Exists() {
			key := mentionKey{start, length, aci.String()}
			seen[key] = true
			msg.Mentions = append(msg.Mentions, bodyrange.Range{
				Start:  start,
				Length: length,
				Value:  bodyrange.Mention{TargetID: aci.String(), DisplayName: names[aci.String()]},
			})
			return true
		}

		msg.Formatting = append(msg.Formatting, bodyrange.Range{
			Start:  start,
			Length: length,
			Value:  styleNames[strings.ToLower(entry.Get("style").String())],
		})
		return true
	})

	doc.Get("mentions").ForEach(func(_, entry gjson.Result) bool {
		start, length, ok := span(entry)
		if !ok {
			return true
		}
		aci := entry.Get("aci").String()
		if seen[mentionKey{start, length, aci}] {
			return true
		}
		msg.Mentions = append(msg.Mentions, bodyrange.Range{
			Start:  start,
			Length: length,
			Value:  bodyrange.Mention{TargetID: aci, DisplayName: entry.Get("name").String()},
		})
		return true
	})

	return msg, nil
}

type mentionKey struct {
	start, length int
	aci           string
}

func mentionNames(mentions gjson.Result) map[string]string {
	names := make(map[string]string)
	mentions.ForEach(func(_, entry gjson.Result) bool {
		if aci, name := entry.Get("aci").String(), entry.Get("name").String(); aci != "" && name != "" {
			names[aci] = name
		}
		return true
	})
	return names
}

func span(entry gjson.Result) (int, int, bool) {
	start, length := entry.Get("start"), entry.Get("length")
	if start.Type != gjson.Number || length.Type != gjson.Number {
		return 0, 0, false
	}
	return int(start.Int()), int(length.Int()), true
}

// Decode decodes data in the named format: "json", "markdown" or "plain".
func Decode(format string, data []byte) (engine.Message, error) {
	switch format {
	case "json":
		return DecodeJSON(data)
	case "markdown":
		return DecodeMarkdown(data), nil
	case "plain":
		return engine.Message{Text: string(data)}, nil
	default:
		return engine.Message{}, fmt.Errorf("unknown input format %q", format)
	}
}

// Sniff guesses the input format of data: a JSON object is an envelope,
// anything else is Markdown.
func Sniff(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		return "json"
	}
	return "markdown"
}

// DetectFormat picks the input format for the file name and content: the
// file extension when it is known, otherwise Sniff.
func DetectFormat(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	case ".md", ".markdown":
		return "markdown"
	case ".txt":
		return "plain"
	}
	return Sniff(data)
}
