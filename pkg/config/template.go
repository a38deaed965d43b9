package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every known language tag instead of leaving the built-in
	// table implicit.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Languages is the table written by a full template.
	Languages []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return generateYAMLTemplate(opts), nil
	case "json":
		return generateJSONTemplate(opts)
	default:
		return nil, fmt.Errorf("invalid template format %q: must be yaml or json", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")

	writeComment(&buf, "URL schemes extracted as links and rendered as links. "+
		"Anything else stays plain text.")
	buf.WriteString("schemes:\n")
	for _, s := range DefaultSchemes {
		buf.WriteString("  - " + s + "\n")
	}
	buf.WriteString("\n")

	writeComment(&buf, "Render context: timeline, preview or search. "+
		"Code blocks are only shown in the timeline.")
	buf.WriteString("context: " + DefaultContext + "\n\n")

	writeComment(&buf, "Truncate the displayed text to this many characters (0 = no limit).")
	buf.WriteString("# display_length: 0\n\n")

	writeComment(&buf, "Terminal colours: auto, always or never.")
	buf.WriteString("# color: auto\n\n")

	writeComment(&buf, "Log level: debug, info, warn or error.")
	buf.WriteString("# log_level: info\n\n")

	writeComment(&buf, "Language tags recognized on the first line of a multi-line "+
		"code span. Leave unset for the built-in table.")
	if opts.Full && len(opts.Languages) > 0 {
		buf.WriteString("languages:\n")
		for _, lang := range opts.Languages {
			buf.WriteString("  - " + lang + "\n")
		}
	} else {
		buf.WriteString("# languages:\n#   - go\n#   - python\n")
	}

	return buf.Bytes()
}

func generateJSONTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	if opts.Full {
		cfg.Languages = opts.Languages
	}

	jsonBytes, err := json.MarshalIndent(map[string]any{
		"schemes":        cfg.Schemes,
		"context":        cfg.Context,
		"display_length": cfg.DisplayLength,
		"color":          cfg.Color,
		"log_level":      cfg.LogLevel,
		"languages":      cfg.Languages,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// writeComment writes text as wrapped YAML comment lines.
func writeComment(buf *bytes.Buffer, text string) {
	for _, line := range wrapText(text, commentWrapWidth) {
		buf.WriteString("# " + line + "\n")
	}
}

// wrapText splits text into lines of at most width characters on word
// boundaries. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# spanrender configuration
# See: https://github.com/yaklabco/spanrender`
}
