package config

import (
	"fmt"
	"strings"
)

// ParseOutputFormat parses an output format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatHTML, FormatNodes:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid format %q; must be one of: text, json, html, nodes", name)
	}
}

// ParseInputFormat parses an input format name.
func ParseInputFormat(name string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case InputJSON, InputMarkdown, InputPlain:
		return f, nil
	case "md":
		return InputMarkdown, nil
	case "", "auto":
		return "", nil
	default:
		return "", fmt.Errorf("invalid input %q; must be one of: json, markdown, plain", name)
	}
}

// IsValid returns true if the colour mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
