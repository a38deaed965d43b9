// Package config defines core configuration types for spanrender.
// These types are pure data structures with no dependency on the loaders.
package config

import "slices"

// OutputFormat specifies how a processed message is written.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatHTML  OutputFormat = "html"
	FormatNodes OutputFormat = "nodes"
)

// InputFormat specifies how a message is read.
type InputFormat string

const (
	InputJSON     InputFormat = "json"
	InputMarkdown InputFormat = "markdown"
	InputPlain    InputFormat = "plain"
)

// ColorMode controls terminal colour output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Default render settings.
const (
	DefaultContext  = "timeline"
	DefaultLogLevel = "info"
)

// DefaultSchemes are the link schemes allowed when none are configured.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultSchemes = []string{"http", "https"}

// Config is the root configuration structure for spanrender.
type Config struct {
	// Schemes lists the URL schemes the link scanner extracts and the
	// dispatcher renders as links.
	Schemes []string `mapstructure:"schemes" yaml:"schemes,omitempty"`

	// Languages lists the code block tags recognized on the first line of a
	// multi-line monospace run. Empty means the built-in table.
	Languages []string `mapstructure:"languages" yaml:"languages,omitempty"`

	// Context is the render context: timeline, preview or search.
	Context string `mapstructure:"context" yaml:"context,omitempty"`

	// DisplayLength truncates the display text to this many code points.
	// 0 shows the whole text.
	DisplayLength int `mapstructure:"display_length" yaml:"display_length,omitempty"`

	// Color controls terminal colours: auto, always or never.
	Color ColorMode `mapstructure:"color" yaml:"color,omitempty"`

	// LogLevel is the logger level: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Input specifies the input format. Empty means detect from the file
	// name and content.
	Input InputFormat `mapstructure:"-" yaml:"-"`

	// Reveal lists the spoiler groups shown unmasked.
	Reveal []int `mapstructure:"-" yaml:"-"`

	// Verify checks the tiling of the display nodes before output.
	Verify bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Schemes:  slices.Clone(DefaultSchemes),
		Context:  DefaultContext,
		Color:    ColorAuto,
		LogLevel: DefaultLogLevel,
		Format:   FormatText,
	}
}
