// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Render instruction styles. They are combined, not nested, when
	// several apply to the same text.
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	Link          lipgloss.Style
	Mention       lipgloss.Style
	Spoiler       lipgloss.Style
	Revealed      lipgloss.Style

	// Code blocks
	CodeBlock    lipgloss.Style
	CodeLanguage lipgloss.Style

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableRejected  lipgloss.Style

	// Misc
	Title    lipgloss.Style
	FilePath lipgloss.Style
	Dim      lipgloss.Style

	// SpoilerMask is the character drawn for each hidden grapheme.
	SpoilerMask string
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Bold:          lipgloss.NewStyle().Bold(true),
		Italic:        lipgloss.NewStyle().Italic(true),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Mention:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Spoiler:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Revealed:      lipgloss.NewStyle().Background(lipgloss.Color("236")),

		CodeBlock: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("8")).
			PaddingLeft(1),
		CodeLanguage: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableRejected:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Title:    lipgloss.NewStyle().Bold(true),
		FilePath: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SpoilerMask: "▒",
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Bold:           plain,
		Italic:         plain,
		Strikethrough:  plain,
		Code:           plain,
		Link:           plain,
		Mention:        plain,
		Spoiler:        plain,
		Revealed:       plain,
		CodeBlock:      plain.PaddingLeft(2),
		CodeLanguage:   plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableRejected:  plain,
		Title:          plain,
		FilePath:       plain,
		Dim:            plain,
		SpoilerMask:    "#",
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
