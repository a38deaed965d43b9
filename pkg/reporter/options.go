package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays a one-line summary after the text output.
	ShowSummary bool

	// ShowDropped lists dropped annotations after the text output.
	ShowDropped bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// TermWidth overrides the detected terminal width for tables.
	TermWidth int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: false,
		ShowDropped: false,
		Compact:     false,
	}
}
