// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Configuration fields.
	FieldContext   = "context"
	FieldSchemes   = "schemes"
	FieldLanguages = "languages"

	// Range fields.
	FieldKind     = "kind"
	FieldStart    = "start"
	FieldLength   = "length"
	FieldReason   = "reason"
	FieldConflict = "conflict"

	// Statistics fields.
	FieldTextLength    = "text_length"
	FieldDisplayLength = "display_length"
	FieldRanges        = "ranges"
	FieldLinks         = "links"
	FieldNodes         = "nodes"
	FieldDropped       = "dropped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
