package configloader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/langdetect"
	"github.com/yaklabco/spanrender/pkg/present"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "schemes[1]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown language tags).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// schemePattern matches a URL scheme as defined by RFC 3986.
//
//nolint:gochecknoglobals // Compiled once.
var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*$`)

// knownLogLevels lists valid log level values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for i, scheme := range cfg.Schemes {
		if !schemePattern.MatchString(scheme) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("schemes[%d]", i),
				Value:   scheme,
				Message: fmt.Sprintf("invalid scheme %q; must be letters, digits, '+', '-' or '.'", scheme),
			})
		}
	}

	if cfg.Context != "" {
		if _, err := present.ParseContext(cfg.Context); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "context",
				Value:   cfg.Context,
				Message: err.Error(),
			})
		}
	}

	if cfg.DisplayLength < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "display_length",
			Value:   cfg.DisplayLength,
			Message: "display_length must be >= 0 (0 means no limit)",
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	validateLanguages(cfg, result)

	return result
}

// validateLanguages warns about language tags no highlighter knows. They are
// still accepted as code block tags.
func validateLanguages(cfg *config.Config, result *ValidationResult) {
	for i, lang := range cfg.Languages {
		if strings.TrimSpace(lang) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("languages[%d]", i),
				Value:   lang,
				Message: "language tag must not be empty",
			})
			continue
		}
		if !langdetect.IsKnown(lang) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("languages[%d]", i),
				Value:   lang,
				Message: fmt.Sprintf("unknown language %q; code tagged with it is shown without highlighting", lang),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
