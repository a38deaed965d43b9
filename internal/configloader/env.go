package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/spanrender/pkg/config"
)

// envVarPrefix is the prefix for all spanrender environment variables.
const envVarPrefix = "SPANRENDER_"

// envVar binds one environment variable to a config field.
type envVar struct {
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars are keyed by name without the prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"SCHEMES": {"schemes", "Comma-separated list of link schemes",
		func(cfg *config.Config, v string) error { cfg.Schemes = splitList(v); return nil }},
	"LANGUAGES": {"languages", "Comma-separated list of code block language tags",
		func(cfg *config.Config, v string) error { cfg.Languages = splitList(v); return nil }},
	"CONTEXT": {"context", "Render context: timeline, preview or search",
		func(cfg *config.Config, v string) error { cfg.Context = v; return nil }},
	"DISPLAY_LENGTH": {"display_length", "Truncate the display text to N characters (0 = no limit)",
		func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			cfg.DisplayLength = n
			return nil
		}},
	"COLOR": {"color", "Terminal colours: auto, always or never",
		func(cfg *config.Config, v string) error { cfg.Color = config.ColorMode(v); return nil }},
	"LOG_LEVEL": {"log_level", "Log level: debug, info, warn or error",
		func(cfg *config.Config, v string) error { cfg.LogLevel = v; return nil }},
	"FORMAT": {"format", "Output format: text, json, html or nodes",
		func(cfg *config.Config, v string) error {
			format, err := config.ParseOutputFormat(v)
			cfg.Format = lo.Ternary(err == nil, format, cfg.Format)
			return err
		}},
	"INPUT": {"input", "Input format: json, markdown or plain",
		func(cfg *config.Config, v string) error {
			input, err := config.ParseInputFormat(v)
			cfg.Input = lo.Ternary(err == nil, input, cfg.Input)
			return err
		}},
	"VERIFY": {"verify", "Check display node tiling: true or false",
		func(cfg *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			cfg.Verify = b
			return nil
		}},
}

// LoadFromEnv applies the SPANRENDER_* variables that are set to cfg.
// Variables are applied in name order so errors are deterministic.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	names := lo.Keys(envVars)
	slices.Sort(names)

	for _, name := range names {
		value := strings.TrimSpace(os.Getenv(envVarPrefix + name))
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	return lo.FilterMap(strings.Split(value, ","), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		return part, part != ""
	})
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	name, ok := lo.FindKeyBy(envVars, func(_ string, v envVar) bool { return v.field == field })
	if !ok {
		return ""
	}
	return envVarPrefix + name
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	return lo.MapEntries(envVars, func(name string, v envVar) (string, string) {
		return envVarPrefix + name, v.description
	})
}
