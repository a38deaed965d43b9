package configloader

import (
	"slices"

	"github.com/yaklabco/spanrender/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Context != "" {
		result.Context = override.Context
	}
	if override.DisplayLength != 0 {
		result.DisplayLength = override.DisplayLength
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Input != "" {
		result.Input = override.Input
	}

	// Booleans can only be switched on by an override.
	if override.Verify {
		result.Verify = true
	}

	if override.Schemes != nil {
		result.Schemes = slices.Clone(override.Schemes)
	}
	if override.Languages != nil {
		result.Languages = slices.Clone(override.Languages)
	}
	if override.Reveal != nil {
		result.Reveal = slices.Clone(override.Reveal)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
