// Package runner renders many message files concurrently.
package runner

import (
	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/present"
)

// Options controls a batch run.
type Options struct {
	// Paths are the files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and globs. Defaults to the
	// process working directory.
	WorkingDir string

	// Extensions (lowercase, with leading dot) select message files inside
	// directories. Defaults to DefaultExtensions(). Files named directly in
	// Paths must match too.
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to
	// WorkingDir. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks walks symlinked directories.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. 0 or negative means
	// runtime.NumCPU().
	Jobs int

	// Input forces the input format. Empty detects it per file.
	Input config.InputFormat

	// Reveal is the spoiler reveal state applied to every message.
	Reveal present.RevealState
}

// DefaultExtensions returns the extensions of the supported message formats.
func DefaultExtensions() []string {
	return []string{".json", ".md", ".markdown", ".txt"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
