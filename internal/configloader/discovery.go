package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// ConfigPaths holds the configuration files found for a run. Empty fields
// mean no file was found at that level.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/spanrender/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/spanrender/config.yaml.
	User string

	// Project is the nearest .spanrender.yml at or above the working
	// directory.
	Project string

	// Explicit is the file named with --config.
	Explicit string
}

// Project file names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectFileNames = []string{
	".spanrender.yml",
	".spanrender.yaml",
	".spanrender.json",
	"spanrender.yml",
	"spanrender.yaml",
}

// File names looked up in the system and user config directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirFileNames = []string{"config.yaml", "config.yml", "config.json"}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files for
// workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirFileNames),
		User:    firstFile(userConfigDir(), dirFileNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "spanrender")
	}
	return "/etc/spanrender"
}

// userConfigDir follows XDG on every platform.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "spanrender")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spanrender")
}

// FindProjectConfig walks up from startDir and returns the first project
// config file found, or "" if there is none. The walk stops after a VCS
// root, the home directory or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectFileNames); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	path, _ := lo.Find(names, func(name string) bool {
		return isFile(filepath.Join(dir, name))
	})
	if path == "" {
		return ""
	}
	return filepath.Join(dir, path)
}

func isVCSRoot(dir string) bool {
	return lo.SomeBy(vcsRootMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
