package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "repo", "a", "b")
	for _, dir := range []string{nested, filepath.Join(root, "repo", ".git")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	got, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected no config, got %q", got)
	}

	writeFile(t, filepath.Join(root, "repo", ".spanrender.json"), "{}")
	writeFile(t, filepath.Join(root, "repo", "spanrender.yml"), "context: preview\n")

	got, err = FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if want := filepath.Join(root, "repo", ".spanrender.json"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".spanrender.yml"), "context: preview\n")

	repo := filepath.Join(root, "repo")
	for _, dir := range []string{filepath.Join(repo, ".git"), filepath.Join(repo, "src")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	got, err := FindProjectConfig(context.Background(), filepath.Join(repo, "src"))
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected the walk to stop at the repository root, got %q", got)
	}
}

func TestFindProjectConfig_IgnoresDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".spanrender.yml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindProjectConfig(context.Background(), root)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if got != "" {
		t.Errorf("expected no config, got %q", got)
	}
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "spanrender")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "config.json"), `{"context": "search"}`)

	paths, err := DiscoverPaths(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverPaths() error = %v", err)
	}
	if want := filepath.Join(dir, "config.json"); paths.User != want {
		t.Errorf("expected user config %q, got %q", want, paths.User)
	}
}

func TestDiscoverPaths_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DiscoverPaths(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
