package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/yaklabco/spanrender/internal/cli"
	"github.com/yaklabco/spanrender/internal/configloader"
)

var testInfo = cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"}

// emptyConfig writes a config file so tests do not pick up configuration
// from the machine they run on.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".spanrender.yml")
	require.NoError(t, os.WriteFile(path, []byte("context: timeline\n"), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", emptyConfig(t), "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := cli.NewRootCommand(testInfo)

	require.NotNil(t, cmd)
	assert.Equal(t, "spanrender", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"render", "batch", "links", "languages", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRenderCommandFlags(t *testing.T) {
	cmd := cli.NewRootCommand(testInfo)
	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	for _, flag := range []string{
		"format", "input", "length", "context", "reveal", "verify", "strict", "summary", "dropped", "compact",
	} {
		assert.NotNil(t, render.Flags().Lookup(flag), flag)
	}

	require.Error(t, render.Args(render, []string{"a.json", "b.json"}))
	require.NoError(t, render.Args(render, []string{"-"}))
}

func TestRender_PlainStdin(t *testing.T) {
	out, err := execute(t, "hello world", "render", "--input", "plain")

	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestRender_MarkdownSniffed(t *testing.T) {
	out, err := execute(t, "the end: ||he dies||", "render")

	require.NoError(t, err)
	assert.Contains(t, out, "the end: #######")
}

func TestRender_RevealSpoiler(t *testing.T) {
	out, err := execute(t, "the end: ||he dies||", "render", "--reveal", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "the end: he dies")
}

func TestRender_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"body": "see https://example.com now",
		"bodyRanges": [{"start": 0, "length": 3, "style": "BOLD"}]
	}`), 0o644))

	out, err := execute(t, "", "render", path, "--format", "json", "--verify")

	require.NoError(t, err)
	assert.Equal(t, "see https://example.com now", gjson.Get(out, "displayText").String())
	assert.Equal(t, "https://example.com", gjson.Get(out, "links.0.url").String())
	assert.True(t, gjson.Get(out, "nodes.0.isBold").Bool())
}

func TestRender_Length(t *testing.T) {
	out, err := execute(t, "check https://example.com/path now", "render", "--input", "plain", "-n", "20", "--format", "json")

	require.NoError(t, err)
	assert.Equal(t, "check https://exampl", gjson.Get(out, "displayText").String())
	assert.Empty(t, gjson.Get(out, "links").Array())
}

func TestRender_Strict(t *testing.T) {
	msg := `{"body": "0123456789", "bodyRanges": [
		{"start": 0, "length": 5, "style": "BOLD"},
		{"start": 3, "length": 5, "style": "ITALIC"}
	]}`

	_, err := execute(t, msg, "render", "--strict")
	require.ErrorIs(t, err, cli.ErrAnnotationsDropped)
	assert.Equal(t, cli.ExitDropped, cli.ExitCode(err))

	out, err := execute(t, msg, "render", "--dropped", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "crossing-overlap")
	assert.Contains(t, out, "1 dropped")
}

func TestRender_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format", []string{"render", "--format", "pdf"}, cli.ExitInvalidUsage},
		{"unknown input", []string{"render", "--input", "rtf"}, cli.ExitInvalidUsage},
		{"negative length", []string{"render", "--length", "-1"}, cli.ExitInvalidUsage},
		{"unknown context", []string{"render", "--context", "inbox"}, cli.ExitConfigError},
		{"missing file", []string{"render", "does-not-exist.json"}, cli.ExitIOError},
		{"bad envelope", []string{"render", "--input", "json"}, cli.ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "{not json", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err), err.Error())
		})
	}
}

func writeBatch(t *testing.T, withBroken bool) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"body": "0123456789 https://a.co", "bodyRanges": [
			{"start": 0, "length": 5, "style": "BOLD"},
			{"start": 3, "length": 5, "style": "ITALIC"}
		]}`,
		"notes/b.md": "some *notes*",
	}
	if withBroken {
		files["c.json"] = "{not json"
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestBatch(t *testing.T) {
	dir := writeBatch(t, false)

	out, err := execute(t, "", "batch", dir, "--jobs", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "a.json: ")
	assert.Contains(t, lines[0], "1 link")
	assert.Contains(t, lines[0], "1 dropped")
	assert.Contains(t, lines[1], "b.md: ")
	assert.Contains(t, lines[1], "nothing dropped")
	assert.Empty(t, lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "2 files processed, 1 link, "), lines[3])
	assert.True(t, strings.HasSuffix(lines[3], ", 1 dropped in 1 file"), lines[3])

	_, err = execute(t, "", "batch", dir, "--strict")
	require.ErrorIs(t, err, cli.ErrAnnotationsDropped)
	assert.Equal(t, cli.ExitDropped, cli.ExitCode(err))

	_, err = execute(t, "", "batch", dir, "--strict", "--ignore", "*.json")
	require.NoError(t, err)
}

func TestBatch_Errors(t *testing.T) {
	dir := writeBatch(t, true)

	out, err := execute(t, "", "batch", dir)
	require.ErrorIs(t, err, cli.ErrBatchFailed)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Contains(t, out, "c.json: ")
	assert.Contains(t, out, "invalid JSON")
	assert.Contains(t, out, "1 failed")

	_, err = execute(t, "", "batch", dir, "--jobs", "-1")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestBatch_Out(t *testing.T) {
	dir := writeBatch(t, false)
	outDir := filepath.Join(t.TempDir(), "site")

	_, err := execute(t, "", "batch", dir, "--format", "html", "--out", outDir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(outDir, "a.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `<div class="message">`)
	assert.Contains(t, string(content), `<a href="https://a.co"`)

	content, err = os.ReadFile(filepath.Join(outDir, "b.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<em>notes</em>")
}

func TestLinks(t *testing.T) {
	out, err := execute(t, "go to https://example.com/a and http://test.org", "links", "--input", "plain")

	require.NoError(t, err)
	assert.Contains(t, out, "SPAN")
	assert.Contains(t, out, "6:21")
	assert.Contains(t, out, "https://example.com/a")
	assert.Contains(t, out, "http://test.org")
	assert.Contains(t, out, "ok")

	out, err = execute(t, "nothing here", "links", "--input", "plain")
	require.NoError(t, err)
	assert.Equal(t, "No links found.\n", out)
}

func TestLanguages(t *testing.T) {
	out, err := execute(t, "", "languages")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "python")
	assert.Contains(t, lines, "go")

	out, err = execute(t, "", "languages", "--detect", "#!/usr/bin/env python\nprint(1)\n")
	require.NoError(t, err)
	assert.Equal(t, "python\n", out)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")

	_, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "schemes:")

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "init", "--output", path, "--force", "--format", "json")
	require.NoError(t, err)

	_, err = execute(t, "", "init", "--format", "toml")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestHelpShowsExamples(t *testing.T) {
	out, err := execute(t, "", "render", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Examples:")
	assert.Contains(t, out, "--reveal")
	assert.Contains(t, out, "Global Flags:")
}

func TestRootHelpListsEnvironment(t *testing.T) {
	out, err := execute(t, "", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Environment:")
	assert.Contains(t, out, "SPANRENDER_CONTEXT")
	assert.Contains(t, out, "SPANRENDER_DISPLAY_LENGTH")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"dropped", fmt.Errorf("x: %w", cli.ErrAnnotationsDropped), cli.ExitDropped},
		{"usage", cli.ErrUsage, cli.ExitInvalidUsage},
		{"no input", cli.ErrNoInput, cli.ExitInvalidUsage},
		{"config", fmt.Errorf("load: %w", &configloader.ValidationError{Field: "context"}), cli.ExitConfigError},
		{"tiling", cli.ErrTiling, cli.ExitInternalError},
		{"io", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
