package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/config"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/runner"
	"github.com/yaklabco/spanrender/pkg/wire"
)

func writeMessages(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"a.json": `{"body":"hi there https://example.com","bodyRanges":[` +
			`{"start":0,"length":5,"style":"BOLD"},{"start":3,"length":4,"style":"ITALIC"}]}`,
		"b.md":   "plain *text*",
		"c.json": "not json",
		"d.txt":  "see https://go.dev",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

func TestRun(t *testing.T) {
	t.Parallel()

	for _, jobs := range []int{1, 8} {
		root := writeMessages(t)
		r := runner.New(engine.New(engine.Options{}))

		result, err := r.Run(context.Background(), runner.Options{WorkingDir: root, Jobs: jobs})
		require.NoError(t, err)

		names := make([]string, 0, len(result.Files))
		for _, f := range result.Files {
			names = append(names, filepath.Base(f.Path))
		}
		assert.Equal(t, []string{"a.json", "b.md", "c.json", "d.txt"}, names, "jobs=%d", jobs)

		assert.Equal(t, "json", result.Files[0].Format)
		assert.Equal(t, "markdown", result.Files[1].Format)
		assert.Equal(t, "plain", result.Files[3].Format)

		require.ErrorIs(t, result.Files[2].Error, wire.ErrInvalidJSON)
		assert.Nil(t, result.Files[2].Result)
		assert.Equal(t, "plain text", result.Files[1].Result.DisplayText)

		stats := result.Stats
		assert.Equal(t, 4, stats.FilesDiscovered)
		assert.Equal(t, 3, stats.FilesProcessed)
		assert.Equal(t, 1, stats.FilesErrored)
		assert.Equal(t, 1, stats.FilesWithDrops)
		assert.Equal(t, 2, stats.Links)
		assert.Equal(t, 1, stats.Dropped)
		assert.Equal(t, map[engine.Reason]int{engine.ReasonCrossingOverlap: 1}, stats.DroppedByReason)
		assert.True(t, result.HasDrops())
		assert.True(t, result.HasErrors())
	}
}

func TestRun_ForcedInput(t *testing.T) {
	t.Parallel()

	root := writeMessages(t)
	r := runner.New(engine.New(engine.Options{}))

	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"c.json"},
		Input:      config.InputPlain,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)
	assert.Equal(t, "not json", result.Files[0].Result.DisplayText)
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasDrops())
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	r := runner.New(engine.New(engine.Options{}))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := runner.New(engine.New(engine.Options{}))
	_, err := r.Run(ctx, runner.Options{WorkingDir: writeMessages(t)})
	require.ErrorIs(t, err, context.Canceled)
}

func TestProcessFile_Missing(t *testing.T) {
	t.Parallel()

	r := runner.New(engine.New(engine.Options{}))
	outcome := r.ProcessFile(context.Background(), runner.Options{}, filepath.Join(t.TempDir(), "gone.md"))
	require.Error(t, outcome.Error)
	assert.Nil(t, outcome.Result)
}
