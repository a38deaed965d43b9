package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/display"
)

func TestGroupContiguousSpoilers(t *testing.T) {
	t.Parallel()

	text := "abcdefghijklmn"
	nodes := build(t, text, []bodyrange.Range{
		rng(0, 5, bodyrange.SpoilerFormat),
		rng(5, 3, bodyrange.SpoilerFormat),
		rng(10, 2, bodyrange.SpoilerFormat),
	}, nil)
	require.Len(t, nodes, 5)

	got := display.GroupContiguousSpoilers(nodes)

	var groups []display.Node
	for _, n := range got {
		if n.IsSpoiler {
			groups = append(groups, n)
		}
	}
	require.Len(t, groups, 2)

	assert.Equal(t, 0, groups[0].Start)
	assert.Equal(t, 8, groups[0].Length)
	assert.Equal(t, "abcdefgh", groups[0].Text)
	assert.Equal(t, 1, groups[0].SpoilerGroupID)
	require.Len(t, groups[0].SpoilerChildren, 2)
	assert.Equal(t, "abcde", groups[0].SpoilerChildren[0].Text)
	assert.Equal(t, "fgh", groups[0].SpoilerChildren[1].Text)

	assert.Equal(t, 10, groups[1].Start)
	assert.Equal(t, 2, groups[1].Length)
	assert.Equal(t, 3, groups[1].SpoilerGroupID)

	require.NoError(t, display.CheckTiling(got, len(text)))
}

func TestGroupContiguousSpoilers_AcrossFormatting(t *testing.T) {
	t.Parallel()

	// The second spoiler sits inside a bold range but still touches the first.
	nodes := build(t, "aaabbbccc", []bodyrange.Range{
		rng(3, 6, bodyrange.Bold),
		rng(0, 3, bodyrange.SpoilerFormat),
		rng(3, 3, bodyrange.SpoilerFormat),
	}, nil)

	got := display.GroupContiguousSpoilers(nodes)

	require.Len(t, got, 2)
	assert.True(t, got[0].IsSpoiler)
	assert.Equal(t, "aaabbb", got[0].Text)
	require.Len(t, got[0].SpoilerChildren, 2)
	assert.True(t, got[0].SpoilerChildren[1].IsBold)
	assert.Equal(t, "ccc", got[1].Text)
	assert.True(t, got[1].IsBold)
}

func TestGroupContiguousSpoilers_PassThrough(t *testing.T) {
	t.Parallel()

	nodes := []display.Node{
		{Start: 0, Length: 2, Text: "ab"},
		{Start: 2, Length: 2, Text: "cd", IsSpoiler: true, SpoilerGroupID: 1,
			SpoilerChildren: []display.Node{{Start: 2, Length: 2, Text: "cd"}}},
		{Start: 4, Length: 1, Text: "e", Flags: display.Flags{IsBold: true}},
	}

	assert.Equal(t, nodes, display.GroupContiguousSpoilers(nodes))
	assert.Empty(t, display.GroupContiguousSpoilers(nil))
}

func TestCheckTiling_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		nodes []display.Node
		want  string
	}{
		{
			name:  "gap",
			nodes: []display.Node{{Start: 0, Length: 1, Text: "a"}, {Start: 2, Length: 1, Text: "c"}},
			want:  "starts at 2, want 1",
		},
		{
			name:  "short",
			nodes: []display.Node{{Start: 0, Length: 2, Text: "ab"}},
			want:  "nodes end at 2, want 3",
		},
		{
			name:  "empty node",
			nodes: []display.Node{{Start: 0, Length: 0}, {Start: 0, Length: 3, Text: "abc"}},
			want:  "empty node",
		},
		{
			name:  "text mismatch",
			nodes: []display.Node{{Start: 0, Length: 3, Text: "ab"}},
			want:  "text has 2 code points",
		},
		{
			name: "spoiler children gap",
			nodes: []display.Node{{Start: 0, Length: 3, Text: "abc", IsSpoiler: true, SpoilerGroupID: 4,
				SpoilerChildren: []display.Node{{Start: 0, Length: 1, Text: "a"}}}},
			want: "spoiler 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := display.CheckTiling(tt.nodes, 3)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
