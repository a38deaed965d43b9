package rangetree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/rangetree"
)

func rng(start, length int, v bodyrange.Value) bodyrange.Range {
	return bodyrange.Range{Start: start, Length: length, Value: v}
}

func TestBuild_NestsContainedRanges(t *testing.T) {
	t.Parallel()

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(0, 10, bodyrange.Bold),
		rng(2, 3, bodyrange.Italic),
		rng(12, 2, bodyrange.Monospace),
	})

	require.Empty(t, rejected)
	require.Len(t, forest, 2)
	assert.Equal(t, bodyrange.KindBold, forest[0].Range.Kind())
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, bodyrange.KindItalic, forest[0].Children[0].Range.Kind())
	assert.Equal(t, bodyrange.KindMonospace, forest[1].Range.Kind())
}

func TestBuild_AdoptsContainedSiblings(t *testing.T) {
	t.Parallel()

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(2, 2, bodyrange.Italic),
		rng(6, 2, bodyrange.Strikethrough),
		rng(20, 2, bodyrange.Bold),
		rng(0, 10, bodyrange.Bold),
	})

	require.Empty(t, rejected)
	require.Len(t, forest, 2)
	assert.Equal(t, 0, forest[0].Range.Start)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, 2, forest[0].Children[0].Range.Start)
	assert.Equal(t, 6, forest[0].Children[1].Range.Start)
	assert.Equal(t, 20, forest[1].Range.Start)
}

func TestBuild_SortsDisjointRanges(t *testing.T) {
	t.Parallel()

	forest, _ := rangetree.Build([]bodyrange.Range{
		rng(8, 2, bodyrange.Bold),
		rng(0, 2, bodyrange.Italic),
		rng(4, 2, bodyrange.Monospace),
	})

	starts := make([]int, 0, len(forest))
	for _, n := range forest {
		starts = append(starts, n.Range.Start)
	}
	assert.Equal(t, []int{0, 4, 8}, starts)
}

func TestBuild_CrossingOverlapFirstInsertedWins(t *testing.T) {
	t.Parallel()

	first := rng(0, 10, bodyrange.Bold)
	second := rng(5, 10, bodyrange.Italic)

	forest, rejected := rangetree.Build([]bodyrange.Range{first, second})

	assert.Equal(t, []bodyrange.Range{first}, forest.Ranges())
	require.Len(t, rejected, 1)
	assert.Equal(t, second, rejected[0].Range)
	assert.Equal(t, rangetree.ReasonCrossing, rejected[0].Reason)
	assert.Equal(t, first, rejected[0].Conflict)
}

func TestBuild_CrossingInsideParent(t *testing.T) {
	t.Parallel()

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(0, 20, bodyrange.Bold),
		rng(2, 6, bodyrange.Italic),
		rng(5, 6, bodyrange.Strikethrough),
	})

	require.Len(t, rejected, 1)
	assert.Equal(t, bodyrange.KindStrikethrough, rejected[0].Range.Kind())
	assert.Equal(t, 2, forest.Len())
}

func TestBuild_EqualSpansNest(t *testing.T) {
	t.Parallel()

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(0, 4, bodyrange.Bold),
		rng(0, 4, bodyrange.Italic),
	})

	require.Empty(t, rejected)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, bodyrange.KindItalic, forest[0].Children[0].Range.Kind())
}

func TestBuild_MentionIsLeaf(t *testing.T) {
	t.Parallel()

	mention := rng(0, 6, bodyrange.Mention{TargetID: "u1", DisplayName: "Alice"})

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(1, 2, bodyrange.Bold),
		mention,
	})

	require.Len(t, forest, 1)
	assert.Equal(t, mention, forest[0].Range)
	assert.Empty(t, forest[0].Children)
	require.Len(t, rejected, 1)
	assert.Equal(t, rangetree.ReasonDisplacedByMention, rejected[0].Reason)
	assert.Equal(t, bodyrange.KindBold, rejected[0].Range.Kind())
}

func TestBuild_MentionInsideFormatting(t *testing.T) {
	t.Parallel()

	forest, rejected := rangetree.Build([]bodyrange.Range{
		rng(0, 10, bodyrange.Bold),
		rng(2, 3, bodyrange.Mention{TargetID: "u1"}),
	})

	require.Empty(t, rejected)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, bodyrange.KindMention, forest[0].Children[0].Range.Kind())
}

func TestBuild_NothingNestsInMention(t *testing.T) {
	t.Parallel()

	_, rejected := rangetree.Build([]bodyrange.Range{
		rng(0, 6, bodyrange.Mention{TargetID: "u1"}),
		rng(0, 6, bodyrange.Mention{TargetID: "u2"}),
	})

	require.Len(t, rejected, 1)
	assert.Equal(t, rangetree.ReasonInsideMention, rejected[0].Reason)
}

func TestInsert_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	forest, _ := rangetree.Build([]bodyrange.Range{rng(0, 10, bodyrange.Bold)})
	before := forest.Ranges()

	next, _ := rangetree.Insert(forest, rng(2, 2, bodyrange.Italic))

	assert.Equal(t, before, forest.Ranges())
	assert.Empty(t, forest[0].Children)
	assert.Equal(t, 2, next.Len())
}

func TestWalk_DepthAndStop(t *testing.T) {
	t.Parallel()

	forest, _ := rangetree.Build([]bodyrange.Range{
		rng(0, 10, bodyrange.Bold),
		rng(1, 5, bodyrange.Italic),
		rng(2, 1, bodyrange.Monospace),
		rng(11, 1, bodyrange.Bold),
	})

	var depths []int
	err := rangetree.Walk(forest, func(_ *rangetree.Node, depth int) error {
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 0}, depths)

	stop := errors.New("stop")
	visited := 0
	err = rangetree.Walk(forest, func(*rangetree.Node, int) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, visited)
}
