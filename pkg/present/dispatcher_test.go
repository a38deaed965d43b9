package present_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/display"
	"github.com/yaklabco/spanrender/pkg/present"
)

type fixedDetector string

func (f fixedDetector) Detect(string) string { return string(f) }

type denyList map[string]bool

func (d denyList) IsSneaky(url string) bool { return d[url] }

func newDispatcher(ctx present.Context) *present.Dispatcher {
	return present.NewDispatcher(present.Options{
		Context:  ctx,
		Detector: fixedDetector("auto"),
	})
}

func TestRender_CodeBlockLanguage(t *testing.T) {
	t.Parallel()

	d := newDispatcher(present.ContextTimeline)

	tagged := d.Render(display.Node{
		Length: 15, Text: "python\nprint(1)",
		Flags: display.Flags{IsMonospace: true},
	}, present.RevealState{})

	assert.Equal(t, present.Element{
		Kind: present.ElementCodeBlock, Text: "print(1)", Language: "python", Highlight: "python",
	}, tagged)

	untagged := d.Render(display.Node{
		Length: 17, Text: "nonsense\nprint(1)",
		Flags: display.Flags{IsMonospace: true},
	}, present.RevealState{})

	assert.Equal(t, present.ElementCodeBlock, untagged.Kind)
	assert.Empty(t, untagged.Language)
	assert.Equal(t, "nonsense\nprint(1)", untagged.Text)
	assert.Equal(t, "auto", untagged.Highlight)

	trailing := d.Render(display.Node{
		Length: 4, Text: "abc\n",
		Flags: display.Flags{IsMonospace: true},
	}, present.RevealState{})

	assert.Equal(t, present.ElementMonospace, trailing.Kind)
	assert.Equal(t, "abc\n", trailing.PlainText())
}

func TestRender_CodeBlockTagIsFolded(t *testing.T) {
	t.Parallel()

	d := newDispatcher(present.ContextTimeline)

	got := d.Render(display.Node{Text: "  Go \nfunc main() {}", Flags: display.Flags{IsMonospace: true}}, present.RevealState{})

	assert.Equal(t, "go", got.Language)
	assert.Equal(t, "func main() {}", got.Text)
}

func TestRender_MonospaceInlineOutsideTimeline(t *testing.T) {
	t.Parallel()

	node := display.Node{Text: "python\nprint(1)", Flags: display.Flags{IsMonospace: true}}

	for _, ctx := range []present.Context{present.ContextPreview, present.ContextSearch} {
		got := newDispatcher(ctx).Render(node, present.RevealState{})
		assert.Equal(t, present.ElementMonospace, got.Kind, "context %s", ctx)
		assert.Equal(t, "python\nprint(1)", got.PlainText())
	}

	single := newDispatcher(present.ContextTimeline).Render(
		display.Node{Text: "x := 1", Flags: display.Flags{IsMonospace: true}}, present.RevealState{})
	assert.Equal(t, present.ElementMonospace, single.Kind)
}

func TestRender_StyleWrappingOrder(t *testing.T) {
	t.Parallel()

	got := newDispatcher(present.ContextTimeline).Render(display.Node{
		Text: "x",
		Flags: display.Flags{
			IsBold: true, IsItalic: true, IsStrikethrough: true, IsMonospace: true,
		},
	}, present.RevealState{})

	want := present.Element{Kind: present.ElementBold, Children: []present.Element{{
		Kind: present.ElementItalic, Children: []present.Element{{
			Kind: present.ElementStrikethrough, Children: []present.Element{{
				Kind: present.ElementMonospace, Children: []present.Element{{
					Kind: present.ElementText, Text: "x",
				}},
			}},
		}},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Links(t *testing.T) {
	t.Parallel()

	d := present.NewDispatcher(present.Options{
		LinkChecker: denyList{"https://evil.example": true},
	})

	link := d.Render(display.Node{Text: "https://a.co", URL: "https://a.co", Flags: display.Flags{IsBold: true}}, present.RevealState{})
	require.Equal(t, present.ElementLink, link.Kind)
	assert.Equal(t, "https://a.co", link.URL)
	assert.Equal(t, present.ElementBold, link.Children[0].Kind)

	sneaky := d.Render(display.Node{Text: "https://evil.example", URL: "https://evil.example"}, present.RevealState{})
	assert.Equal(t, present.Element{Kind: present.ElementText, Text: "https://evil.example"}, sneaky)

	scheme := d.Render(display.Node{Text: "ftp://a.co", URL: "ftp://a.co"}, present.RevealState{})
	assert.Equal(t, present.ElementText, scheme.Kind)
}

func TestRender_DefaultLinkCheckerRejectsHomograph(t *testing.T) {
	t.Parallel()

	d := newDispatcher(present.ContextTimeline)
	got := d.Render(display.Node{Text: "https://exаmple.com", URL: "https://exаmple.com"}, present.RevealState{})

	assert.Equal(t, present.ElementText, got.Kind)
}

func TestRender_Mentions(t *testing.T) {
	t.Parallel()

	got := newDispatcher(present.ContextTimeline).Render(display.Node{
		Text:  "hi ￼!",
		Flags: display.Flags{IsItalic: true},
		Mentions: []display.MentionRef{
			{Start: 3, Length: 1, TargetID: "u1", DisplayName: "Ann"},
		},
	}, present.RevealState{})

	require.Equal(t, present.ElementItalic, got.Kind)
	assert.Equal(t, []present.Element{
		{Kind: present.ElementText, Text: "hi "},
		{Kind: present.ElementMention, TargetID: "u1", Text: "@Ann"},
		{Kind: present.ElementText, Text: "!"},
	}, got.Children)
	assert.Equal(t, "hi @Ann!", got.PlainText())
}

func TestRender_MentionWholeNode(t *testing.T) {
	t.Parallel()

	got := newDispatcher(present.ContextTimeline).Render(display.Node{
		Text:     "@bob",
		Mentions: []display.MentionRef{{Start: 0, Length: 4, TargetID: "b"}},
	}, present.RevealState{})

	assert.Equal(t, present.Element{Kind: present.ElementMention, TargetID: "b", Text: "@bob"}, got)
}

func TestRender_SpoilerReveal(t *testing.T) {
	t.Parallel()

	node := display.Node{
		Text: "secret", Length: 6, IsSpoiler: true, SpoilerGroupID: 3,
		SpoilerChildren: []display.Node{
			{Start: 0, Length: 3, Text: "sec"},
			{Start: 3, Length: 3, Text: "ret", Flags: display.Flags{IsBold: true}},
		},
	}
	d := newDispatcher(present.ContextTimeline)

	hidden := d.Render(node, present.NewRevealState())
	assert.Equal(t, present.ElementSpoiler, hidden.Kind)
	assert.False(t, hidden.Revealed)
	assert.Equal(t, 3, hidden.SpoilerGroupID)
	require.Len(t, hidden.Children, 2)
	assert.Equal(t, present.ElementBold, hidden.Children[1].Kind)

	shown := d.Render(node, present.NewRevealState(3))
	assert.True(t, shown.Revealed)
	assert.Equal(t, "secret", shown.PlainText())
}

func TestRenderAll_GroupForMultipleParts(t *testing.T) {
	t.Parallel()

	got := newDispatcher(present.ContextTimeline).RenderAll([]display.Node{
		{Text: "a ￼ b", Mentions: []display.MentionRef{{Start: 2, Length: 1, TargetID: "x", DisplayName: "X"}}},
		{Text: "tail"},
	}, present.RevealState{})

	require.Len(t, got, 2)
	assert.Equal(t, present.ElementGroup, got[0].Kind)
	assert.Equal(t, "a @X b", got[0].PlainText())
	assert.Equal(t, present.ElementText, got[1].Kind)
}

func TestParseContext(t *testing.T) {
	t.Parallel()

	c, err := present.ParseContext(" Preview ")
	require.NoError(t, err)
	assert.Equal(t, present.ContextPreview, c)

	c, err = present.ParseContext("")
	require.NoError(t, err)
	assert.Equal(t, present.ContextTimeline, c)

	_, err = present.ParseContext("sidebar")
	assert.Error(t, err)
}
