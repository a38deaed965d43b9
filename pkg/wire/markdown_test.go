package wire_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/wire"
)

func TestDecodeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		text   string
		ranges []bodyrange.Range
	}{
		{
			name:   "plain",
			source: "just text",
			text:   "just text",
		},
		{
			name:   "emphasis",
			source: "a **bold** and *it* and _it_",
			text:   "a bold and it and it",
			ranges: []bodyrange.Range{
				{Start: 2, Length: 4, Value: bodyrange.Bold},
				{Start: 11, Length: 2, Value: bodyrange.Italic},
				{Start: 18, Length: 2, Value: bodyrange.Italic},
			},
		},
		{
			name:   "nested",
			source: "**bold *both***",
			text:   "bold both",
			ranges: []bodyrange.Range{
				{Start: 5, Length: 4, Value: bodyrange.Italic},
				{Start: 0, Length: 9, Value: bodyrange.Bold},
			},
		},
		{
			name:   "strikethrough and code",
			source: "~~gone~~ `x := 1`",
			text:   "gone x := 1",
			ranges: []bodyrange.Range{
				{Start: 0, Length: 4, Value: bodyrange.Strikethrough},
				{Start: 5, Length: 6, Value: bodyrange.Monospace},
			},
		},
		{
			name:   "spoiler",
			source: "the end: ||he dies||",
			text:   "the end: he dies",
			ranges: []bodyrange.Range{
				{Start: 9, Length: 7, Value: bodyrange.SpoilerFormat},
			},
		},
		{
			name:   "single pipe is text",
			source: "a | b",
			text:   "a | b",
		},
		{
			name:   "multibyte offsets",
			source: "é **ü**",
			text:   "é ü",
			ranges: []bodyrange.Range{
				{Start: 2, Length: 1, Value: bodyrange.Bold},
			},
		},
		{
			name:   "fenced code keeps language line",
			source: "run:\n\n```python\nprint(1)\n```\n",
			text:   "run:\npython\nprint(1)",
			ranges: []bodyrange.Range{
				{Start: 5, Length: 15, Value: bodyrange.Monospace},
			},
		},
		{
			name:   "list",
			source: "- one\n- two\n",
			text:   "- one\n- two",
		},
		{
			name:   "link keeps label",
			source: "[docs](https://go.dev) <https://a.co>",
			text:   "docs https://a.co",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := wire.DecodeMarkdown([]byte(tt.source))
			assert.Equal(t, tt.text, msg.Text)
			if diff := cmp.Diff(tt.ranges, msg.Formatting); diff != "" {
				t.Errorf("ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
