package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/spanrender/pkg/bodyrange"
	"github.com/yaklabco/spanrender/pkg/wire"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	msg, err := wire.DecodeJSON([]byte(`{
		"body": "hi @ann, look",
		"displayLength": 7,
		"bodyRanges": [
			{"start": 0, "length": 2, "style": "BOLD"},
			{"start": 9, "length": 4, "style": "spoiler"},
			{"start": 3, "length": 4, "mentionAci": "a1"},
			{"start": "x", "length": 1, "style": "ITALIC"},
			{"start": 1, "length": 1, "style": "BLINK"}
		],
		"mentions": [
			{"start": 3, "length": 4, "aci": "a1", "name": "Ann"},
			{"start": 0, "length": 2, "aci": "b2", "name": "Bo"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "hi @ann, look", msg.Text)
	assert.Equal(t, 7, msg.DisplayLength)
	assert.Equal(t, []bodyrange.Range{
		{Start: 0, Length: 2, Value: bodyrange.Bold},
		{Start: 9, Length: 4, Value: bodyrange.SpoilerFormat},
		{Start: 1, Length: 1, Value: bodyrange.Format(bodyrange.KindUnknown)},
	}, msg.Formatting)
	assert.Equal(t, []bodyrange.Range{
		{Start: 3, Length: 4, Value: bodyrange.Mention{TargetID: "a1", DisplayName: "Ann"}},
		{Start: 0, Length: 2, Value: bodyrange.Mention{TargetID: "b2", DisplayName: "Bo"}},
	}, msg.Mentions)
}

func TestDecodeJSON_TextAlias(t *testing.T) {
	t.Parallel()

	msg, err := wire.DecodeJSON([]byte(`{"text": "plain"}`))
	require.NoError(t, err)
	assert.Equal(t, "plain", msg.Text)
	assert.Empty(t, msg.Formatting)
}

func TestDecodeJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := wire.DecodeJSON([]byte(`{"body": `))
	require.ErrorIs(t, err, wire.ErrInvalidJSON)

	_, err = wire.DecodeJSON([]byte(`{"body": 12}`))
	require.ErrorIs(t, err, wire.ErrNoText)

	_, err = wire.DecodeJSON([]byte(`{}`))
	require.ErrorIs(t, err, wire.ErrNoText)
}

func TestDecodeAndSniff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", wire.Sniff([]byte("  {\"body\": \"x\"}\n")))
	assert.Equal(t, "markdown", wire.Sniff([]byte("{not json")))
	assert.Equal(t, "markdown", wire.Sniff([]byte("**hi**")))

	assert.Equal(t, "json", wire.DetectFormat("msg.JSON", []byte("**hi**")))
	assert.Equal(t, "markdown", wire.DetectFormat("notes.markdown", []byte("{}")))
	assert.Equal(t, "plain", wire.DetectFormat("a.txt", []byte("{}")))
	assert.Equal(t, "json", wire.DetectFormat("-", []byte("{}")))

	msg, err := wire.Decode("plain", []byte("**hi**"))
	require.NoError(t, err)
	assert.Equal(t, "**hi**", msg.Text)

	_, err = wire.Decode("xml", nil)
	assert.Error(t, err)
}
