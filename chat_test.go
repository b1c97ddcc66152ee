package fragset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzalewski/fragset"
)

func TestNewChatExample(t *testing.T) {
	t.Parallel()

	t.Run("builds a two-turn conversation", func(t *testing.T) {
		t.Parallel()

		example := &fragset.GoldenExample{
			ExampleHTML:  `<div class="recipe"><h1>Pancakes</h1></div>`,
			ExpectedJSON: map[string]any{"type": "recipe", "name": "Pancakes"},
		}

		chat, err := fragset.NewChatExample(example)

		require.NoError(t, err)
		require.Len(t, chat.Messages, 2)

		assert.Equal(t, "user", chat.Messages[0].Role)
		assert.Contains(t, chat.Messages[0].Content, "Extract structured data from the following HTML")
		assert.Contains(t, chat.Messages[0].Content, example.ExampleHTML)

		assert.Equal(t, "assistant", chat.Messages[1].Role)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(chat.Messages[1].Content), &decoded))
		assert.Equal(t, example.ExpectedJSON, decoded)
	})

	t.Run("rejects malformed golden examples", func(t *testing.T) {
		t.Parallel()

		_, err := fragset.NewChatExample(&fragset.GoldenExample{ExampleHTML: "<div>x</div>"})

		require.Error(t, err)
		assert.Equal(t, fragset.EINVALID, fragset.ErrorCode(err))
	})
}

func TestConvertToChat(t *testing.T) {
	t.Parallel()

	t.Run("converts a partition preserving order", func(t *testing.T) {
		t.Parallel()

		examples := []*fragset.GoldenExample{
			{ExampleHTML: "<div>A</div>", ExpectedJSON: map[string]any{"type": "product", "name": "A"}},
			{ExampleHTML: "<div>B</div>", ExpectedJSON: map[string]any{"type": "recipe", "name": "B"}},
		}

		chats, err := fragset.ConvertToChat(examples)

		require.NoError(t, err)
		require.Len(t, chats, 2)
		assert.Contains(t, chats[0].Messages[0].Content, "<div>A</div>")
		assert.Contains(t, chats[1].Messages[0].Content, "<div>B</div>")
	})

	t.Run("names the offending example on failure", func(t *testing.T) {
		t.Parallel()

		examples := []*fragset.GoldenExample{
			{ExampleHTML: "<div>A</div>", ExpectedJSON: map[string]any{"type": "product"}},
			{ExampleHTML: ""},
		}

		_, err := fragset.ConvertToChat(examples)

		require.Error(t, err)
		assert.Contains(t, fragset.ErrorMessage(err), "example 1")
	})

	t.Run("marshals as one JSON line", func(t *testing.T) {
		t.Parallel()

		chat := &fragset.ChatExample{Messages: []fragset.ChatMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "{}"},
		}}

		line, err := chat.MarshalLine()

		require.NoError(t, err)
		assert.NotContains(t, string(line), "\n")
		assert.Contains(t, string(line), `"messages"`)
	})
}
