package fragset

import (
	"encoding/json"
	"fmt"
)

// extractionPromptFormat is the user turn of every chat example. The HTML is
// interpolated verbatim; the assistant turn is the expected JSON.
const extractionPromptFormat = `Extract structured data from the following HTML and return it as JSON.

HTML:
%s

Return a JSON object whose "type" field identifies the fragment's schema, with all fields that schema defines.`

// NewChatExample converts one golden example into the chat message format
// consumed by the fine-tuning collaborator.
func NewChatExample(example *GoldenExample) (*ChatExample, error) {
	if err := example.Validate(); err != nil {
		return nil, err
	}

	expected, err := json.MarshalIndent(example.ExpectedJSON, "", "  ")
	if err != nil {
		return nil, Errorf(EINTERNAL, "marshal expected JSON: %v", err)
	}

	return &ChatExample{
		Messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(extractionPromptFormat, example.ExampleHTML)},
			{Role: "assistant", Content: string(expected)},
		},
	}, nil
}

// ConvertToChat converts a full partition, preserving order.
func ConvertToChat(examples []*GoldenExample) ([]*ChatExample, error) {
	out := make([]*ChatExample, 0, len(examples))
	for i, example := range examples {
		chat, err := NewChatExample(example)
		if err != nil {
			return nil, Errorf(ErrorCode(err), "example %d: %s", i, ErrorMessage(err))
		}
		out = append(out, chat)
	}
	return out, nil
}
