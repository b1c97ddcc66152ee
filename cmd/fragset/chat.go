package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mzalewski/fragset"
	"github.com/mzalewski/fragset/fs"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	conversions := []struct {
		inFile  string
		outFile string
	}{
		{trainFile, "train_chat.jsonl"},
		{testFile, "test_chat.jsonl"},
	}

	for _, conv := range conversions {
		examples, err := fs.ReadGolden(filepath.Join(c.Dir, conv.inFile))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
			return err
		}

		chats, err := fragset.ConvertToChat(examples)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", fragset.ErrorMessage(err))
			return err
		}

		path := filepath.Join(c.Dir, conv.outFile)
		if err := writeChatLines(path, chats); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d examples\n", path, len(chats))
	}

	return nil
}

// writeChatLines serializes chat examples as JSON Lines.
func writeChatLines(path string, examples []*fragset.ChatExample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, example := range examples {
		line, err := example.MarshalLine()
		if err != nil {
			f.Close()
			return err
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
