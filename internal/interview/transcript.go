package interview

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lukasbauer/interviewer/internal/llm"
)

// WriteTranscript dumps the conversation history to path as indented JSON,
// in turn order, each entry a {"role", "content"} pair.
func WriteTranscript(path string, history []llm.Message) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
