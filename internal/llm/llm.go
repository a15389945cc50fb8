package llm

import "context"

// Message represents a conversation message.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Client defines the interface for chat-completion providers. Each call is
// stateless: the caller supplies the full history every time.
type Client interface {
	// Complete generates the next assistant reply for the conversation.
	// system is the session-level instruction and may be empty.
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}
