package interview

import (
	"context"
	"log"
	"strings"

	"github.com/lukasbauer/interviewer/internal/llm"
)

// endPhrase ends the interview immediately when the candidate says exactly
// this, after trimming and lowercasing. Substring matches do not count.
const endPhrase = "i am done."

func userRequestsEnd(text string) bool {
	return strings.ToLower(strings.TrimSpace(text)) == endPhrase
}

// EndClassifier asks the language model whether an utterance expresses the
// intent to end the conversation.
type EndClassifier struct {
	llm    llm.Client
	logger *log.Logger
}

func NewEndClassifier(client llm.Client, logger *log.Logger) *EndClassifier {
	return &EndClassifier{llm: client, logger: logger}
}

// WantsToEnd returns true only when the model answers with the affirmative
// token. Errors and anything else mean the conversation continues.
func (c *EndClassifier) WantsToEnd(ctx context.Context, utterance string) bool {
	reply, err := c.llm.Complete(ctx, "", []llm.Message{
		{Role: "user", Content: llm.EndCheckPrompt(utterance)},
	})
	if err != nil {
		c.logger.Printf("end check failed, continuing: %v", err)
		return false
	}
	// Strict contract: anything but the bare affirmative token, including
	// punctuated variants, means the conversation continues.
	return strings.ToLower(strings.TrimSpace(reply)) == llm.EndAffirmativeToken
}
