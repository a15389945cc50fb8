package llm

import "fmt"

// DefaultPersona is the fallback system prompt used when no persona file is
// configured. Real deployments load a role-specific persona from disk.
const DefaultPersona = `You are a professional job interviewer conducting a spoken screening interview.

YOUR TASK:
1. Greet the candidate and keep the conversation moving
2. Ask one question at a time about their background and experience
3. Follow up on interesting answers before moving on
4. Close politely when the interview is over

RULES:
- Your replies are spoken aloud, so keep them to 1-2 short sentences
- Never ask more than one question in a single turn
- Be patient; some candidates need time to answer
- Do not skip the usual interview formalities`

// InterviewDirective is appended verbatim to the persona once the difficulty
// label has been collected at startup.
const interviewDirective = `Begin the interview. You are the interviewer and I am the interviewee. Please be very concise as the interviewer in your answers but do not skip the formalities. Use this opportunity to pick up on interviewee social cues. Keep in mind time is limited and make this interview %s.`

// InterviewDirective returns the session directive for a difficulty label.
func InterviewDirective(difficulty string) string {
	return fmt.Sprintf(interviewDirective, difficulty)
}

// endCheckPrompt asks for a strict binary judgment on whether the speaker
// wants to end the conversation. The response contract is exactly one of the
// two tokens below; anything else is treated as "continue".
const endCheckPrompt = `Given this response, %s, does it seem like the person wants to end the conversation immediately? Only give a 'yes' or a 'no' in that exact format.`

// EndCheckPrompt returns the binary end-of-conversation judgment prompt for
// an utterance.
func EndCheckPrompt(utterance string) string {
	return fmt.Sprintf(endCheckPrompt, utterance)
}

// EndAffirmativeToken is the only reply token that counts as "wants to end".
const EndAffirmativeToken = "yes"

// ApologyReply is spoken when chat completion fails so the conversation can
// continue instead of crashing the turn.
const ApologyReply = "I'm sorry, I didn't catch that."
