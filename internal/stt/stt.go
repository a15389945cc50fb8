package stt

import "context"

// Client defines the interface for speech-to-text providers.
type Client interface {
	// Transcribe converts the recorded audio file at audioPath to text.
	// An empty transcript is a valid result for a silent recording.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
