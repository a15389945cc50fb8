// Package interview runs the spoken interview loop: capture the candidate,
// transcribe, generate a reply, decide whether the conversation is over, and
// speak the reply aloud.
package interview

import "context"

// Recorder captures one utterance from the microphone and saves it to disk.
type Recorder interface {
	RecordUntilSilence(ctx context.Context) ([][]int16, error)
	Save(frames [][]int16, path string) error
}

// Player plays a synthesized audio file through the speakers and returns
// once playback has finished and the file handle is released.
type Player interface {
	Play(path string) error
}
