// Package audio provides microphone capture and speaker playback for a
// single interview session.
package audio

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gordonklaus/portaudio"
)

// RecorderConfig holds capture settings. Zero values take defaults.
type RecorderConfig struct {
	SampleRate      int           // samples per second, default 16000
	ChunkSize       int           // samples per read, default 800 (~50ms)
	TrailingSilence time.Duration // silence after speech that ends an utterance, default 1.5s
	LeadingBound    time.Duration // give-up bound when no speech arrives at all, default 10s
	MaxDuration     time.Duration // hard safety bound per recording, default 90s
}

func (c RecorderConfig) withDefaults() RecorderConfig {
	if c.SampleRate == 0 {
		c.SampleRate = 16000
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 800
	}
	if c.TrailingSilence == 0 {
		c.TrailingSilence = 1500 * time.Millisecond
	}
	if c.LeadingBound == 0 {
		c.LeadingBound = 10 * time.Second
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = 90 * time.Second
	}
	return c
}

// Recorder captures microphone audio in fixed-size chunks until the speaker
// falls silent. portaudio.Initialize must have been called first.
type Recorder struct {
	cfg    RecorderConfig
	logger *log.Logger
}

// NewRecorder creates a Recorder with defaults applied.
func NewRecorder(cfg RecorderConfig, logger *log.Logger) *Recorder {
	return &Recorder{cfg: cfg.withDefaults(), logger: logger}
}

// RecordUntilSilence blocks reading the default input device until the
// energy detector reports the utterance finished, no speech arrived within
// the leading bound, or the max-duration safety bound is hit. A silent or
// near-silent recording is a valid result; device-open failure is not.
func (r *Recorder) RecordUntilSilence(ctx context.Context) ([][]int16, error) {
	buf := make([]int16, r.cfg.ChunkSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(r.cfg.SampleRate), len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start input stream: %w", err)
	}
	defer stream.Stop()

	return r.captureLoop(ctx, func() ([]int16, error) {
		if err := stream.Read(); err != nil {
			return nil, err
		}
		chunk := make([]int16, len(buf))
		copy(chunk, buf)
		return chunk, nil
	})
}

// captureLoop accumulates chunks from read until a termination bound fires.
// The elapsed bounds apply on every iteration, so a device that keeps
// erroring after opening still terminates at the leading or max-duration
// bound instead of spinning forever.
func (r *Recorder) captureLoop(ctx context.Context, read func() ([]int16, error)) ([][]int16, error) {
	chunkDur := time.Duration(r.cfg.ChunkSize) * time.Second / time.Duration(r.cfg.SampleRate)
	detector := newEnergyDetector(int(r.cfg.TrailingSilence / chunkDur))

	var frames [][]int16
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		chunk, err := read()
		if err != nil {
			// Overflows happen when the host was busy; drop the chunk and
			// keep going rather than aborting the whole turn. Sleep one
			// chunk so a persistent failure does not spin the CPU.
			r.logger.Printf("audio: input read: %v", err)
			time.Sleep(chunkDur)
		} else {
			frames = append(frames, chunk)
			detector.Feed(chunk)
		}

		elapsed := time.Since(start)
		switch {
		case detector.SpeechSeen() && !detector.inSpeech:
			return frames, nil
		case !detector.SpeechSeen() && elapsed >= r.cfg.LeadingBound:
			return frames, nil
		case elapsed >= r.cfg.MaxDuration:
			r.logger.Printf("audio: recording hit max duration %s", r.cfg.MaxDuration)
			return frames, nil
		}
	}
}

// Save writes frames to path as mono 16-bit PCM WAV at the configured rate.
func (r *Recorder) Save(frames [][]int16, path string) error {
	return writeWAV(path, frames, r.cfg.SampleRate)
}
