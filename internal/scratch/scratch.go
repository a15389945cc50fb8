// Package scratch manages transient audio artifacts on disk.
package scratch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Kind identifies the artifact type a name is reserved for.
type Kind int

const (
	KindRecording Kind = iota // microphone capture, WAV
	KindSpeech                // synthesized speech, MP3
)

const (
	recordingPattern = "recording-*.wav"
	speechPattern    = "speech-*.mp3"

	deleteAttempts = 5
	deleteBackoff  = 100 * time.Millisecond
)

// Manager issues unique artifact names under a single directory and removes
// them best-effort. Audio backends on some platforms hold file handles
// slightly past the logical end of playback, so Delete retries before giving
// up and leaving the file for a later Sweep.
type Manager struct {
	dir    string
	logger *log.Logger
	seq    atomic.Uint64
}

// New creates a Manager rooted at dir, creating it if needed.
func New(dir string, logger *log.Logger) (*Manager, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Manager{dir: dir, logger: logger}, nil
}

// Dir returns the directory artifacts are placed in.
func (m *Manager) Dir() string {
	return m.dir
}

// ReserveName returns a path that is unique within this process even under
// rapid sequential issuance. The timestamp keeps names recognizable for
// Sweep; the sequence disambiguates same-nanosecond calls.
func (m *Manager) ReserveName(kind Kind) string {
	seq := m.seq.Add(1)
	ts := time.Now().UnixNano()
	switch kind {
	case KindSpeech:
		return filepath.Join(m.dir, fmt.Sprintf("speech-%d-%d.mp3", ts, seq))
	default:
		return filepath.Join(m.dir, fmt.Sprintf("recording-%d-%d.wav", ts, seq))
	}
}

// Delete removes path best-effort. A missing file is a no-op. On failure it
// retries up to deleteAttempts with a short backoff, then logs a warning and
// gives up; it never reports an error to the caller.
func (m *Manager) Delete(path string) {
	var lastErr error
	for attempt := 0; attempt < deleteAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(deleteBackoff)
		}
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return
		}
		lastErr = err
	}
	m.logger.Printf("scratch: could not delete %s, leaving for sweep: %v", path, lastErr)
}

// Sweep removes every artifact of both kinds in the scratch directory.
// Run at session start and session end.
func (m *Manager) Sweep() {
	for _, pattern := range []string{recordingPattern, speechPattern} {
		matches, err := filepath.Glob(filepath.Join(m.dir, pattern))
		if err != nil {
			m.logger.Printf("scratch: sweep glob %s: %v", pattern, err)
			continue
		}
		for _, path := range matches {
			m.Delete(path)
		}
	}
}
