package scratch

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestReserveName_Unique(t *testing.T) {
	m := newTestManager(t)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		name := m.ReserveName(KindRecording)
		if _, dup := seen[name]; dup {
			t.Fatalf("ReserveName returned duplicate %q on iteration %d", name, i)
		}
		seen[name] = struct{}{}
	}
}

func TestReserveName_KindDeterminesExtension(t *testing.T) {
	m := newTestManager(t)

	t.Run("recording", func(t *testing.T) {
		name := filepath.Base(m.ReserveName(KindRecording))
		if !strings.HasPrefix(name, "recording-") || !strings.HasSuffix(name, ".wav") {
			t.Errorf("recording name = %q, want recording-*.wav", name)
		}
	})

	t.Run("speech", func(t *testing.T) {
		name := filepath.Base(m.ReserveName(KindSpeech))
		if !strings.HasPrefix(name, "speech-") || !strings.HasSuffix(name, ".mp3") {
			t.Errorf("speech name = %q, want speech-*.mp3", name)
		}
	})
}

func TestDelete_Idempotent(t *testing.T) {
	m := newTestManager(t)

	path := m.ReserveName(KindRecording)
	if err := os.WriteFile(path, []byte("pcm"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m.Delete(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still exists after Delete: %v", err)
	}

	// Deleting again, and deleting a path that never existed, must be no-ops.
	m.Delete(path)
	m.Delete(filepath.Join(m.Dir(), "recording-never-existed.wav"))
}

func TestSweep_RemovesBothKinds(t *testing.T) {
	m := newTestManager(t)

	rec := m.ReserveName(KindRecording)
	sp := m.ReserveName(KindSpeech)
	for _, p := range []string{rec, sp} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	// Unrelated files survive the sweep.
	keep := filepath.Join(m.Dir(), "notes.txt")
	if err := os.WriteFile(keep, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m.Sweep()

	for _, p := range []string{rec, sp} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s survived sweep", p)
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("unrelated file removed by sweep: %v", err)
	}
}

func TestSweep_EmptyDirIsNoop(t *testing.T) {
	m := newTestManager(t)
	m.Sweep()
}
