package interview

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lukasbauer/interviewer/internal/costs"
	"github.com/lukasbauer/interviewer/internal/eventlog"
	"github.com/lukasbauer/interviewer/internal/llm"
	"github.com/lukasbauer/interviewer/internal/scratch"
	"github.com/lukasbauer/interviewer/internal/store"
	"github.com/lukasbauer/interviewer/internal/stt"
	"github.com/lukasbauer/interviewer/internal/tts"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// SessionConfig wires the collaborators one interview needs.
type SessionConfig struct {
	Persona        string
	Difficulty     string
	TranscriptPath string
	SampleRate     int // capture sample rate, used for cost accounting

	Recorder Recorder
	Player   Player
	STT      stt.Client
	TTS      tts.Client
	LLM      llm.Client
	Scratch  *scratch.Manager
	Events   *eventlog.Logger
	Store    *store.Store
	Logger   *log.Logger
}

// Session drives one interview from greeting to termination.
type Session struct {
	id         string
	cfg        SessionConfig
	classifier *EndClassifier
	history    []llm.Message
	metrics    costs.SessionMetrics
	logger     *log.Logger
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &Session{
		id:         fmt.Sprintf("interview-%d", time.Now().UnixNano()),
		cfg:        cfg,
		classifier: NewEndClassifier(cfg.LLM, cfg.Logger),
		logger:     cfg.Logger,
	}
}

// ID returns the session identifier used for persistence and event logging.
func (s *Session) ID() string {
	return s.id
}

// Run executes the capture/transcribe/reply/speak loop until one side ends
// the conversation or the context is cancelled. Audio device failures are
// fatal; provider failures degrade the turn and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	s.cfg.Scratch.Sweep()
	if err := s.cfg.Store.InsertSession(ctx, store.Session{
		ID:         s.id,
		Persona:    s.cfg.Persona,
		Difficulty: s.cfg.Difficulty,
		StartedAt:  time.Now(),
	}); err != nil {
		s.logger.Printf("session %s: insert session: %v", s.id, err)
	}
	s.cfg.Events.LogAsync(s.id, eventlog.EventSessionStarted, map[string]any{
		"difficulty": s.cfg.Difficulty,
	})

	for {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, "cancelled", err)
		}

		text, err := s.captureTurn(ctx)
		if err != nil {
			return s.finish(ctx, "error", err)
		}

		// An empty transcript is still a turn: it enters history and gets
		// the same termination checks as any other utterance.
		s.appendTurn(ctx, roleUser, text)

		if s.userEnds(ctx, text) {
			return s.finish(ctx, roleUser, nil)
		}

		reply := s.reply(ctx)
		s.appendTurn(ctx, roleAssistant, reply)

		assistantEnds := s.classifier.WantsToEnd(ctx, reply)
		if assistantEnds {
			s.cfg.Events.LogAsync(s.id, eventlog.EventEndIntentJudged, map[string]any{
				"speaker": roleAssistant,
			})
		}

		// The reply is always spoken, including the final one.
		s.speak(ctx, reply)

		if assistantEnds {
			return s.finish(ctx, roleAssistant, nil)
		}
	}
}

// captureTurn records one utterance, transcribes it, and removes the
// recording artifact. Device and filesystem errors are returned; provider
// errors yield an empty transcript.
func (s *Session) captureTurn(ctx context.Context) (string, error) {
	frames, err := s.cfg.Recorder.RecordUntilSilence(ctx)
	if err != nil {
		return "", fmt.Errorf("record: %w", err)
	}
	if len(frames) == 0 {
		return "", nil
	}

	path := s.cfg.Scratch.ReserveName(scratch.KindRecording)
	if err := s.cfg.Recorder.Save(frames, path); err != nil {
		return "", fmt.Errorf("save recording: %w", err)
	}
	defer s.cfg.Scratch.Delete(path)
	s.cfg.Events.LogAsync(s.id, eventlog.EventRecordingSaved, map[string]any{"path": path})

	samples := 0
	for _, chunk := range frames {
		samples += len(chunk)
	}
	s.metrics.STTDurationSeconds += samples / s.cfg.SampleRate

	text, err := s.cfg.STT.Transcribe(ctx, path)
	if err != nil {
		s.logger.Printf("session %s: transcription failed: %v", s.id, err)
		s.cfg.Events.LogAsync(s.id, eventlog.EventSTTError, map[string]any{"error": err.Error()})
		return "", nil
	}
	text = strings.TrimSpace(text)
	s.cfg.Events.LogAsync(s.id, eventlog.EventSTTResult, map[string]any{"chars": len(text)})
	return text, nil
}

// userEnds applies both termination paths for a candidate turn: the literal
// end phrase, then the model judgment.
func (s *Session) userEnds(ctx context.Context, text string) bool {
	if userRequestsEnd(text) {
		s.cfg.Events.LogAsync(s.id, eventlog.EventEndPhraseMatched, nil)
		return true
	}
	if s.classifier.WantsToEnd(ctx, text) {
		s.cfg.Events.LogAsync(s.id, eventlog.EventEndIntentJudged, map[string]any{
			"speaker": roleUser,
		})
		return true
	}
	return false
}

// reply asks the model for the next interviewer line. On failure the session
// falls back to a spoken apology so the conversation keeps moving.
func (s *Session) reply(ctx context.Context) string {
	for _, m := range s.history {
		s.metrics.LLMInputTokens += costs.EstimateTokens(m.Content)
	}
	s.metrics.LLMInputTokens += costs.EstimateTokens(s.cfg.Persona)

	reply, err := s.cfg.LLM.Complete(ctx, s.cfg.Persona, s.history)
	if err != nil {
		s.logger.Printf("session %s: completion failed: %v", s.id, err)
		s.cfg.Events.LogAsync(s.id, eventlog.EventLLMError, map[string]any{"error": err.Error()})
		return llm.ApologyReply
	}
	s.metrics.LLMOutputTokens += costs.EstimateTokens(reply)
	s.cfg.Events.LogAsync(s.id, eventlog.EventLLMCompleted, map[string]any{"chars": len(reply)})
	return reply
}

func (s *Session) appendTurn(ctx context.Context, role, content string) {
	s.history = append(s.history, llm.Message{Role: role, Content: content})
	if err := s.cfg.Store.InsertUtterance(ctx, s.id, store.Utterance{
		Speaker:  role,
		Text:     content,
		Sequence: len(s.history),
	}); err != nil {
		s.logger.Printf("session %s: insert utterance: %v", s.id, err)
	}
	s.cfg.Events.LogAsync(s.id, eventlog.EventTurnFinalized, map[string]any{"speaker": role})
}

// speak synthesizes text, plays it, and removes the audio artifact once the
// player has released the file. Synthesis or playback failures skip the
// spoken output but never abort the session.
func (s *Session) speak(ctx context.Context, text string) {
	s.metrics.TTSCharacters += len(text)

	audio, err := s.cfg.TTS.Synthesize(ctx, text)
	if err != nil {
		s.logger.Printf("session %s: synthesis failed, skipping playback: %v", s.id, err)
		s.cfg.Events.LogAsync(s.id, eventlog.EventTTSError, map[string]any{"error": err.Error()})
		return
	}

	path := s.cfg.Scratch.ReserveName(scratch.KindSpeech)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		s.logger.Printf("session %s: write speech artifact: %v", s.id, err)
		return
	}
	defer s.cfg.Scratch.Delete(path)

	if err := s.cfg.Player.Play(path); err != nil {
		s.logger.Printf("session %s: playback failed: %v", s.id, err)
		return
	}
	s.cfg.Events.LogAsync(s.id, eventlog.EventPlaybackFinished, nil)
}

// finish persists the transcript, sweeps scratch artifacts, records who
// ended the session, and logs a cost summary.
func (s *Session) finish(ctx context.Context, endedBy string, cause error) error {
	if s.cfg.TranscriptPath != "" && len(s.history) > 0 {
		if err := WriteTranscript(s.cfg.TranscriptPath, s.history); err != nil {
			s.logger.Printf("session %s: %v", s.id, err)
		}
	}
	s.cfg.Scratch.Sweep()

	if err := s.cfg.Store.EndSession(ctx, s.id, endedBy, time.Now()); err != nil {
		s.logger.Printf("session %s: end session: %v", s.id, err)
	}

	c := costs.CalculateSessionCosts(s.metrics)
	s.logger.Printf("session %s ended by %s after %d turns, estimated cost %d cents (stt %d, llm %d, tts %d)",
		s.id, endedBy, len(s.history), c.TotalCostCents, c.STTCostCents, c.LLMCostCents, c.TTSCostCents)
	s.cfg.Events.LogAsync(s.id, eventlog.EventSessionEnded, map[string]any{
		"ended_by":         endedBy,
		"turns":            len(s.history),
		"total_cost_cents": c.TotalCostCents,
	})
	return cause
}

// History returns the conversation so far, alternating user and assistant
// turns starting with the user.
func (s *Session) History() []llm.Message {
	return s.history
}
