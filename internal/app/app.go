// Package app wires configuration, persistence, and the voice providers into
// runnable interview sessions.
package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasbauer/interviewer/internal/audio"
	"github.com/lukasbauer/interviewer/internal/eventlog"
	"github.com/lukasbauer/interviewer/internal/interview"
	"github.com/lukasbauer/interviewer/internal/llm"
	"github.com/lukasbauer/interviewer/internal/scratch"
	"github.com/lukasbauer/interviewer/internal/store"
	"github.com/lukasbauer/interviewer/internal/stt"
	"github.com/lukasbauer/interviewer/internal/tts"
)

type App struct {
	cfg        Config
	logger     *log.Logger
	db         *pgxpool.Pool
	store      *store.Store
	eventLog   *eventlog.Logger
	httpClient *http.Client // Shared HTTP client with connection pooling for the providers
}

func New(cfg Config, logger *log.Logger) (*App, error) {
	// Postgres is optional: without DATABASE_URL sessions are not persisted
	// and event logging is skipped.
	var db *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		db = pool
	}

	// Shared HTTP client with connection pooling. Keeps TCP connections alive
	// to reduce latency for repeated calls to the same provider hosts.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		store:      store.New(db),
		eventLog:   eventlog.New(db),
		httpClient: httpClient,
	}, nil
}

// Persona returns the system prompt for the interviewer: the configured
// persona file when present, the built-in default otherwise.
func (a *App) Persona() (string, error) {
	if a.cfg.PersonaPath == "" {
		return llm.DefaultPersona, nil
	}
	data, err := os.ReadFile(a.cfg.PersonaPath)
	if err != nil {
		return "", fmt.Errorf("read persona: %w", err)
	}
	return string(data), nil
}

// NewSession assembles one interview session from the configured providers
// and audio devices.
func (a *App) NewSession(persona, difficulty string) (*interview.Session, error) {
	mgr, err := scratch.New(a.cfg.ScratchDir, a.logger)
	if err != nil {
		return nil, err
	}

	recorder := audio.NewRecorder(audio.RecorderConfig{
		SampleRate:      a.cfg.SampleRate,
		TrailingSilence: time.Duration(a.cfg.TrailingSilenceMs) * time.Millisecond,
		LeadingBound:    time.Duration(a.cfg.LeadingBoundMs) * time.Millisecond,
		MaxDuration:     time.Duration(a.cfg.MaxRecordingSecs) * time.Second,
	}, a.logger)

	return interview.NewSession(interview.SessionConfig{
		Persona:        persona,
		Difficulty:     difficulty,
		TranscriptPath: a.cfg.TranscriptPath,
		SampleRate:     a.cfg.SampleRate,
		Recorder:       recorder,
		Player:         audio.NewPlayer(a.logger),
		STT: stt.NewDeepgramClient(stt.DeepgramConfig{
			APIKey:     a.cfg.DeepgramAPIKey,
			Model:      a.cfg.STTModel,
			Language:   a.cfg.STTLanguage,
			HTTPClient: a.httpClient,
		}),
		TTS: tts.NewElevenLabsClient(tts.ElevenLabsConfig{
			APIKey:     a.cfg.ElevenLabsAPIKey,
			VoiceID:    a.cfg.TTSVoiceID,
			ModelID:    a.cfg.TTSModelID,
			Stability:  a.cfg.TTSStability,
			Similarity: a.cfg.TTSSimilarity,
			HTTPClient: a.httpClient,
		}),
		LLM: llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:     a.cfg.OpenAIAPIKey,
			Model:      a.cfg.OpenAIModel,
			HTTPClient: a.httpClient,
		}),
		Scratch: mgr,
		Events:  a.eventLog,
		Store:   a.store,
		Logger:  a.logger,
	}), nil
}

func (a *App) Close() error {
	if a.db != nil {
		a.db.Close()
	}
	return nil
}
