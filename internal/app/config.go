package app

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL string
	SentryDSN   string

	// Voice AI providers
	DeepgramAPIKey   string
	OpenAIAPIKey     string
	ElevenLabsAPIKey string

	// Model settings
	OpenAIModel string
	STTModel    string
	STTLanguage string

	// Voice settings
	TTSVoiceID    string // ElevenLabs voice ID
	TTSModelID    string
	TTSStability  float64
	TTSSimilarity float64

	// Capture tuning
	SampleRate        int
	TrailingSilenceMs int // silence after speech that finalizes an utterance
	LeadingBoundMs    int // give-up bound when no speech arrives
	MaxRecordingSecs  int

	// Local paths
	PersonaPath    string
	TranscriptPath string
	ScratchDir     string
}

func LoadConfigFromEnv() Config {
	return Config{
		DatabaseURL: getenv("DATABASE_URL", ""),
		SentryDSN:   getenv("SENTRY_DSN", ""),

		// Voice AI providers
		DeepgramAPIKey:   getenv("DEEPGRAM_API_KEY", ""),
		OpenAIAPIKey:     getenv("OPENAI_API_KEY", ""),
		ElevenLabsAPIKey: getenv("ELEVENLABS_API_KEY", ""),

		// Model settings
		OpenAIModel: getenv("OPENAI_MODEL", ""),
		STTModel:    getenv("STT_MODEL", ""),
		STTLanguage: getenv("STT_LANGUAGE", ""),

		// Voice settings
		TTSVoiceID:    getenv("TTS_VOICE_ID", ""),
		TTSModelID:    getenv("TTS_MODEL_ID", ""),
		TTSStability:  getenvFloatClamped("TTS_STABILITY", 0.5, 0.0, 1.0),
		TTSSimilarity: getenvFloatClamped("TTS_SIMILARITY", 0.75, 0.0, 1.0),

		// Capture tuning
		SampleRate:        getenvIntClamped("CAPTURE_SAMPLE_RATE", 16000, 8000, 48000),
		TrailingSilenceMs: getenvIntClamped("CAPTURE_TRAILING_SILENCE_MS", 1500, 300, 10000),
		LeadingBoundMs:    getenvIntClamped("CAPTURE_LEADING_BOUND_MS", 10000, 1000, 60000),
		MaxRecordingSecs:  getenvIntClamped("CAPTURE_MAX_SECONDS", 90, 5, 600),

		// Local paths
		PersonaPath:    getenv("PERSONA_PATH", ""),
		TranscriptPath: getenv("TRANSCRIPT_PATH", "transcript.json"),
		ScratchDir:     getenv("SCRATCH_DIR", os.TempDir()),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntClamped(k string, def, min, max int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func getenvFloatClamped(k string, def, min, max float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
