package costs

import (
	"testing"
)

func TestCalculateSessionCosts(t *testing.T) {
	tests := []struct {
		name    string
		metrics SessionMetrics
		want    SessionCosts
	}{
		{
			name: "typical 5 minute interview",
			metrics: SessionMetrics{
				STTDurationSeconds: 300, // candidate spoke ~5 minutes
				LLMInputTokens:     2000,
				LLMOutputTokens:    800,
				TTSCharacters:      1500,
			},
			// STT: 5 * 0.43 = 2.15 -> 2 cents
			// LLM: (2000/1000)*0.015 + (800/1000)*0.06 = 0.03 + 0.048 = 0.078 -> 0 cents
			// TTS: (1500/1000)*18 = 27 -> 27 cents
			// Total: 2 + 0 + 27 = 29 cents
			want: SessionCosts{
				STTCostCents:   2,
				LLMCostCents:   0,
				TTSCostCents:   27,
				TotalCostCents: 29,
			},
		},
		{
			name: "short exchange",
			metrics: SessionMetrics{
				STTDurationSeconds: 30,
				LLMInputTokens:     100,
				LLMOutputTokens:    50,
				TTSCharacters:      100,
			},
			// STT: 0.5 * 0.43 = 0.215 -> 0 cents
			// LLM: very small -> 0 cents
			// TTS: (100/1000)*18 = 1.8 -> 2 cents
			want: SessionCosts{
				STTCostCents:   0,
				LLMCostCents:   0,
				TTSCostCents:   2,
				TotalCostCents: 2,
			},
		},
		{
			name:    "empty session (edge case)",
			metrics: SessionMetrics{},
			want:    SessionCosts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSessionCosts(tt.metrics)
			if got.STTCostCents != tt.want.STTCostCents {
				t.Errorf("STTCostCents = %d, want %d", got.STTCostCents, tt.want.STTCostCents)
			}
			if got.LLMCostCents != tt.want.LLMCostCents {
				t.Errorf("LLMCostCents = %d, want %d", got.LLMCostCents, tt.want.LLMCostCents)
			}
			if got.TTSCostCents != tt.want.TTSCostCents {
				t.Errorf("TTSCostCents = %d, want %d", got.TTSCostCents, tt.want.TTSCostCents)
			}
			if got.TotalCostCents != tt.want.TotalCostCents {
				t.Errorf("TotalCostCents = %d, want %d", got.TotalCostCents, tt.want.TotalCostCents)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hi", 1},
		{"four", 1},
		{"hello", 2},
		{"a longer sentence with several words", 9},
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
