package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

const deepgramListenURL = "https://api.deepgram.com/v1/listen"

// DeepgramClient implements the Client interface using Deepgram's
// prerecorded transcription API. The interview records finished WAV
// artifacts, so the batch endpoint fits better than the streaming one.
type DeepgramClient struct {
	apiKey     string
	model      string
	language   string
	httpClient *http.Client
}

// DeepgramConfig holds configuration for the Deepgram client.
type DeepgramConfig struct {
	APIKey     string
	Model      string // e.g. "nova-3"
	Language   string // e.g. "en"
	HTTPClient *http.Client
}

// deepgramResponse is the subset of the prerecorded API response we read.
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// NewDeepgramClient creates a new Deepgram prerecorded STT client.
func NewDeepgramClient(cfg DeepgramConfig) *DeepgramClient {
	model := cfg.Model
	if model == "" {
		model = "nova-3"
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DeepgramClient{
		apiKey:     cfg.APIKey,
		model:      model,
		language:   language,
		httpClient: httpClient,
	}
}

// Transcribe uploads the WAV file at audioPath and returns the transcript of
// the first channel's best alternative. A silent recording transcribes to "".
func (c *DeepgramClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", c.model)
	q.Set("language", c.language)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")

	req, err := http.NewRequestWithContext(ctx, "POST", deepgramListenURL+"?"+q.Encode(), f)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Deepgram API error: %s - %s", resp.Status, string(respBody))
	}

	var dgResp deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dgResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(dgResp.Results.Channels) == 0 || len(dgResp.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return dgResp.Results.Channels[0].Alternatives[0].Transcript, nil
}
