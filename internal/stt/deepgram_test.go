package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recording.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestNewDeepgramClient_Defaults(t *testing.T) {
	client := NewDeepgramClient(DeepgramConfig{APIKey: "test-key"})

	if client.model != "nova-3" {
		t.Errorf("model = %q, want %q", client.model, "nova-3")
	}
	if client.language != "en" {
		t.Errorf("language = %q, want %q", client.language, "en")
	}
	if client.httpClient == nil {
		t.Error("httpClient should default to a non-nil client")
	}
}

func TestTranscribe(t *testing.T) {
	t.Run("returns first alternative transcript", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Token test-key" {
				t.Errorf("Authorization = %q, want %q", got, "Token test-key")
			}
			if got := r.Header.Get("Content-Type"); got != "audio/wav" {
				t.Errorf("Content-Type = %q, want %q", got, "audio/wav")
			}
			if got := r.URL.Query().Get("model"); got != "nova-3" {
				t.Errorf("model query = %q, want %q", got, "nova-3")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"results": map[string]any{
					"channels": []map[string]any{{
						"alternatives": []map[string]any{{
							"transcript": "Tell me about yourself.",
							"confidence": 0.97,
						}},
					}},
				},
			})
		}))
		defer srv.Close()

		client := NewDeepgramClient(DeepgramConfig{APIKey: "test-key"})
		client.httpClient = &http.Client{Transport: rewriteTransport{srv.URL}}

		got, err := client.Transcribe(context.Background(), writeTempWAV(t))
		if err != nil {
			t.Fatalf("Transcribe() error = %v", err)
		}
		if got != "Tell me about yourself." {
			t.Errorf("Transcribe() = %q, want %q", got, "Tell me about yourself.")
		}
	})

	t.Run("empty channels means empty transcript", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"results": map[string]any{"channels": []any{}}})
		}))
		defer srv.Close()

		client := NewDeepgramClient(DeepgramConfig{APIKey: "test-key"})
		client.httpClient = &http.Client{Transport: rewriteTransport{srv.URL}}

		got, err := client.Transcribe(context.Background(), writeTempWAV(t))
		if err != nil {
			t.Fatalf("Transcribe() error = %v", err)
		}
		if got != "" {
			t.Errorf("Transcribe() = %q, want empty", got)
		}
	})

	t.Run("non-200 surfaces an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewDeepgramClient(DeepgramConfig{APIKey: "bad"})
		client.httpClient = &http.Client{Transport: rewriteTransport{srv.URL}}

		if _, err := client.Transcribe(context.Background(), writeTempWAV(t)); err == nil {
			t.Fatal("Transcribe() error = nil, want error")
		}
	})

	t.Run("missing file surfaces an error", func(t *testing.T) {
		client := NewDeepgramClient(DeepgramConfig{APIKey: "test-key"})
		if _, err := client.Transcribe(context.Background(), "does-not-exist.wav"); err == nil {
			t.Fatal("Transcribe() error = nil, want error")
		}
	})
}

// rewriteTransport redirects every request to the test server.
type rewriteTransport struct {
	base string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := req.URL.Parse(rt.base)
	if err != nil {
		return nil, err
	}
	req.URL.Scheme = target.Scheme
	req.URL.Host = target.Host
	return http.DefaultTransport.RoundTrip(req)
}
