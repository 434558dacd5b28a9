package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foundermatch/internal/config"
)

func TestSignedURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "k" {
			t.Errorf("unexpected api key header: %s", got)
		}
		if got := r.URL.Query().Get("agent_id"); got != "agent-1" {
			t.Errorf("unexpected agent id: %s", got)
		}
		_, _ = w.Write([]byte(`{"signed_url": "wss://example.test/session?token=abc"}`))
	}))
	defer server.Close()

	broker := NewElevenLabsBroker(config.VoiceConfig{BaseURL: server.URL, APIKey: "k", AgentID: "agent-1"})

	url, err := broker.SignedURL(context.Background())
	if err != nil {
		t.Fatalf("SignedURL error: %v", err)
	}
	if url != "wss://example.test/session?token=abc" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestSignedURLProviderError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "agent not found", http.StatusNotFound)
	}))
	defer server.Close()

	broker := NewElevenLabsBroker(config.VoiceConfig{BaseURL: server.URL, APIKey: "k", AgentID: "missing"})

	_, err := broker.SignedURL(context.Background())
	if err == nil {
		t.Fatal("expected provider error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "agent not found") {
		t.Fatalf("error should capture status and body: %v", err)
	}
}

func TestSignedURLMissingCredentials(t *testing.T) {
	t.Parallel()

	broker := NewElevenLabsBroker(config.VoiceConfig{BaseURL: "http://localhost:1"})

	if _, err := broker.SignedURL(context.Background()); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}
