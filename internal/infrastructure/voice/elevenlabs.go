package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foundermatch/internal/config"
	"foundermatch/internal/ports"
)

// ElevenLabsBroker fetches short-lived signed conversation URLs for a fixed
// agent. The caller starts the actual realtime session.
type ElevenLabsBroker struct {
	baseURL string
	apiKey  string
	agentID string
	client  *http.Client
}

var _ ports.VoiceBroker = (*ElevenLabsBroker)(nil)

// NewElevenLabsBroker wires provider credentials from configuration.
func NewElevenLabsBroker(cfg config.VoiceConfig) *ElevenLabsBroker {
	return &ElevenLabsBroker{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		agentID: cfg.AgentID,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SignedURL asks the provider for a signed session URL.
func (b *ElevenLabsBroker) SignedURL(ctx context.Context) (string, error) {
	if b.apiKey == "" || b.agentID == "" {
		return "", fmt.Errorf("voice broker misconfigured: missing api key or agent id")
	}

	endpoint := fmt.Sprintf("%s/v1/convai/conversation/get-signed-url?agent_id=%s",
		b.baseURL, url.QueryEscape(b.agentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("xi-api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get signed url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("voice provider error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		SignedURL string `json:"signed_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode signed url response: %w", err)
	}
	if parsed.SignedURL == "" {
		return "", fmt.Errorf("voice provider returned empty signed url")
	}

	return parsed.SignedURL, nil
}
