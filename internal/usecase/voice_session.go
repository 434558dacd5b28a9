package usecase

import (
	"context"
	"fmt"
	"strings"

	"foundermatch/internal/domain"
	"foundermatch/internal/ports"
)

// SessionGrant is everything the browser needs to open a voice session.
// Empty overrides mean the remote agent keeps its default configuration.
type SessionGrant struct {
	SignedURL            string
	PromptOverride       string
	FirstMessageOverride string
}

// VoiceSession brokers signed session URLs and personalizes the agent with
// a prior deck analysis when one is supplied.
type VoiceSession struct {
	broker ports.VoiceBroker
}

// NewVoiceSession wires the provider broker.
func NewVoiceSession(broker ports.VoiceBroker) *VoiceSession {
	return &VoiceSession{broker: broker}
}

// Start fetches a signed URL and, when deck is non-nil, derives the two
// per-call overrides from it.
func (v *VoiceSession) Start(ctx context.Context, deck *domain.DeckAnalysis) (SessionGrant, error) {
	signedURL, err := v.broker.SignedURL(ctx)
	if err != nil {
		return SessionGrant{}, fmt.Errorf("start voice session: %w", err)
	}

	grant := SessionGrant{SignedURL: signedURL}
	if deck != nil {
		grant.PromptOverride = buildPromptOverride(*deck)
		grant.FirstMessageOverride = buildFirstMessage(*deck)
	}

	return grant, nil
}

func buildPromptOverride(deck domain.DeckAnalysis) string {
	var b strings.Builder

	b.WriteString("You are an experienced venture partner conducting a voice conversation with a founder whose pitch deck you have already reviewed.\n\n")
	b.WriteString("Deck analysis on file:\n")
	fmt.Fprintf(&b, "Company: %s\n", deck.CompanyName)
	fmt.Fprintf(&b, "Summary: %s\n", deck.Summary)
	fmt.Fprintf(&b, "Thesis: %s\n", deck.Thesis)
	fmt.Fprintf(&b, "Market size: %s\n", deck.MarketSize)
	fmt.Fprintf(&b, "Readiness score: %d\n", deck.ReadinessScore)

	if len(deck.StrongPoints) > 0 {
		b.WriteString("Strong points:\n")
		for _, point := range deck.StrongPoints {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}
	if len(deck.RedFlags) > 0 {
		b.WriteString("Red flags:\n")
		for _, flag := range deck.RedFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
	}

	b.WriteString("\nYour top three questions for this founder:\n")
	for i, question := range topN(deck.TopQuestions, 3) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, question)
	}

	b.WriteString("\nWork through the questions conversationally, probe the red flags gently, and keep answers grounded in the deck above.")

	return b.String()
}

func buildFirstMessage(deck domain.DeckAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi! I just went through the %s deck", deck.CompanyName)
	if deck.Summary != "" {
		fmt.Fprintf(&b, " - %s", deck.Summary)
	}
	b.WriteString(".")
	if len(deck.StrongPoints) > 0 {
		fmt.Fprintf(&b, " I was impressed by this: %s.", deck.StrongPoints[0])
	}
	if len(deck.TopQuestions) > 0 {
		fmt.Fprintf(&b, " Let me start with my biggest question: %s", deck.TopQuestions[0])
	}

	return b.String()
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
