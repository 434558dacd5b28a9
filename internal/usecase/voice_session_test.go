package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"foundermatch/internal/domain"
)

type fakeBroker struct {
	url string
	err error
}

func (f *fakeBroker) SignedURL(context.Context) (string, error) {
	return f.url, f.err
}

func sampleDeck() *domain.DeckAnalysis {
	return &domain.DeckAnalysis{
		CompanyName:    "Acme Robotics",
		Summary:        "warehouse robots for mid-size logistics",
		Thesis:         "labor shortages make automation inevitable",
		MarketSize:     "$12B serviceable",
		ReadinessScore: 7,
		StrongPoints:   []string{"working prototype in two pilot warehouses", "strong technical team"},
		RedFlags:       []string{"no sales hire yet"},
		TopQuestions:   []string{"What is the pilot conversion rate?", "How defensible is the hardware?", "Why now?", "What about China?"},
	}
}

func TestStartWithoutDeck(t *testing.T) {
	t.Parallel()

	session := NewVoiceSession(&fakeBroker{url: "wss://x/session"})

	grant, err := session.Start(context.Background(), nil)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if grant.SignedURL != "wss://x/session" {
		t.Fatalf("unexpected url: %s", grant.SignedURL)
	}
	if grant.PromptOverride != "" || grant.FirstMessageOverride != "" {
		t.Fatal("overrides must stay empty without a deck analysis")
	}
}

func TestStartWithDeckBuildsOverrides(t *testing.T) {
	t.Parallel()

	session := NewVoiceSession(&fakeBroker{url: "wss://x/session"})

	grant, err := session.Start(context.Background(), sampleDeck())
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	for _, want := range []string{
		"Acme Robotics",
		"warehouse robots for mid-size logistics",
		"labor shortages make automation inevitable",
		"$12B serviceable",
		"Readiness score: 7",
		"no sales hire yet",
		"1. What is the pilot conversion rate?",
		"2. How defensible is the hardware?",
		"3. Why now?",
	} {
		if !strings.Contains(grant.PromptOverride, want) {
			t.Errorf("prompt override missing %q", want)
		}
	}
	if strings.Contains(grant.PromptOverride, "What about China?") {
		t.Error("prompt override must keep only the top three questions")
	}

	first := grant.FirstMessageOverride
	for _, want := range []string{
		"Acme Robotics",
		"working prototype in two pilot warehouses",
		"What is the pilot conversion rate?",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("first message missing %q", want)
		}
	}
}

func TestStartBrokerFailure(t *testing.T) {
	t.Parallel()

	session := NewVoiceSession(&fakeBroker{err: errors.New("provider down")})

	if _, err := session.Start(context.Background(), nil); err == nil {
		t.Fatal("expected broker error")
	}
}
