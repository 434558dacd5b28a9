package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestPublicProjection(t *testing.T) {
	t.Parallel()

	tagline := "payroll automation for independent bars"
	score := 8
	sentAt := time.Now()
	profile := FounderProfile{
		ID:               "id-1",
		Name:             "Dana",
		Email:            "dana@example.test",
		Phone:            "+15550100",
		IdeaDescription:  "idea",
		Tagline:          &tagline,
		SeriousnessScore: &score,
		Matched:          true,
		Status:           ProfileStatusReviewed,
		AdminNotes:       "keep private",
		MatchSentAt:      &sentAt,
	}

	raw, err := json.Marshal(profile.Public())
	if err != nil {
		t.Fatalf("marshal projection: %v", err)
	}

	body := string(raw)
	for _, banned := range []string{"email", "phone", "admin_notes", "seriousness_score", "matched", "match_sent_at", "keep private", "dana@example.test"} {
		if strings.Contains(body, banned) {
			t.Errorf("projection leaks %q: %s", banned, body)
		}
	}
	if !strings.Contains(body, tagline) {
		t.Error("projection should keep the tagline")
	}
}

func TestProfileUpdateEmpty(t *testing.T) {
	t.Parallel()

	if !(ProfileUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}

	matched := true
	if (ProfileUpdate{Matched: &matched}).Empty() {
		t.Error("update with matched set is not empty")
	}
}
