package ports

import (
	"context"
	"time"

	"foundermatch/internal/domain"
)

// ProfileRepository persists founder profiles and match records.
type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]domain.FounderProfile, error)
	GetProfile(ctx context.Context, id string) (domain.FounderProfile, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, matchSentAt *time.Time) (domain.FounderProfile, error)
	ListUntagged(ctx context.Context) ([]domain.FounderProfile, error)
	SetTagline(ctx context.Context, id, tagline string) error
	ListMatches(ctx context.Context) ([]domain.FounderMatch, error)
}

// CompletionClient sends a prompt pair to the LLM gateway and returns the
// raw text of the model's reply.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// VoiceBroker obtains a short-lived signed session URL from the
// conversational-voice provider.
type VoiceBroker interface {
	SignedURL(ctx context.Context) (string, error)
}

// TokenVerifier resolves a bearer token to a user id and checks role
// membership through a privileged channel.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (userID string, err error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// Notifier pushes operator-facing messages (job results) to a side channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
