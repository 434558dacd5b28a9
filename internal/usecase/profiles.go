package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foundermatch/internal/domain"
	"foundermatch/internal/ports"
)

const maxAdminNotesLength = 10000

// ProfileService covers admin reads/updates and the public projection path.
type ProfileService struct {
	repository ports.ProfileRepository
	now        func() time.Time
}

// NewProfileService wires the repository. The clock is overridable in tests.
func NewProfileService(repository ports.ProfileRepository) *ProfileService {
	return &ProfileService{repository: repository, now: time.Now}
}

// ListProfiles returns every profile, newest first. Admin only; gating
// happens at the transport boundary.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]domain.FounderProfile, error) {
	return s.repository.ListProfiles(ctx)
}

// ListMatches returns every match record, best first.
func (s *ProfileService) ListMatches(ctx context.Context) ([]domain.FounderMatch, error) {
	return s.repository.ListMatches(ctx)
}

// Update validates and applies an admin edit. A rejected update is never
// partially applied; validation happens before any write. Setting matched
// stamps match_sent_at with the current time, unsetting it clears the stamp.
func (s *ProfileService) Update(ctx context.Context, profileID string, update domain.ProfileUpdate) (domain.FounderProfile, error) {
	if profileID == "" {
		return domain.FounderProfile{}, fmt.Errorf("%w: profileId is required", ErrInvalidInput)
	}
	if update.Empty() {
		return domain.FounderProfile{}, fmt.Errorf("%w: no recognized fields to update", ErrInvalidInput)
	}
	if update.Status != nil && !domain.ValidProfileStatus(*update.Status) {
		return domain.FounderProfile{}, fmt.Errorf("%w: status %q is not one of new|reviewed|matched|contacted", ErrInvalidInput, *update.Status)
	}
	if update.AdminNotes != nil && len(*update.AdminNotes) > maxAdminNotesLength {
		return domain.FounderProfile{}, fmt.Errorf("%w: admin_notes exceeds %d characters", ErrInvalidInput, maxAdminNotesLength)
	}

	var matchSentAt *time.Time
	if update.Matched != nil && *update.Matched {
		stamp := s.now().UTC()
		matchSentAt = &stamp
	}

	return s.repository.UpdateProfile(ctx, profileID, update, matchSentAt)
}

// Public returns the allow-listed projection for one profile. The id must be
// a well-formed UUID before the store is consulted.
func (s *ProfileService) Public(ctx context.Context, rawID string) (domain.PublicProfile, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.PublicProfile{}, fmt.Errorf("%w: id must be a valid UUID", ErrInvalidInput)
	}

	profile, err := s.repository.GetProfile(ctx, id.String())
	if err != nil {
		return domain.PublicProfile{}, err
	}

	return profile.Public(), nil
}
