package usecase

import (
	"context"
	"fmt"
	"time"

	"foundermatch/internal/domain"
	"foundermatch/internal/infrastructure/storage"
)

// fakeCompleter scripts gateway replies per call and records prompts.
type fakeCompleter struct {
	replies []string
	errs    []error
	calls   int
	systems []string
	users   []string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	idx := f.calls
	f.calls++
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userPrompt)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return "", fmt.Errorf("unscripted completion call %d", idx)
}

// fakeRepository keeps profiles in memory with just enough behavior for the
// backfill and admin paths.
type fakeRepository struct {
	profiles    []domain.FounderProfile
	matches     []domain.FounderMatch
	failSet     map[string]bool
	setTaglines map[string]string
	updated     []string
}

func newFakeRepository(profiles ...domain.FounderProfile) *fakeRepository {
	return &fakeRepository{
		profiles:    profiles,
		failSet:     map[string]bool{},
		setTaglines: map[string]string{},
	}
}

func (f *fakeRepository) ListProfiles(context.Context) ([]domain.FounderProfile, error) {
	return f.profiles, nil
}

func (f *fakeRepository) GetProfile(_ context.Context, id string) (domain.FounderProfile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.FounderProfile{}, storage.ErrNotFound
}

func (f *fakeRepository) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate, matchSentAt *time.Time) (domain.FounderProfile, error) {
	for i, p := range f.profiles {
		if p.ID != id {
			continue
		}
		if update.Matched != nil {
			p.Matched = *update.Matched
			if *update.Matched {
				p.MatchSentAt = matchSentAt
			} else {
				p.MatchSentAt = nil
			}
		}
		if update.Status != nil {
			p.Status = domain.ProfileStatus(*update.Status)
		}
		if update.AdminNotes != nil {
			p.AdminNotes = *update.AdminNotes
		}
		f.profiles[i] = p
		f.updated = append(f.updated, id)
		return p, nil
	}
	return domain.FounderProfile{}, storage.ErrNotFound
}

func (f *fakeRepository) ListUntagged(context.Context) ([]domain.FounderProfile, error) {
	var untagged []domain.FounderProfile
	for _, p := range f.profiles {
		if p.Tagline == nil {
			untagged = append(untagged, p)
		}
	}
	return untagged, nil
}

func (f *fakeRepository) SetTagline(_ context.Context, id, tagline string) error {
	if f.failSet[id] {
		return fmt.Errorf("write rejected for %s", id)
	}
	for i, p := range f.profiles {
		if p.ID == id {
			t := tagline
			f.profiles[i].Tagline = &t
			f.setTaglines[id] = tagline
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeRepository) ListMatches(context.Context) ([]domain.FounderMatch, error) {
	return f.matches, nil
}

type fakeNotifier struct {
	digests []string
}

func (f *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	f.digests = append(f.digests, digest)
	return nil
}
