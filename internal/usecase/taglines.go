package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foundermatch/internal/domain"
	"foundermatch/internal/infrastructure/llm"
	"foundermatch/internal/ports"
)

const (
	taglineBatchSize = 5
	batchDelay       = time.Second
)

const taglinePrompt = `You write one-line taglines for founder profiles on a co-founder matching platform.

For each numbered profile below, write a tagline of 6-10 words that is
specific to the product and the founder's role.

Good: "Marketplace connecting indie chefs with neighborhood supper clubs"
Good: "Technical founder automating clinical-trial paperwork for biotech labs"
Bad: "Passionate entrepreneur changing the world" (generic boilerplate)
Bad: "Innovative startup disrupting the industry" (says nothing)

Return ONLY a JSON array: [{"id": "<profile id>", "tagline": "<tagline>"}, ...]
with one entry per profile.`

// TaglineBackfill walks profiles lacking a tagline and fills them in, five
// at a time, one gateway call per batch. Safe to re-run: tagged profiles are
// excluded by the selection query.
type TaglineBackfill struct {
	repository ports.ProfileRepository
	completer  ports.CompletionClient
	notifier   ports.Notifier
	logger     *slog.Logger
	delay      time.Duration
}

// NewTaglineBackfill wires the batch job. Notifier may be nil.
func NewTaglineBackfill(repository ports.ProfileRepository, completer ports.CompletionClient, notifier ports.Notifier, logger *slog.Logger) *TaglineBackfill {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaglineBackfill{
		repository: repository,
		completer:  completer,
		notifier:   notifier,
		logger:     logger,
		delay:      batchDelay,
	}
}

// Run executes one full backfill pass. Per-batch and per-item failures are
// accumulated, never fatal; processed + errors always equals total.
func (t *TaglineBackfill) Run(ctx context.Context) (domain.BackfillResult, error) {
	profiles, err := t.repository.ListUntagged(ctx)
	if err != nil {
		return domain.BackfillResult{}, fmt.Errorf("list untagged profiles: %w", err)
	}

	result := domain.BackfillResult{Total: len(profiles)}

	for start := 0; start < len(profiles); start += taglineBatchSize {
		if start > 0 {
			// Fixed pause between gateway calls to stay under rate limits.
			if err := sleepCtx(ctx, t.delay); err != nil {
				result.Errors += len(profiles) - start
				break
			}
		}

		end := start + taglineBatchSize
		if end > len(profiles) {
			end = len(profiles)
		}
		batch := profiles[start:end]

		processed, errs := t.processBatch(ctx, batch)
		result.Processed += processed
		result.Errors += errs
	}

	t.logger.Info("tagline backfill finished",
		"processed", result.Processed, "errors", result.Errors, "total", result.Total)
	t.notify(ctx, result)

	return result, nil
}

func (t *TaglineBackfill) processBatch(ctx context.Context, batch []domain.FounderProfile) (processed, errs int) {
	content, err := t.completer.Complete(ctx, taglinePrompt, batchPrompt(batch))
	if err != nil {
		t.logger.Warn("batch completion failed", "size", len(batch), "error", err)
		return 0, len(batch)
	}

	var entries []struct {
		ID      string `json:"id"`
		Tagline string `json:"tagline"`
	}
	if err := llm.ExtractArray(content, &entries); err != nil {
		t.logger.Warn("batch output unparseable", "size", len(batch), "error", err, "raw", content)
		return 0, len(batch)
	}

	taglines := make(map[string]string, len(entries))
	for _, entry := range entries {
		taglines[entry.ID] = strings.TrimSpace(entry.Tagline)
	}

	for _, profile := range batch {
		tagline := taglines[profile.ID]
		if tagline == "" {
			t.logger.Warn("no tagline returned", "profile", profile.ID)
			errs++
			continue
		}
		if err := t.repository.SetTagline(ctx, profile.ID, tagline); err != nil {
			t.logger.Warn("tagline write rejected", "profile", profile.ID, "error", err)
			errs++
			continue
		}
		processed++
	}

	return processed, errs
}

func (t *TaglineBackfill) notify(ctx context.Context, result domain.BackfillResult) {
	if t.notifier == nil {
		return
	}
	digest := fmt.Sprintf("Tagline backfill: %d processed, %d errors, %d total",
		result.Processed, result.Errors, result.Total)
	if err := t.notifier.PublishDigest(ctx, digest); err != nil {
		t.logger.Warn("notify backfill result", "error", err)
	}
}

func batchPrompt(batch []domain.FounderProfile) string {
	var b strings.Builder
	for i, profile := range batch {
		fmt.Fprintf(&b, "%d. id: %s\n", i+1, profile.ID)
		fmt.Fprintf(&b, "   idea: %s\n", profile.IdeaDescription)
		fmt.Fprintf(&b, "   target customer: %s\n", profile.TargetCustomer)
		fmt.Fprintf(&b, "   stage: %s\n", profile.Stage)
		if len(profile.Skills) > 0 {
			fmt.Fprintf(&b, "   skills: %s\n", strings.Join(profile.Skills, ", "))
		}
	}
	return b.String()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
