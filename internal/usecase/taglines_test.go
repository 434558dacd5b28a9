package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"foundermatch/internal/domain"
	"foundermatch/internal/ports"
)

func untaggedProfile(id string) domain.FounderProfile {
	return domain.FounderProfile{
		ID:              id,
		IdeaDescription: "idea for " + id,
		TargetCustomer:  "customer of " + id,
		Stage:           "mvp",
		Skills:          []string{"go", "sales"},
	}
}

func taglineReply(ids ...string) string {
	entries := make([]string, len(ids))
	for i, id := range ids {
		entries[i] = fmt.Sprintf(`{"id": %q, "tagline": "tagline for %s"}`, id, id)
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func newTestBackfill(repo *fakeRepository, completer *fakeCompleter, notifier ports.Notifier) *TaglineBackfill {
	job := NewTaglineBackfill(repo, completer, notifier, nil)
	job.delay = 0
	return job
}

func TestBackfillProcessesInBatchesOfFive(t *testing.T) {
	t.Parallel()

	var profiles []domain.FounderProfile
	var ids []string
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("p%d", i)
		ids = append(ids, id)
		profiles = append(profiles, untaggedProfile(id))
	}
	repo := newFakeRepository(profiles...)
	completer := &fakeCompleter{replies: []string{
		taglineReply(ids[:5]...),
		taglineReply(ids[5:]...),
	}}

	job := newTestBackfill(repo, completer, nil)

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, completer.calls, "7 profiles means two batches")
	require.Equal(t, domain.BackfillResult{Processed: 7, Errors: 0, Total: 7}, result)
	require.Len(t, repo.setTaglines, 7)

	// The batch prompt numbers each profile.
	require.Contains(t, completer.users[0], "1. id: p0")
	require.Contains(t, completer.users[0], "5. id: p4")
	require.Contains(t, completer.users[1], "1. id: p5")
}

func TestBackfillBatchFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	var profiles []domain.FounderProfile
	for i := 0; i < 10; i++ {
		profiles = append(profiles, untaggedProfile(fmt.Sprintf("p%d", i)))
	}
	repo := newFakeRepository(profiles...)
	completer := &fakeCompleter{
		replies: []string{"", taglineReply("p5", "p6", "p7", "p8", "p9")},
		errs:    []error{fmt.Errorf("gateway 500")},
	}

	job := newTestBackfill(repo, completer, nil)

	result, err := job.Run(context.Background())
	require.NoError(t, err, "batch failure never aborts the job")
	require.Equal(t, 5, result.Processed)
	require.Equal(t, 5, result.Errors, "every profile of the failed batch counts as an error")
	require.Equal(t, result.Total, result.Processed+result.Errors)
}

func TestBackfillCountsItemWriteFailures(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository(untaggedProfile("a"), untaggedProfile("b"), untaggedProfile("c"))
	repo.failSet["b"] = true
	completer := &fakeCompleter{replies: []string{taglineReply("a", "b", "c")}}

	job := newTestBackfill(repo, completer, nil)

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.BackfillResult{Processed: 2, Errors: 1, Total: 3}, result)
}

func TestBackfillCountsMissingTaglines(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository(untaggedProfile("a"), untaggedProfile("b"))
	completer := &fakeCompleter{replies: []string{taglineReply("a")}}

	job := newTestBackfill(repo, completer, nil)

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.BackfillResult{Processed: 1, Errors: 1, Total: 2}, result)
}

func TestBackfillIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository(untaggedProfile("a"), untaggedProfile("b"))
	completer := &fakeCompleter{replies: []string{taglineReply("a", "b")}}

	job := newTestBackfill(repo, completer, nil)

	first, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, first.Processed)

	// Second run selects nothing: both rows now carry taglines.
	second, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.BackfillResult{Processed: 0, Errors: 0, Total: 0}, second)
	require.Equal(t, 1, completer.calls, "no gateway call without eligible rows")
}

func TestBackfillUnparseableBatchOutput(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository(untaggedProfile("a"))
	completer := &fakeCompleter{replies: []string{"no json here"}}

	job := newTestBackfill(repo, completer, nil)

	result, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.BackfillResult{Processed: 0, Errors: 1, Total: 1}, result)
}

func TestBackfillNotifiesResult(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository(untaggedProfile("a"))
	completer := &fakeCompleter{replies: []string{taglineReply("a")}}
	notifier := &fakeNotifier{}

	job := NewTaglineBackfill(repo, completer, notifier, nil)
	job.delay = 0

	_, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, notifier.digests, 1)
	require.Contains(t, notifier.digests[0], "1 processed")
}
