package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository

	clearExpired func(ctx context.Context, cutoff time.Time) (int, error)
}

func (r *fakeUserRepo) ClearExpiredVerificationCodes(ctx context.Context, cutoff time.Time) (int, error) {
	return r.clearExpired(ctx, cutoff)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSweeper_InvalidCronExpr(t *testing.T) {
	_, err := NewSweeper(&fakeUserRepo{}, "not a cron expr", 5*time.Minute, testLogger())
	if err == nil {
		t.Fatal("want an error for an invalid cron expression")
	}
}

func TestNewSweeper_AcceptsStandardSyntax(t *testing.T) {
	for _, expr := range []string{"*/5 * * * *", "0 3 * * *", "@hourly"} {
		if _, err := NewSweeper(&fakeUserRepo{}, expr, 5*time.Minute, testLogger()); err != nil {
			t.Errorf("expression %q rejected: %v", expr, err)
		}
	}
}

func TestSweep_UsesTTLCutoff(t *testing.T) {
	ttl := 5 * time.Minute
	var gotCutoff time.Time
	repo := &fakeUserRepo{
		clearExpired: func(_ context.Context, cutoff time.Time) (int, error) {
			gotCutoff = cutoff
			return 3, nil
		},
	}

	sweeper, err := NewSweeper(repo, "*/5 * * * *", ttl, testLogger())
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}

	before := time.Now().Add(-ttl)
	sweeper.Sweep(context.Background())
	after := time.Now().Add(-ttl)

	if gotCutoff.Before(before) || gotCutoff.After(after) {
		t.Errorf("cutoff %v not within [%v, %v]", gotCutoff, before, after)
	}
}

func TestSweep_RepoError_DoesNotPanic(t *testing.T) {
	repo := &fakeUserRepo{
		clearExpired: func(_ context.Context, _ time.Time) (int, error) {
			return 0, errors.New("db unavailable")
		},
	}

	sweeper, err := NewSweeper(repo, "*/5 * * * *", 5*time.Minute, testLogger())
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}
	sweeper.Sweep(context.Background())
}
