package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
)

type blockingRunner struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	err     error
}

func (r *blockingRunner) RunCycle(ctx context.Context) (*engine.CycleStats, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.started != nil {
		close(r.started)
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return &engine.CycleStats{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeliveryJob_SkipsOverlappingTick(t *testing.T) {
	runner := &blockingRunner{started: make(chan struct{}), release: make(chan struct{})}
	j := NewDeliveryJob(context.Background(), runner, time.Minute, discardLogger())

	done := make(chan bool)
	go func() {
		ran, _ := j.RunOnce()
		done <- ran
	}()

	<-runner.started
	ran, err := j.RunOnce()
	require.NoError(t, err)
	assert.False(t, ran)

	assert.False(t, j.Drain(100*time.Millisecond))

	close(runner.release)
	assert.True(t, <-done)
	assert.True(t, j.Drain(time.Second))
	assert.Equal(t, 1, runner.calls)
}

func TestDeliveryJob_ReportsCycleError(t *testing.T) {
	runner := &blockingRunner{err: errors.New("select due posts: db down")}
	j := NewDeliveryJob(context.Background(), runner, 0, discardLogger())

	ran, err := j.RunOnce()
	assert.True(t, ran)
	assert.EqualError(t, err, "select due posts: db down")

	// The guard is released after a failed cycle.
	ran, _ = j.RunOnce()
	assert.True(t, ran)
}

func TestDeliveryJob_StopsAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &blockingRunner{}
	j := NewDeliveryJob(ctx, runner, 0, discardLogger())

	ran, err := j.RunOnce()
	assert.NoError(t, err)
	assert.False(t, ran)
	assert.Zero(t, runner.calls)
}

type deadlineRunner struct{}

func (deadlineRunner) RunCycle(ctx context.Context) (*engine.CycleStats, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestDeliveryJob_CycleTimeout(t *testing.T) {
	j := NewDeliveryJob(context.Background(), deadlineRunner{}, 20*time.Millisecond, discardLogger())

	ran, err := j.RunOnce()
	assert.True(t, ran)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, j.Drain(0))
}

func TestDeliveryJob_DrainWithoutCycle(t *testing.T) {
	j := NewDeliveryJob(context.Background(), &blockingRunner{}, 0, discardLogger())
	assert.True(t, j.Drain(0))
}

type countingPurger struct{ calls int }

func (p *countingPurger) Purge() int {
	p.calls++
	return 2
}

func TestSessionPurgeJob(t *testing.T) {
	p := &countingPurger{}
	NewSessionPurgeJob(p).Run()
	assert.Equal(t, 1, p.calls)
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := NewScheduler(Scheduled{Spec: "not a spec", Job: NewSessionPurgeJob(&countingPurger{})})
	assert.Error(t, err)

	c, err := NewScheduler(Scheduled{Spec: "@every 1m", Job: NewSessionPurgeJob(&countingPurger{})})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}

type stubAccounts struct {
	from, to time.Time
	accounts []*models.SocialAccount
}

func (s *stubAccounts) ListByTimeInterval(_ context.Context, from, to time.Time) ([]*models.SocialAccount, error) {
	s.from, s.to = from, to
	return s.accounts, nil
}

type stubRefresher struct {
	mu   sync.Mutex
	seen []string
}

func (r *stubRefresher) RefreshToken(_ context.Context, acc *models.SocialAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, acc.ID)
	if acc.ID == "bad" {
		return errors.New("invalid_grant")
	}
	return nil
}

func TestTokenRefreshJob(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	accounts := &stubAccounts{accounts: []*models.SocialAccount{{ID: "a"}, {ID: "bad"}, {ID: "b"}}}
	refresher := &stubRefresher{}

	j := NewTokenRefreshJob(context.Background(), accounts, refresher)
	j.now = func() time.Time { return now }

	assert.Equal(t, 2, j.RefreshTokens())
	assert.ElementsMatch(t, []string{"a", "bad", "b"}, refresher.seen)
	assert.Equal(t, now.Add(30*time.Minute), accounts.to)
	assert.True(t, accounts.from.Before(now))
}
