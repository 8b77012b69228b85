package engine_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
)

type fakePublisher struct {
	mu    sync.Mutex
	seq   int
	fail  map[string]error
	calls map[string][]engine.Unit
	// onPublish, when set, runs before every call and fails it on error.
	onPublish func(ctx context.Context, unit engine.Unit) error
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{fail: map[string]error{}, calls: map[string][]engine.Unit{}}
}

func (p *fakePublisher) PublishUnit(ctx context.Context, credential string, unit engine.Unit) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls[credential] = append(p.calls[credential], unit)
	if p.onPublish != nil {
		if err := p.onPublish(ctx, unit); err != nil {
			return "", err
		}
	}
	if err := p.fail[credential]; err != nil {
		return "", err
	}
	p.seq++
	return fmt.Sprintf("tw-%d", p.seq), nil
}

type staticCredentials map[string]string

func (c staticCredentials) GetDestinationCredential(_ context.Context, accountID string) (string, error) {
	cred, ok := c[accountID]
	if !ok {
		return "", engine.ErrAccountNotFound
	}
	return cred, nil
}

type deliveryFixture struct {
	ctx       context.Context
	posts     repository.PostRepository
	dests     repository.SelectedAccountRepository
	settings  repository.SettingsRepository
	publisher *fakePublisher
	engine    *engine.Engine
	now       time.Time
}

func newDeliveryFixture(t *testing.T) *deliveryFixture {
	t.Helper()
	ctx := context.Background()

	db, err := repository.Open(ctx, "sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(ctx, db))

	f := &deliveryFixture{
		ctx:       ctx,
		posts:     repository.NewPostRepository(db),
		dests:     repository.NewSelectedAccountRepository(db),
		settings:  repository.NewSettingsRepository(db),
		publisher: newFakePublisher(),
		now:       time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	f.engine = engine.New(
		f.posts,
		f.dests,
		repository.NewPostMediaRepository(db),
		staticCredentials{"A": "tok-A", "B": "tok-B"},
		f.publisher,
		f.settings,
		engine.Config{Location: time.UTC, DestinationConcurrency: 2},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		engine.WithClock(func() time.Time { return f.now }),
	)
	return f
}

func (f *deliveryFixture) schedule(t *testing.T, id string, accounts ...string) {
	t.Helper()
	post := &models.Post{
		ID: id, UserID: 1, Text: "hello", ScheduledDate: "2024-05-01", ScheduledTime: "08:59",
		Timezone: "UTC", PostType: models.PostTypeSingle, ThreadCount: 1, MaxRetryCount: 3, RetryInterval: 15,
	}
	require.NoError(t, f.posts.Create(f.ctx, post))
	require.NoError(t, f.dests.ReplaceForPost(f.ctx, id, accounts))
}

func TestDelivery_RetryThenPostSkipsDeliveredAccount(t *testing.T) {
	f := newDeliveryFixture(t)
	f.schedule(t, "p1", "A", "B")
	f.publisher.fail["tok-B"] = errors.New("rate limited")

	stats, err := f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Retrying)

	post, err := f.posts.GetByID(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRetrying, post.Status)
	assert.Equal(t, 1, post.RetryCount)
	assert.Equal(t, "09:15", post.ScheduledTime)
	require.NotNil(t, post.ErrorMessage)
	assert.Contains(t, *post.ErrorMessage, "B: rate limited")

	// Not yet due again.
	f.now = f.now.Add(10 * time.Minute)
	stats, err = f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Selected)

	delete(f.publisher.fail, "tok-B")
	f.now = f.now.Add(5 * time.Minute)
	stats, err = f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Posted)

	post, err = f.posts.GetByID(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPosted, post.Status)
	assert.NotNil(t, post.PostedAt)

	assert.Len(t, f.publisher.calls["tok-A"], 1)
	assert.Len(t, f.publisher.calls["tok-B"], 2)
}

func TestDelivery_PauseLeavesPostsUntouched(t *testing.T) {
	f := newDeliveryFixture(t)
	f.schedule(t, "p1", "A")

	st, err := f.settings.EnsureDefault(f.ctx, 99)
	require.NoError(t, err)
	st.BulkPause = true
	require.NoError(t, f.settings.UpdateSettings(f.ctx, st))

	stats, err := f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.True(t, stats.Paused)

	post, err := f.posts.GetByID(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusScheduled, post.Status)
	assert.Empty(t, f.publisher.calls)
}

func TestDelivery_ExhaustedRetriesEndFailed(t *testing.T) {
	f := newDeliveryFixture(t)
	f.schedule(t, "p1", "B")
	f.publisher.fail["tok-B"] = errors.New("rate limited")

	for i := 0; i < 3; i++ {
		_, err := f.engine.RunCycle(f.ctx)
		require.NoError(t, err)
		f.now = f.now.Add(15 * time.Minute)
	}

	post, err := f.posts.GetByID(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusFailed, post.Status)
	assert.Equal(t, 2, post.RetryCount)
	assert.Len(t, f.publisher.calls["tok-B"], 3)

	_, err = f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.Len(t, f.publisher.calls["tok-B"], 3)
}

func TestDelivery_PublishNowRejectsPostedPost(t *testing.T) {
	f := newDeliveryFixture(t)
	f.schedule(t, "p1", "A")

	res, err := f.engine.PublishNow(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPosted, res.Status)

	_, err = f.engine.PublishNow(f.ctx, "p1")
	assert.ErrorIs(t, err, engine.ErrInvalidState)
	assert.Len(t, f.publisher.calls["tok-A"], 1)
}

func TestDelivery_CancelledContextStillRecordsOutcome(t *testing.T) {
	f := newDeliveryFixture(t)
	f.schedule(t, "p1", "A")

	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()
	f.publisher.onPublish = func(ctx context.Context, _ engine.Unit) error {
		cancel()
		return ctx.Err()
	}

	res, err := f.engine.PublishNow(ctx, "p1")
	require.ErrorIs(t, err, engine.ErrDeliveryFailed)
	require.NotNil(t, res)
	assert.Equal(t, models.PostStatusRetrying, res.Status)

	post, err := f.posts.GetByID(f.ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRetrying, post.Status)
	assert.Equal(t, 1, post.RetryCount)
	require.NotNil(t, post.ErrorMessage)
	assert.Contains(t, *post.ErrorMessage, "A: context canceled")

	// the post is picked up again once its retry time comes round
	f.publisher.onPublish = nil
	f.now = f.now.Add(15 * time.Minute)
	stats, err := f.engine.RunCycle(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Posted)
}

func TestDelivery_BrokenThreadKeepsPostedIDsOnDestination(t *testing.T) {
	f := newDeliveryFixture(t)
	post := &models.Post{
		ID: "t1", UserID: 1, Text: "first\n\nsecond", ScheduledDate: "2024-05-01", ScheduledTime: "08:59",
		Timezone: "UTC", PostType: models.PostTypeThread, ThreadCount: 2, MaxRetryCount: 3, RetryInterval: 15,
	}
	require.NoError(t, f.posts.Create(f.ctx, post))
	require.NoError(t, f.dests.ReplaceForPost(f.ctx, "t1", []string{"A"}))

	f.publisher.onPublish = func(_ context.Context, unit engine.Unit) error {
		if unit.Text == "second" {
			return errors.New("duplicate content")
		}
		return nil
	}

	_, err := f.engine.RunCycle(f.ctx)
	require.NoError(t, err)

	dests, err := f.dests.ListByPostID(f.ctx, "t1")
	require.NoError(t, err)
	require.Len(t, dests, 1)
	assert.False(t, dests[0].Posted)
	require.NotNil(t, dests[0].ErrorMessage)
	assert.Equal(t, "segment 2 of 2 (already posted: tw-1): duplicate content", *dests[0].ErrorMessage)
}
