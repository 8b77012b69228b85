package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

type Option func(*Engine)

// WithClock replaces time.Now as the engine's source of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// Engine delivers due posts to their destination accounts and drives each
// post through scheduled, posting and one of posted, retrying or failed.
type Engine struct {
	posts        PostStore
	destinations DestinationStore
	media        MediaStore
	credentials  CredentialStore
	publisher    Publisher
	pause        PauseGate
	notifier     Notifier

	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

func New(
	posts PostStore,
	destinations DestinationStore,
	media MediaStore,
	credentials CredentialStore,
	publisher Publisher,
	pause PauseGate,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	cfg.setDefaults()

	e := &Engine{
		posts:        posts,
		destinations: destinations,
		media:        media,
		credentials:  credentials,
		publisher:    publisher,
		pause:        pause,
		cfg:          cfg,
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunCycle processes every post that is due now. Selection problems abort the
// cycle without touching any post; per-post problems never do.
func (e *Engine) RunCycle(ctx context.Context) (*CycleStats, error) {
	paused, err := e.pause.IsGloballyPaused(ctx)
	if err != nil {
		return nil, fmt.Errorf("read pause flag: %w", err)
	}
	if paused {
		e.logger.Info("bulk pause is on, skipping cycle")
		return &CycleStats{Paused: true}, nil
	}

	date, clock := FormatDue(e.localNow())
	posts, err := e.posts.ListDue(ctx, date, clock, e.cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("select due posts: %w", err)
	}

	stats := &CycleStats{Selected: len(posts)}
	if len(posts) == 0 {
		return stats, nil
	}

	e.logger.Info("processing due posts", "count", len(posts), "date", date, "time", clock)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	semaphore := make(chan struct{}, e.cfg.PostConcurrency)

	for _, post := range posts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.Post) {
			defer wg.Done()
			defer func() { <-semaphore }()

			res := e.claimAndProcess(ctx, post)

			mu.Lock()
			stats.record(res)
			mu.Unlock()
		}(post)
	}

	wg.Wait()

	e.logger.Info("cycle finished",
		"selected", stats.Selected,
		"skipped", stats.Skipped,
		"posted", stats.Posted,
		"retrying", stats.Retrying,
		"failed", stats.Failed,
	)
	return stats, nil
}

// PublishNow delivers a scheduled post immediately. Any final status other
// than posted is reported as ErrDeliveryFailed alongside the result.
func (e *Engine) PublishNow(ctx context.Context, postID string) (*Result, error) {
	post, err := e.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("load post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != models.PostStatusScheduled {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, post.Status)
	}

	ok, err := e.posts.Claim(ctx, post.ID, models.PostStatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("claim post: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: already claimed", ErrInvalidState)
	}

	res := e.process(ctx, post)
	if res.Status != models.PostStatusPosted {
		return res, fmt.Errorf("%w: %s", ErrDeliveryFailed, res.Error)
	}
	return res, nil
}

func (e *Engine) claimAndProcess(ctx context.Context, post *models.Post) *Result {
	ok, err := e.posts.Claim(ctx, post.ID, post.Status)
	if err != nil {
		e.logger.Error("failed to claim post", "post_id", post.ID, "error", err)
		return nil
	}
	if !ok {
		e.logger.Info("post already claimed, skipping", "post_id", post.ID)
		return nil
	}

	return e.process(ctx, post)
}

// process runs one delivery attempt on a claimed post. Whatever goes wrong,
// the post leaves posting: outcome writes run on a context that ignores
// cancellation of ctx, which only bounds reads and network calls.
func (e *Engine) process(ctx context.Context, post *models.Post) *Result {
	logger := e.logger.With("post_id", post.ID)
	logger.Info("delivering post", "post_type", post.PostType, "retry_count", post.RetryCount)

	writeCtx := context.WithoutCancel(ctx)

	res, err := e.deliver(ctx, writeCtx, post, logger)
	if err != nil {
		msg := err.Error()
		logger.Error("post delivery aborted", "error", err)

		outcome := models.Outcome{Status: models.PostStatusFailed, ErrorMessage: &msg}
		if ferr := e.posts.FinalizePost(writeCtx, post.ID, outcome); ferr != nil {
			logger.Error("failed to mark post as failed", "error", ferr)
		}

		res = &Result{
			PostID:     post.ID,
			Status:     models.PostStatusFailed,
			RetryCount: post.RetryCount,
			Error:      msg,
		}
	}

	logger.Info("post finalized", "status", res.Status, "retry_count", res.RetryCount)
	e.notify(writeCtx, post, res)
	return res
}

func (e *Engine) deliver(ctx, writeCtx context.Context, post *models.Post, logger *slog.Logger) (*Result, error) {
	pending, err := e.destinations.ListPending(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("load destinations: %w", err)
	}
	if len(pending) == 0 {
		return nil, ErrNoDestinations
	}

	media, err := e.media.ListByPostID(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}

	texts, threaded := contentPlan(post)
	results, err := e.attemptAll(ctx, writeCtx, post, pending, texts, mediaRefs(media), threaded, logger)
	if err != nil {
		return nil, err
	}

	var failures []destinationFailure
	for _, r := range results {
		if r.Error != "" {
			failures = append(failures, destinationFailure{accountID: r.AccountID, message: r.Error})
		}
	}

	outcome := decideOutcome(post, failures, e.localNow(), retryInterval(post, e.cfg.RetryInterval))
	if err := e.posts.FinalizePost(writeCtx, post.ID, outcome); err != nil {
		return nil, fmt.Errorf("finalize post: %w", err)
	}

	res := &Result{
		PostID:       post.ID,
		Status:       outcome.Status,
		RetryCount:   post.RetryCount,
		NextDate:     outcome.NextDate,
		NextTime:     outcome.NextTime,
		Destinations: results,
	}
	if outcome.RetryCount != nil {
		res.RetryCount = *outcome.RetryCount
	}
	if outcome.ErrorMessage != nil {
		res.Error = *outcome.ErrorMessage
	}
	return res, nil
}

// attemptAll sends the post to every pending destination. Destinations of a
// thread go one at a time; results keep destination order either way. The
// returned error is set only when an outcome could not be recorded.
func (e *Engine) attemptAll(
	ctx, writeCtx context.Context,
	post *models.Post,
	pending []*models.SelectedAccount,
	texts []string,
	media []MediaRef,
	threaded bool,
	logger *slog.Logger,
) ([]DestinationResult, error) {
	limit := e.cfg.DestinationConcurrency
	if threaded {
		limit = 1
	}

	results := make([]DestinationResult, len(pending))
	errs := make([]error, len(pending))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit)

	for i, dest := range pending {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, accountID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			results[i], errs[i] = e.attemptDestination(ctx, writeCtx, post.ID, accountID, texts, media, logger)
		}(i, dest.AccountID)
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) attemptDestination(
	ctx, writeCtx context.Context,
	postID, accountID string,
	texts []string,
	media []MediaRef,
	logger *slog.Logger,
) (DestinationResult, error) {
	res := DestinationResult{AccountID: accountID}

	ids, err := e.sendTo(ctx, accountID, texts, media, logger)
	if err != nil {
		res.Error = err.Error()
		logger.Warn("destination failed", "account_id", accountID, "error", err)

		if rerr := e.destinations.RecordDestinationFailure(writeCtx, postID, accountID, res.Error); rerr != nil {
			return res, fmt.Errorf("record failure for %s: %w", accountID, rerr)
		}
		return res, nil
	}

	res.ExternalIDs = ids
	if rerr := e.destinations.RecordDestinationSuccess(writeCtx, postID, accountID, ids, e.now()); rerr != nil {
		return res, fmt.Errorf("record success for %s: %w", accountID, rerr)
	}

	logger.Info("destination posted", "account_id", accountID, "external_ids", ids)
	return res, nil
}

// sendTo publishes texts to one account, chaining each unit to the previous
// one. Media rides on the first unit only. When a chain breaks, the ids that
// did go out are kept in the error so they end up on the destination row.
func (e *Engine) sendTo(ctx context.Context, accountID string, texts []string, media []MediaRef, logger *slog.Logger) ([]string, error) {
	credential, err := e.credentials.GetDestinationCredential(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(texts))
	var replyTo string
	for i, text := range texts {
		unit := Unit{Text: text, ReplyTo: replyTo}
		if i == 0 {
			unit.Media = media
		}

		id, err := e.publisher.PublishUnit(ctx, credential, unit)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			logger.Error("thread broken mid-chain, posted segments will be sent again on retry",
				"account_id", accountID, "posted_ids", ids)
			return nil, fmt.Errorf("segment %d of %d (already posted: %s): %w",
				i+1, len(texts), strings.Join(ids, ","), err)
		}

		ids = append(ids, id)
		replyTo = id
	}

	return ids, nil
}

func (e *Engine) notify(ctx context.Context, post *models.Post, res *Result) {
	if e.notifier == nil {
		return
	}

	event := Event{
		PostID:     post.ID,
		UserID:     post.UserID,
		Status:     res.Status,
		RetryCount: res.RetryCount,
		Error:      res.Error,
		OccurredAt: e.now().UTC(),
	}
	if err := e.notifier.PostFinalized(ctx, event); err != nil {
		e.logger.Warn("failed to publish outcome event", "post_id", post.ID, "error", err)
	}
}

func (e *Engine) localNow() time.Time {
	return e.now().In(e.cfg.Location)
}

func (s *CycleStats) record(res *Result) {
	if res == nil {
		s.Skipped++
		return
	}
	switch res.Status {
	case models.PostStatusPosted:
		s.Posted++
	case models.PostStatusRetrying:
		s.Retrying++
	default:
		s.Failed++
	}
}

func mediaRefs(media []*models.PostMedia) []MediaRef {
	if len(media) == 0 {
		return nil
	}
	refs := make([]MediaRef, 0, len(media))
	for _, m := range media {
		ref := MediaRef{URL: m.URL}
		if m.FilePath != nil {
			ref.LocalPath = *m.FilePath
		}
		refs = append(refs, ref)
	}
	return refs
}
