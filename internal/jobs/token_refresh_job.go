package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/autopost/internal/models"
)

type ExpiringAccounts interface {
	ListByTimeInterval(ctx context.Context, from, to time.Time) ([]*models.SocialAccount, error)
}

type TokenRefresher interface {
	RefreshToken(ctx context.Context, account *models.SocialAccount) error
}

// TokenRefreshJob renews X access tokens that expire within the next
// window so deliveries never run with a dead token.
type TokenRefreshJob struct {
	sr     ExpiringAccounts
	rf     TokenRefresher
	window time.Duration
	ctx    context.Context
	now    func() time.Time
}

func NewTokenRefreshJob(ctx context.Context, sr ExpiringAccounts, rf TokenRefresher) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr:     sr,
		rf:     rf,
		window: 30 * time.Minute,
		ctx:    ctx,
		now:    time.Now,
	}
}

func (j *TokenRefreshJob) Run() {
	j.RefreshTokens()
}

// RefreshTokens returns how many accounts were refreshed.
func (j *TokenRefreshJob) RefreshTokens() int {
	ctx := j.ctx
	currentTime := j.now().UTC()

	// Tokens that died more than a day ago have lost their refresh token too.
	accounts, err := j.sr.ListByTimeInterval(ctx, currentTime.Add(-24*time.Hour), currentTime.Add(j.window))
	if err != nil {
		slog.Info(err.Error())
		return 0
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		refreshed int
	)
	semaphore := make(chan struct{}, 10)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.rf.RefreshToken(ctx, acc); err != nil {
				slog.Warn("unable to refresh x token", "account_id", acc.ID, "error", err)
				return
			}

			mu.Lock()
			refreshed++
			mu.Unlock()
		}(acc)
	}

	wg.Wait()

	if refreshed > 0 {
		slog.Info("refreshed x tokens", "count", refreshed)
	}
	return refreshed
}
