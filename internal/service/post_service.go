package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostDetail, error)
	List(ctx context.Context, userID int64, filter repository.PostFilter) ([]*transfer.PostDetail, error)
	PostInfo(ctx context.Context, userID int64, postID string) (*transfer.PostDetail, error)
	UpdatePost(ctx context.Context, userID int64, postID string, pu *transfer.PostUpdate) (*transfer.PostDetail, error)
	Remove(ctx context.Context, userID int64, postID string) error
}

type postService struct {
	tm *repository.TransactionManager
	pr repository.PostRepository
	sa repository.SelectedAccountRepository
	ac repository.SocialAccountRepository
	pm repository.PostMediaRepository
	sr repository.SettingsRepository
}

func NewPostService(
	tm *repository.TransactionManager,
	pr repository.PostRepository,
	sa repository.SelectedAccountRepository,
	ac repository.SocialAccountRepository,
	pm repository.PostMediaRepository,
	sr repository.SettingsRepository) PostService {
	return &postService{
		tm: tm,
		pr: pr,
		sa: sa,
		ac: ac,
		pm: pm,
		sr: sr,
	}
}

// CreatePost stores a scheduled post with its destinations and images. The
// user's retry settings are copied onto the post so later settings changes
// do not affect it.
func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation) (*transfer.PostDetail, error) {
	if pc == nil {
		return nil, fmt.Errorf("%w: post creation data is nil", ErrInvalidInput)
	}

	accounts := dedupe(pc.SelectedAccounts)
	media, err := newMedia(pc.ImageURLs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:            pc.ID,
		UserID:        userID,
		Text:          pc.Text,
		ScheduledDate: pc.ScheduledDate,
		ScheduledTime: pc.ScheduledTime,
		Timezone:      pc.Timezone,
		Status:        models.PostStatusScheduled,
		PostType:      models.PostType(pc.PostType),
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.PostType == "" {
		post.PostType = models.PostTypeSingle
	}
	post.ThreadCount = threadCount(post)

	err = s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkOwnership(ctx, userID, accounts); err != nil {
			return err
		}

		settings, err := s.sr.EnsureDefault(ctx, userID)
		if err != nil {
			return err
		}
		if post.Timezone == "" {
			post.Timezone = settings.Timezone
		}
		post.MaxRetryCount = settings.EffectiveMaxRetryCount()
		post.RetryInterval = settings.RetryInterval
		if post.RetryInterval <= 0 {
			post.RetryInterval = models.DefaultRetryInterval
		}

		if err := s.pr.Create(ctx, post); err != nil {
			return err
		}
		if err := s.sa.ReplaceForPost(ctx, post.ID, accounts); err != nil {
			return err
		}
		return s.pm.ReplaceForPost(ctx, post.ID, media)
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	slog.Info("post scheduled", "post_id", post.ID, "user_id", userID, "date", post.ScheduledDate, "time", post.ScheduledTime)
	return s.PostInfo(ctx, userID, post.ID)
}

func (s *postService) List(ctx context.Context, userID int64, filter repository.PostFilter) ([]*transfer.PostDetail, error) {
	posts, err := s.pr.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	details, err := s.sa.ListDetailsByPostIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}

	out := make([]*transfer.PostDetail, 0, len(posts))
	for _, p := range posts {
		accounts := details[p.ID]
		if accounts == nil {
			accounts = []*models.AccountDetail{}
		}
		out = append(out, &transfer.PostDetail{Post: p, Accounts: accounts})
	}
	return out, nil
}

func (s *postService) PostInfo(ctx context.Context, userID int64, postID string) (*transfer.PostDetail, error) {
	post, err := s.pr.GetByIDForUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	details, err := s.sa.ListDetailsByPostIDs(ctx, []string{post.ID})
	if err != nil {
		return nil, err
	}
	media, err := s.pm.ListByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	accounts := details[post.ID]
	if accounts == nil {
		accounts = []*models.AccountDetail{}
	}
	return &transfer.PostDetail{Post: post, Accounts: accounts, Media: media}, nil
}

// UpdatePost applies the given fields to a post that has not started
// delivery. Destinations and images are replaced only when provided.
func (s *postService) UpdatePost(ctx context.Context, userID int64, postID string, pu *transfer.PostUpdate) (*transfer.PostDetail, error) {
	if pu == nil {
		return nil, fmt.Errorf("%w: post update data is nil", ErrInvalidInput)
	}

	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		post, err := s.pr.GetByIDForUser(ctx, postID, userID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrNotFound
		}
		if post.Status != models.PostStatusScheduled {
			return ErrNotEditable
		}

		if pu.Text != nil {
			post.Text = *pu.Text
		}
		if pu.ScheduledDate != nil {
			post.ScheduledDate = *pu.ScheduledDate
		}
		if pu.ScheduledTime != nil {
			post.ScheduledTime = *pu.ScheduledTime
		}
		if pu.Timezone != nil {
			post.Timezone = *pu.Timezone
		}
		if pu.PostType != nil {
			post.PostType = models.PostType(*pu.PostType)
		}
		post.ThreadCount = threadCount(post)

		ok, err := s.pr.UpdateScheduled(ctx, post)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEditable
		}

		if pu.SelectedAccounts != nil {
			accounts := dedupe(*pu.SelectedAccounts)
			if err := s.checkOwnership(ctx, userID, accounts); err != nil {
				return err
			}
			if err := s.sa.ReplaceForPost(ctx, post.ID, accounts); err != nil {
				return err
			}
		}
		if pu.ImageURLs != nil {
			media, err := newMedia(*pu.ImageURLs)
			if err != nil {
				return err
			}
			if err := s.pm.ReplaceForPost(ctx, post.ID, media); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	return s.PostInfo(ctx, userID, postID)
}

func (s *postService) Remove(ctx context.Context, userID int64, postID string) error {
	ok, err := s.pr.Remove(ctx, postID, userID)
	if err != nil {
		return fmt.Errorf("remove post: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *postService) checkOwnership(ctx context.Context, userID int64, accounts []string) error {
	if len(accounts) == 0 {
		return fmt.Errorf("%w: no accounts selected", ErrInvalidInput)
	}

	owned, err := s.ac.CountOwned(ctx, userID, accounts)
	if err != nil {
		return err
	}
	if owned != len(accounts) {
		return ErrUnknownAccounts
	}
	return nil
}

func threadCount(post *models.Post) int {
	if post.PostType != models.PostTypeThread {
		return 1
	}
	if n := len(engine.SplitSegments(post.Text)); n > 0 {
		return n
	}
	return 1
}

func newMedia(urls []string) ([]*models.PostMedia, error) {
	media := make([]*models.PostMedia, 0, len(urls))
	for _, u := range urls {
		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}
		media = append(media, &models.PostMedia{ID: id, URL: u, CreatedAt: time.Now().UTC()})
	}
	return media, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
