package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/autopost/internal/models"
)

const postColumns = `id, user_id, text, scheduled_date, scheduled_time, timezone, status, post_type,
	thread_count, retry_count, max_retry_count, retry_interval, error_message, created_at, updated_at, posted_at`

type PostFilter struct {
	Status   models.PostStatus
	PostType models.PostType
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDForUser(ctx context.Context, id string, userID int64) (*models.Post, error)
	ListByUserID(ctx context.Context, userID int64, filter PostFilter) ([]*models.Post, error)
	UpdateScheduled(ctx context.Context, post *models.Post) (bool, error)
	Remove(ctx context.Context, id string, userID int64) (bool, error)

	ListDue(ctx context.Context, date, clock string, limit int) ([]*models.Post, error)
	Claim(ctx context.Context, id string, from models.PostStatus) (bool, error)
	FinalizePost(ctx context.Context, id string, outcome models.Outcome) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	exec := GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = models.PostStatusScheduled
	}

	query := exec.Rebind(`
		INSERT INTO posts (id, user_id, text, scheduled_date, scheduled_time, timezone, status, post_type,
			thread_count, retry_count, max_retry_count, retry_interval, error_message, created_at, updated_at, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := exec.ExecContext(ctx, query,
		post.ID, post.UserID, post.Text, post.ScheduledDate, post.ScheduledTime, post.Timezone, post.Status, post.PostType,
		post.ThreadCount, post.RetryCount, post.MaxRetryCount, post.RetryInterval, post.ErrorMessage,
		post.CreatedAt, post.UpdatedAt, post.PostedAt)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + postColumns + ` FROM posts WHERE id = ?`)

	var post models.Post
	if err := sqlx.GetContext(ctx, exec, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByIDForUser(ctx context.Context, id string, userID int64) (*models.Post, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + postColumns + ` FROM posts WHERE id = ? AND user_id = ?`)

	var post models.Post
	if err := sqlx.GetContext(ctx, exec, &post, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID int64, filter PostFilter) ([]*models.Post, error) {
	exec := GetExecutor(ctx, r.db)

	conditions := []string{"user_id = ?"}
	args := []any{userID}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.PostType != "" {
		conditions = append(conditions, "post_type = ?")
		args = append(args, filter.PostType)
	}

	query := exec.Rebind(`SELECT ` + postColumns + ` FROM posts WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY scheduled_date DESC, scheduled_time DESC`)

	posts := []*models.Post{}
	if err := sqlx.SelectContext(ctx, exec, &posts, query, args...); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

// UpdateScheduled rewrites the editable fields of a post that is still
// scheduled. It reports false when the post is missing or has moved on.
func (r *postRepository) UpdateScheduled(ctx context.Context, post *models.Post) (bool, error) {
	exec := GetExecutor(ctx, r.db)

	post.UpdatedAt = time.Now().UTC()
	query := exec.Rebind(`
		UPDATE posts
		SET text = ?,
			scheduled_date = ?,
			scheduled_time = ?,
			timezone = ?,
			post_type = ?,
			thread_count = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ? AND status = ?
	`)

	res, err := exec.ExecContext(ctx, query,
		post.Text, post.ScheduledDate, post.ScheduledTime, post.Timezone, post.PostType, post.ThreadCount,
		post.UpdatedAt, post.ID, post.UserID, models.PostStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("update post: %w", err)
	}

	return affected(res)
}

func (r *postRepository) Remove(ctx context.Context, id string, userID int64) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`DELETE FROM posts WHERE id = ? AND user_id = ?`)

	res, err := exec.ExecContext(ctx, query, id, userID)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("delete post: %w", err)
	}

	return affected(res)
}

// ListDue returns posts awaiting delivery whose naive scheduled date and time
// are at or before the given ones, oldest first.
func (r *postRepository) ListDue(ctx context.Context, date, clock string, limit int) ([]*models.Post, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`
		SELECT ` + postColumns + `
		FROM posts
		WHERE status IN (?, ?)
			AND (scheduled_date < ? OR (scheduled_date = ? AND scheduled_time <= ?))
		ORDER BY scheduled_date ASC, scheduled_time ASC
		LIMIT ?
	`)

	posts := []*models.Post{}
	err := sqlx.SelectContext(ctx, exec, &posts, query,
		models.PostStatusScheduled, models.PostStatusRetrying, date, date, clock, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("list due posts: %w", err)
	}

	return posts, nil
}

// Claim moves a post from the given status to posting. False means another
// processor got there first.
func (r *postRepository) Claim(ctx context.Context, id string, from models.PostStatus) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE posts SET status = ?, updated_at = ? WHERE id = ? AND status = ?`)

	res, err := exec.ExecContext(ctx, query, models.PostStatusPosting, time.Now().UTC(), id, from)
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("claim post: %w", err)
	}

	return affected(res)
}

func (r *postRepository) FinalizePost(ctx context.Context, id string, outcome models.Outcome) error {
	exec := GetExecutor(ctx, r.db)

	sets := []string{"status = ?", "error_message = ?", "updated_at = ?"}
	args := []any{outcome.Status, outcome.ErrorMessage, time.Now().UTC()}

	if outcome.PostedAt != nil {
		sets = append(sets, "posted_at = ?")
		args = append(args, outcome.PostedAt.UTC())
	}
	if outcome.NextDate != "" {
		sets = append(sets, "scheduled_date = ?")
		args = append(args, outcome.NextDate)
	}
	if outcome.NextTime != "" {
		sets = append(sets, "scheduled_time = ?")
		args = append(args, outcome.NextTime)
	}
	if outcome.RetryCount != nil {
		sets = append(sets, "retry_count = ?")
		args = append(args, *outcome.RetryCount)
	}
	args = append(args, id)

	query := exec.Rebind(`UPDATE posts SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("finalize post: %w", err)
	}

	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
