package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/autopost/internal/models"
)

type PostMediaRepository interface {
	ReplaceForPost(ctx context.Context, postID string, media []*models.PostMedia) error
	ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error)
}

type postMediaRepository struct {
	db *sqlx.DB
}

func NewPostMediaRepository(db *sqlx.DB) PostMediaRepository {
	return &postMediaRepository{db: db}
}

func (r *postMediaRepository) ReplaceForPost(ctx context.Context, postID string, media []*models.PostMedia) error {
	exec := GetExecutor(ctx, r.db)

	if _, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM post_media WHERE post_id = ?`), postID); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("clear media: %w", err)
	}

	query := exec.Rebind(`
		INSERT INTO post_media (id, post_id, url, file_path, display_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	now := time.Now().UTC()
	for i, m := range media {
		m.PostID = postID
		m.DisplayOrder = i
		m.CreatedAt = now
		if _, err := exec.ExecContext(ctx, query, m.ID, m.PostID, m.URL, m.FilePath, m.DisplayOrder, m.CreatedAt); err != nil {
			slog.Info(err.Error())
			return fmt.Errorf("insert media: %w", err)
		}
	}

	return nil
}

func (r *postMediaRepository) ListByPostID(ctx context.Context, postID string) ([]*models.PostMedia, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`
		SELECT id, post_id, url, file_path, display_order, created_at
		FROM post_media
		WHERE post_id = ?
		ORDER BY display_order
	`)

	media := []*models.PostMedia{}
	if err := sqlx.SelectContext(ctx, exec, &media, query, postID); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}

	return media, nil
}
