package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/maheshrc27/autopost/internal/models"
)

const selectedAccountColumns = `post_id, account_id, position, posted, posted_tweet_id, posted_at, error_message`

// SelectedAccountRepository stores the destination records of posts.
type SelectedAccountRepository interface {
	ReplaceForPost(ctx context.Context, postID string, accountIDs []string) error
	ListByPostID(ctx context.Context, postID string) ([]*models.SelectedAccount, error)
	ListDetailsByPostIDs(ctx context.Context, postIDs []string) (map[string][]*models.AccountDetail, error)

	ListPending(ctx context.Context, postID string) ([]*models.SelectedAccount, error)
	RecordDestinationSuccess(ctx context.Context, postID, accountID string, externalIDs []string, at time.Time) error
	RecordDestinationFailure(ctx context.Context, postID, accountID, message string) error
}

type selectedAccountRepository struct {
	db *sqlx.DB
}

func NewSelectedAccountRepository(db *sqlx.DB) SelectedAccountRepository {
	return &selectedAccountRepository{db: db}
}

// ReplaceForPost drops the destination rows of a post and writes one fresh row
// per account, keeping the given order.
func (r *selectedAccountRepository) ReplaceForPost(ctx context.Context, postID string, accountIDs []string) error {
	exec := GetExecutor(ctx, r.db)

	if _, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM selected_accounts WHERE post_id = ?`), postID); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("clear destinations: %w", err)
	}

	query := exec.Rebind(`INSERT INTO selected_accounts (post_id, account_id, position, posted) VALUES (?, ?, ?, ?)`)
	for i, accountID := range accountIDs {
		if _, err := exec.ExecContext(ctx, query, postID, accountID, i, false); err != nil {
			slog.Info(err.Error())
			return fmt.Errorf("insert destination %s: %w", accountID, err)
		}
	}

	return nil
}

func (r *selectedAccountRepository) ListByPostID(ctx context.Context, postID string) ([]*models.SelectedAccount, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + selectedAccountColumns + ` FROM selected_accounts WHERE post_id = ? ORDER BY position`)

	accounts := []*models.SelectedAccount{}
	if err := sqlx.SelectContext(ctx, exec, &accounts, query, postID); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}

	return accounts, nil
}

func (r *selectedAccountRepository) ListDetailsByPostIDs(ctx context.Context, postIDs []string) (map[string][]*models.AccountDetail, error) {
	details := make(map[string][]*models.AccountDetail, len(postIDs))
	if len(postIDs) == 0 {
		return details, nil
	}

	exec := GetExecutor(ctx, r.db)
	query, args, err := sqlx.In(`
		SELECT sa.post_id, sa.account_id, sa.position, sa.posted, sa.posted_tweet_id, sa.posted_at, sa.error_message,
			a.display_name, a.username, a.avatar
		FROM selected_accounts sa
		LEFT JOIN social_accounts a ON a.id = sa.account_id
		WHERE sa.post_id IN (?)
		ORDER BY sa.post_id, sa.position
	`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*models.AccountDetail
	if err := sqlx.SelectContext(ctx, exec, &rows, exec.Rebind(query), args...); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}

	for _, row := range rows {
		details[row.PostID] = append(details[row.PostID], row)
	}
	return details, nil
}

// ListPending returns the destinations of a post that have not been posted yet.
func (r *selectedAccountRepository) ListPending(ctx context.Context, postID string) ([]*models.SelectedAccount, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`SELECT ` + selectedAccountColumns + ` FROM selected_accounts WHERE post_id = ? AND posted = ? ORDER BY position`)

	accounts := []*models.SelectedAccount{}
	if err := sqlx.SelectContext(ctx, exec, &accounts, query, postID, false); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("query rows: %w", err)
	}

	return accounts, nil
}

func (r *selectedAccountRepository) RecordDestinationSuccess(ctx context.Context, postID, accountID string, externalIDs []string, at time.Time) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`
		UPDATE selected_accounts
		SET posted = ?,
			posted_tweet_id = ?,
			posted_at = ?,
			error_message = NULL
		WHERE post_id = ? AND account_id = ?
	`)

	_, err := exec.ExecContext(ctx, query, true, strings.Join(externalIDs, ","), at.UTC(), postID, accountID)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("record destination success: %w", err)
	}
	return nil
}

func (r *selectedAccountRepository) RecordDestinationFailure(ctx context.Context, postID, accountID, message string) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE selected_accounts SET error_message = ? WHERE post_id = ? AND account_id = ?`)

	if _, err := exec.ExecContext(ctx, query, message, postID, accountID); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("record destination failure: %w", err)
	}
	return nil
}
