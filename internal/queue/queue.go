package queue

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/autopost/internal/engine"
)

// PostPublisher delivers a single post on demand.
type PostPublisher interface {
	PublishNow(ctx context.Context, postID string) (*engine.Result, error)
}

type Queue struct {
	publisher PostPublisher
	logger    *slog.Logger
}

func NewQueue(publisher PostPublisher, logger *slog.Logger) *Queue {
	return &Queue{
		publisher: publisher,
		logger:    logger,
	}
}

const TaskTypePublishPost = "post:publish"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
