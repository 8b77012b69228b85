package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/maheshrc27/autopost/internal/engine"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	res, err := q.publisher.PublishNow(ctx, payload.PostID)
	switch {
	case errors.Is(err, engine.ErrPostNotFound), errors.Is(err, engine.ErrInvalidState):
		q.logger.Info("publish task dropped", "post_id", payload.PostID, "reason", err.Error())
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	case errors.Is(err, engine.ErrDeliveryFailed):
		// The outcome is already persisted on the post.
		q.logger.Warn("publish task finished without posting", "post_id", payload.PostID, "status", res.Status, "error", res.Error)
		return nil
	case err != nil:
		return err
	}

	q.logger.Info("publish task posted", "post_id", payload.PostID)
	return nil
}

// Register binds the queue's handlers onto mux.
func (q *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypePublishPost, q.HandlePublishPostTask)
}
