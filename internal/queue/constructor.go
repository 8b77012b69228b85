package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

func NewPublishTask(payload PublishPostPayload) (*asynq.Task, error) {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskTypePublishPost,
		taskPayload,
		asynq.MaxRetry(0),
		asynq.Timeout(5*time.Minute),
	), nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueuePublish hands a publish-now request to the worker pool. The post's
// own retry bookkeeping covers failures, so asynq never retries the task.
func EnqueuePublish(asynqClient Enqueuer, payload PublishPostPayload) (string, error) {
	task, err := NewPublishTask(payload)
	if err != nil {
		return "", err
	}

	info, err := asynqClient.Enqueue(task)
	if err != nil {
		return "", fmt.Errorf("enqueue publish task: %w", err)
	}

	slog.Info("publish task enqueued", "post_id", payload.PostID, "task_id", info.ID)
	return info.ID, nil
}
