package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/queue"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/transfer"
)

type PostPublisher interface {
	PublishNow(ctx context.Context, postID string) (*engine.Result, error)
}

type PostHandler struct {
	s         service.PostService
	publisher PostPublisher
	enqueuer  queue.Enqueuer
}

// NewPostHandler wires the post endpoints. enqueuer may be nil, in which case
// async publishing is rejected.
func NewPostHandler(service service.PostService, publisher PostPublisher, enqueuer queue.Enqueuer) *PostHandler {
	return &PostHandler{s: service, publisher: publisher, enqueuer: enqueuer}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PostCreation
	if ok, err := parseBody(c, &pc); !ok {
		return err
	}

	post, err := h.s.CreatePost(c.Context(), userID, &pc)
	if err != nil {
		slog.Info(err.Error())
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)

	filter := repository.PostFilter{
		Status:   models.PostStatus(c.Query("status")),
		PostType: models.PostType(c.Query("type")),
	}

	posts, err := h.s.List(c.Context(), userID, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.PostInfo(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var pu transfer.PostUpdate
	if ok, err := parseBody(c, &pu); !ok {
		return err
	}

	post, err := h.s.UpdatePost(c.Context(), GetUserID(c), c.Params("id"), &pu)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	if err := h.s.Remove(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PublishPost delivers a scheduled post right away. With ?async=true the
// delivery runs on the worker pool and the response only carries the task id.
func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	postID := c.Params("id")

	// Ownership check; the engine itself is user agnostic.
	if _, err := h.s.PostInfo(c.Context(), GetUserID(c), postID); err != nil {
		return sendError(c, err)
	}

	if c.QueryBool("async") {
		if h.enqueuer == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Async publishing is not configured",
			})
		}

		taskID, err := queue.EnqueuePublish(h.enqueuer, queue.PublishPostPayload{PostID: postID})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error scheduling post",
			})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"task_id": taskID,
		})
	}

	res, err := h.publisher.PublishNow(c.Context(), postID)
	if err != nil {
		if errors.Is(err, engine.ErrDeliveryFailed) && res != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":  err.Error(),
				"result": res,
			})
		}
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(res)
}
