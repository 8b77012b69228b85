package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/suite"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/api/handlers"
	"github.com/maheshrc27/autopost/internal/api/middleware"
	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/internal/repository"
	"github.com/maheshrc27/autopost/internal/service"
	"github.com/maheshrc27/autopost/internal/session"
	"github.com/maheshrc27/autopost/pkg/utils"
)

const testSecret = "test-secret"

type stubPublisher struct {
	res *engine.Result
	err error
	ids []string
}

func (p *stubPublisher) PublishNow(_ context.Context, postID string) (*engine.Result, error) {
	p.ids = append(p.ids, postID)
	return p.res, p.err
}

type stubEnqueuer struct {
	tasks []*asynq.Task
}

func (e *stubEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-42"}, nil
}

type APISuite struct {
	suite.Suite
	ctx       context.Context
	app       *fiber.App
	publisher *stubPublisher
	enqueuer  *stubEnqueuer
	token     string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.ctx = context.Background()

	db, err := repository.Open(s.ctx, "sqlite3", ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(repository.Migrate(s.ctx, db))
	s.T().Cleanup(func() { db.Close() })

	accounts := repository.NewSocialAccountRepository(db)
	settings := repository.NewSettingsRepository(db)
	for id, owner := range map[string]int64{"a1": 1, "b1": 2} {
		s.Require().NoError(accounts.Upsert(s.ctx, &models.SocialAccount{ID: id, UserID: owner, Username: id, AccessToken: "t", IsConnected: true}))
	}

	postService := service.NewPostService(
		repository.NewTransactionManager(db),
		repository.NewPostRepository(db),
		repository.NewSelectedAccountRepository(db),
		accounts,
		repository.NewPostMediaRepository(db),
		settings,
	)
	accountService := service.NewAccountService(
		service.NewXOAuthConfig("client", "secret", "http://localhost:3000/auth/x/callback"),
		session.NewMemoryStore(time.Minute),
		accounts,
		nil,
		make([]byte, 32),
	)

	s.publisher = &stubPublisher{}
	s.enqueuer = &stubEnqueuer{}

	s.app = fiber.New()
	auth := middleware.NewAuthMiddleware(config.AuthConfig{SecretKey: testSecret, CookieName: "autopost_token"})
	SetupRoutes(s.app, Handlers{
		Posts:    handlers.NewPostHandler(postService, s.publisher, s.enqueuer),
		Settings: handlers.NewSettingsHandler(service.NewSettingsService(settings)),
		Accounts: handlers.NewAccountHandler(accountService, "http://localhost:5173"),
		Health:   handlers.NewHealthHandler(db),
	}, auth.AuthMiddleware())

	s.token, err = utils.GenerateToken(testSecret, "1", time.Hour)
	s.Require().NoError(err)
}

func (s *APISuite) do(method, path string, body any, token string) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, data
}

func (s *APISuite) createPost(accounts ...string) string {
	resp, data := s.do(http.MethodPost, "/api/posts", map[string]any{
		"text":              "hello",
		"scheduled_date":    "2024-05-01",
		"scheduled_time":    "09:00",
		"selected_accounts": accounts,
	}, s.token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode, string(data))

	var created struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(data, &created))
	return created.ID
}

func (s *APISuite) TestHealthIsPublic() {
	resp, data := s.do(http.MethodGet, "/api/health", nil, "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.JSONEq(`{"status":"ok"}`, string(data))
}

func (s *APISuite) TestAuthRequired() {
	resp, _ := s.do(http.MethodGet, "/api/posts", nil, "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/posts", nil, "garbage")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.AddCookie(&http.Cookie{Name: "autopost_token", Value: s.token})
	res, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, res.StatusCode)
}

func (s *APISuite) TestPostLifecycle() {
	id := s.createPost("a1")

	resp, data := s.do(http.MethodGet, "/api/posts/"+id, nil, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), `"status":"scheduled"`)
	s.Contains(string(data), `"account_id":"a1"`)

	resp, data = s.do(http.MethodPut, "/api/posts/"+id, map[string]any{"scheduled_time": "10:30"}, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode, string(data))
	s.Contains(string(data), `"scheduled_time":"10:30"`)

	resp, data = s.do(http.MethodGet, "/api/posts?status=scheduled", nil, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), id)

	resp, _ = s.do(http.MethodDelete, "/api/posts/"+id, nil, s.token)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/posts/"+id, nil, s.token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *APISuite) TestCreatePost_Validation() {
	resp, data := s.do(http.MethodPost, "/api/posts", map[string]any{
		"text":              "hello",
		"scheduled_date":    "2024-05-01",
		"scheduled_time":    "9am",
		"selected_accounts": []string{"a1"},
	}, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Contains(string(data), "ScheduledTime")

	resp, _ = s.do(http.MethodPost, "/api/posts", map[string]any{
		"text":              "hello",
		"scheduled_date":    "2024-05-01",
		"scheduled_time":    "09:00",
		"selected_accounts": []string{"b1"},
	}, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestPublish() {
	id := s.createPost("a1")

	s.publisher.res = &engine.Result{PostID: id, Status: models.PostStatusPosted}
	resp, data := s.do(http.MethodPost, "/api/posts/"+id+"/publish", nil, s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), `"status":"posted"`)

	s.publisher.res, s.publisher.err = nil, fmt.Errorf("%w: status is posted", engine.ErrInvalidState)
	resp, _ = s.do(http.MethodPost, "/api/posts/"+id+"/publish", nil, s.token)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	s.publisher.res = &engine.Result{PostID: id, Status: models.PostStatusRetrying, Error: "a1: rate limited"}
	s.publisher.err = fmt.Errorf("%w: a1: rate limited", engine.ErrDeliveryFailed)
	resp, data = s.do(http.MethodPost, "/api/posts/"+id+"/publish", nil, s.token)
	s.Equal(fiber.StatusBadGateway, resp.StatusCode)
	s.Contains(string(data), `"status":"retrying"`)

	s.Equal([]string{id, id, id}, s.publisher.ids)
}

func (s *APISuite) TestPublishAsync() {
	id := s.createPost("a1")

	resp, data := s.do(http.MethodPost, "/api/posts/"+id+"/publish?async=true", nil, s.token)
	s.Equal(fiber.StatusAccepted, resp.StatusCode)
	s.JSONEq(`{"task_id":"task-42"}`, string(data))
	s.Require().Len(s.enqueuer.tasks, 1)
	s.Empty(s.publisher.ids)
}

func (s *APISuite) TestPublishForeignPost() {
	id := s.createPost("a1")

	other, err := utils.GenerateToken(testSecret, "2", time.Hour)
	s.Require().NoError(err)

	resp, _ := s.do(http.MethodPost, "/api/posts/"+id+"/publish", nil, other)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Empty(s.publisher.ids)
}

func (s *APISuite) TestSettings() {
	resp, data := s.do(http.MethodGet, "/api/settings", nil, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), `"auto_retry":true`)

	resp, data = s.do(http.MethodPut, "/api/settings", map[string]any{"bulk_pause": true, "retry_interval": 30}, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode, string(data))
	s.Contains(string(data), `"bulk_pause":true`)
	s.Contains(string(data), `"retry_interval":30`)

	resp, _ = s.do(http.MethodPut, "/api/settings", map[string]any{"max_retry_count": 0}, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *APISuite) TestAccounts() {
	resp, data := s.do(http.MethodGet, "/api/accounts", nil, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), `"id":"a1"`)
	s.NotContains(string(data), `"id":"b1"`)
	s.NotContains(string(data), "access_token")

	resp, _ = s.do(http.MethodPut, "/api/accounts/a1/type", map[string]any{"account_type": "premium"}, s.token)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodPut, "/api/accounts/a1/type", map[string]any{"account_type": "gold"}, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/api/accounts/b1/disconnect", nil, s.token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, "/api/accounts/a1", nil, s.token)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func (s *APISuite) TestConnectAndCallback() {
	resp, data := s.do(http.MethodGet, "/auth/x?redirect=false", nil, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Contains(string(data), "code_challenge")

	resp, _ = s.do(http.MethodGet, "/auth/x", nil, s.token)
	s.Equal(fiber.StatusFound, resp.StatusCode)
	s.True(strings.HasPrefix(resp.Header.Get("Location"), "https://twitter.com/i/oauth2/authorize"))

	resp, _ = s.do(http.MethodGet, "/auth/x/callback?error=access_denied", nil, "")
	s.Equal(fiber.StatusFound, resp.StatusCode)
	s.Equal("http://localhost:5173/accounts?error=access_denied", resp.Header.Get("Location"))

	resp, _ = s.do(http.MethodGet, "/auth/x/callback?state=unknown&code=c", nil, "")
	s.Equal(fiber.StatusFound, resp.StatusCode)
	s.Contains(resp.Header.Get("Location"), "error=")
}
