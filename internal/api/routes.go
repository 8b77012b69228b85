// Package api exposes the HTTP surface of autopost.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/maheshrc27/autopost/internal/api/handlers"
)

type Handlers struct {
	Posts    *handlers.PostHandler
	Settings *handlers.SettingsHandler
	Accounts *handlers.AccountHandler
	Media    *handlers.MediaHandler
	Health   *handlers.HealthHandler
}

// SetupRoutes mounts every endpoint on app. auth guards everything except
// the health check and the OAuth callback, which carries its own state.
// Media is optional and skipped when nil.
func SetupRoutes(app *fiber.App, h Handlers, auth fiber.Handler) {
	app.Get("/api/health", h.Health.Health)
	app.Get("/auth/x/callback", h.Accounts.Callback)
	app.Get("/auth/x", auth, h.Accounts.Connect)

	api := app.Group("/api")
	api.Use(auth)

	api.Get("/settings", h.Settings.GetSettingsInfo)
	api.Put("/settings", h.Settings.UpdateSettings)

	api.Post("/posts", h.Posts.CreatePost)
	api.Get("/posts", h.Posts.ListPosts)
	api.Get("/posts/:id", h.Posts.GetPost)
	api.Put("/posts/:id", h.Posts.UpdatePost)
	api.Delete("/posts/:id", h.Posts.RemovePost)
	api.Post("/posts/:id/publish", h.Posts.PublishPost)

	api.Get("/accounts", h.Accounts.ListAccounts)
	api.Post("/accounts/:id/disconnect", h.Accounts.DisconnectAccount)
	api.Put("/accounts/:id/type", h.Accounts.UpdateAccountType)
	api.Delete("/accounts/:id", h.Accounts.DeleteAccount)

	if h.Media != nil {
		api.Post("/media", h.Media.UploadMedia)
	}
}
