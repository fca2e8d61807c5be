package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gamehub-dev/gamehub-service/internal/api/http/handlers"
	"github.com/gamehub-dev/gamehub-service/internal/auth"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Posts          *handlers.PostsHandler
	Comments       *handlers.CommentsHandler
	Likes          *handlers.LikesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Routes without the auth middleware are
// public; the like/unlike mutations additionally require the USER role, and
// user administration requires ADMIN.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	// Public reads.
	app.Get("/posts", cfg.Posts.List)
	app.Get("/posts/by-title", cfg.Posts.GetByTitle)
	app.Get("/posts/:id", cfg.Posts.Get)
	app.Get("/posts/:id/comments", cfg.Comments.ListByPost)
	app.Get("/posts/:id/likes", cfg.Likes.PostLikeCount)
	app.Get("/posts/:id/views", cfg.Posts.ViewCount)
	app.Post("/posts/:id/views", cfg.Posts.RecordView)

	// Authenticated mutations.
	requireUser := auth.RequireRole(domain.RoleUser)
	app.Post("/posts", cfg.AuthMiddleware.Handle, requireUser, cfg.Posts.Create)
	app.Patch("/posts/:id", cfg.AuthMiddleware.Handle, requireUser, cfg.Posts.Update)
	app.Delete("/posts/:id", cfg.AuthMiddleware.Handle, requireUser, cfg.Posts.Delete)
	app.Post("/posts/:id/comments", cfg.AuthMiddleware.Handle, requireUser, cfg.Comments.Create)
	app.Post("/posts/:id/likes", cfg.AuthMiddleware.Handle, requireUser, cfg.Likes.LikePost)
	app.Post("/comments/:id/likes", cfg.AuthMiddleware.Handle, requireUser, cfg.Likes.LikeComment)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", auth.RequireAuthenticated(), cfg.Users.Me)
	users.Delete("/me", auth.RequireAuthenticated(), cfg.Users.DeleteMe)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)
}
