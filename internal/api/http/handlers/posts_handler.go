package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gamehub-dev/gamehub-service/internal/api/dto"
	"github.com/gamehub-dev/gamehub-service/internal/auth"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/service"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// PostsHandler manages post endpoints.
type PostsHandler struct {
	posts *service.PostService
	views *service.ViewService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(posts *service.PostService, views *service.ViewService) *PostsHandler {
	return &PostsHandler{posts: posts, views: views}
}

// List GET /posts?skip=&limit= (public).
func (h *PostsHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 0)

	posts, err := h.posts.FindAll(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	items := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, postResponse(&posts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /posts/:id (public). Accepts ?title= lookup through GetByTitle.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	post, err := h.posts.FindPostByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}

// GetByTitle GET /posts/by-title?title= (public).
func (h *PostsHandler) GetByTitle(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	post, err := h.posts.FindPostByTitle(c.UserContext(), title)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}

// Create POST /posts (requires USER).
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.PostInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.posts.CreatePost(c.UserContext(), principal.User.ID, service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": postResponse(post)})
}

// Update PATCH /posts/:id (requires USER, author only).
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	var req dto.PostInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.posts.UpdatePost(c.UserContext(), principal.User.ID, id, service.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}

// Delete DELETE /posts/:id (requires USER, author only).
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	if err := h.posts.DeletePost(c.UserContext(), principal.User.ID, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// RecordView POST /posts/:id/views (public).
func (h *PostsHandler) RecordView(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	if _, err := h.posts.FindPostByID(c.UserContext(), id); err != nil {
		return err
	}
	count, err := h.views.RecordView(c.UserContext(), id)
	if err != nil {
		return apperrors.NewDependencyUnavailable("view counter unavailable", err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"post_id": id, "views": count}})
}

// ViewCount GET /posts/:id/views (public).
func (h *PostsHandler) ViewCount(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	count, err := h.views.ViewCount(c.UserContext(), id)
	if err != nil {
		return apperrors.NewDependencyUnavailable("view counter unavailable", err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"post_id": id, "views": count}})
}

func postResponse(post *domain.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
