package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gamehub-dev/gamehub-service/internal/api/dto"
	"github.com/gamehub-dev/gamehub-service/internal/auth"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/service"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// LikesHandler manages like/unlike endpoints.
type LikesHandler struct {
	likes *service.LikeService
}

// NewLikesHandler constructs handler.
func NewLikesHandler(likes *service.LikeService) *LikesHandler {
	return &LikesHandler{likes: likes}
}

// LikePost POST /posts/:id/likes (requires USER).
func (h *LikesHandler) LikePost(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	var req dto.LikeInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.likes.LikePost(c.UserContext(), principal.User.ID, postID, req.IsLiked); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"liked": req.IsLiked}})
}

// LikeComment POST /comments/:id/likes (requires USER).
func (h *LikesHandler) LikeComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	commentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid comment id", nil)
	}
	var req dto.LikeInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.likes.LikeComment(c.UserContext(), principal.User.ID, commentID, req.IsLiked); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"liked": req.IsLiked}})
}

// PostLikeCount GET /posts/:id/likes (public).
func (h *LikesHandler) PostLikeCount(c *fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	count, err := h.likes.CountLikes(c.UserContext(), domain.LikeTargetPost, postID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"post_id": postID, "likes": count}})
}
