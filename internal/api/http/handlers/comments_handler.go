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

// CommentsHandler manages comment endpoints.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(comments *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// ListByPost GET /posts/:id/comments?skip=&limit= (public).
func (h *CommentsHandler) ListByPost(c *fiber.Ctx) error {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 0)

	comments, err := h.comments.FindAllCommentsOfAPost(c.UserContext(), postID, skip, limit)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /posts/:id/comments (requires USER).
func (h *CommentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}
	var req dto.CommentInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.comments.AddComment(c.UserContext(), principal.User.ID, postID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
