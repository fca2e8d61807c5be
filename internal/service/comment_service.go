package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/events"
	"github.com/gamehub-dev/gamehub-service/internal/repository"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// CommentService coordinates comment workflows.
type CommentService struct {
	comments   repository.CommentRepository
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// NewCommentService builds the service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, posts: posts, dispatcher: dispatcher}
}

// AddComment attaches a comment to an existing post.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID int, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentAdded,
			ActorID:   authorID,
			Timestamp: time.Now(),
			Payload: events.CommentAddedPayload{
				PostID:    postID,
				CommentID: comment.ID,
				Preview:   preview(content, 80),
			},
		})
	}
	return comment, nil
}

// FindCommentByID fetches a single comment.
func (s *CommentService) FindCommentByID(ctx context.Context, id int) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("comment", map[string]any{"id": id})
		}
		return nil, err
	}
	return comment, nil
}

// FindAllCommentsOfAPost pages a post's comments most-recent first.
func (s *CommentService) FindAllCommentsOfAPost(ctx context.Context, postID, skip, limit int) ([]domain.Comment, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPageLimit
	}
	return s.comments.ListByPost(ctx, postID, skip, limit)
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
