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

const defaultPageLimit = 20

// PostService coordinates post workflows.
type PostService struct {
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// PostInput describes post creation/update payload.
type PostInput struct {
	Title   string
	Content string
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, dispatcher: dispatcher}
}

// CreatePost stores a new post owned by the author.
func (s *PostService) CreatePost(ctx context.Context, authorID int, input PostInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return nil, apperrors.NewValidationError("title and content required", nil)
	}
	if _, err := s.posts.GetByTitle(ctx, title); err == nil {
		return nil, apperrors.NewConflict("post title already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  input.Content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPostCreated, authorID, events.PostCreatedPayload{
		PostID: post.ID,
		Title:  post.Title,
	})
	return post, nil
}

// UpdatePost modifies a post; only the author may touch it.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID int, input PostInput) (*domain.Post, error) {
	post, err := s.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actorID {
		return nil, apperrors.NewForbidden("not the post author")
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		post.Title = title
	}
	if strings.TrimSpace(input.Content) != "" {
		post.Content = input.Content
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post; only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID int) error {
	post, err := s.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return apperrors.NewForbidden("not the post author")
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	s.publish(ctx, events.EventPostDeleted, actorID, events.PostCreatedPayload{
		PostID: postID,
		Title:  post.Title,
	})
	return nil
}

// FindAll pages posts most-recently-touched first.
func (s *PostService) FindAll(ctx context.Context, skip, limit int) ([]domain.Post, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = defaultPageLimit
	}
	return s.posts.List(ctx, skip, limit)
}

// FindPostByID fetches a single post.
func (s *PostService) FindPostByID(ctx context.Context, id int) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": id})
		}
		return nil, err
	}
	return post, nil
}

// FindPostByTitle fetches a single post by its exact title.
func (s *PostService) FindPostByTitle(ctx context.Context, title string) (*domain.Post, error) {
	post, err := s.posts.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"title": title})
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) publish(ctx context.Context, eventType events.EventType, actorID int, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
