package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/events"
	"github.com/gamehub-dev/gamehub-service/internal/repository"
)

// LikeService coordinates like/unlike workflows for posts and comments.
type LikeService struct {
	likes      repository.LikeRepository
	posts      *PostService
	comments   *CommentService
	dispatcher events.Dispatcher
}

// NewLikeService builds the service.
func NewLikeService(likes repository.LikeRepository, posts *PostService, comments *CommentService, dispatcher events.Dispatcher) *LikeService {
	return &LikeService{likes: likes, posts: posts, comments: comments, dispatcher: dispatcher}
}

// LikePost sets or clears the caller's like on a post.
func (s *LikeService) LikePost(ctx context.Context, userID, postID int, liked bool) error {
	if _, err := s.posts.FindPostByID(ctx, postID); err != nil {
		return err
	}
	if err := s.likes.Set(ctx, userID, domain.LikeTargetPost, postID, liked); err != nil {
		return err
	}
	s.publish(ctx, userID, domain.LikeTargetPost, postID, liked)
	return nil
}

// LikeComment sets or clears the caller's like on a comment.
func (s *LikeService) LikeComment(ctx context.Context, userID, commentID int, liked bool) error {
	if _, err := s.comments.FindCommentByID(ctx, commentID); err != nil {
		return err
	}
	if err := s.likes.Set(ctx, userID, domain.LikeTargetComment, commentID, liked); err != nil {
		return err
	}
	s.publish(ctx, userID, domain.LikeTargetComment, commentID, liked)
	return nil
}

// CountLikes returns how many users like the target.
func (s *LikeService) CountLikes(ctx context.Context, target domain.LikeTarget, targetID int) (int, error) {
	return s.likes.Count(ctx, target, targetID)
}

func (s *LikeService) publish(ctx context.Context, actorID int, target domain.LikeTarget, targetID int, liked bool) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLikeToggled,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.LikeToggledPayload{
			Target:   target,
			TargetID: targetID,
			Liked:    liked,
		},
	})
}
