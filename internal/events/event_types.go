package events

import (
	"time"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated  EventType = "post_created"
	EventPostDeleted  EventType = "post_deleted"
	EventCommentAdded EventType = "comment_added"
	EventLikeToggled  EventType = "like_toggled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int         `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	PostID int    `json:"post_id"`
	Title  string `json:"title"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	PostID    int    `json:"post_id"`
	CommentID int    `json:"comment_id"`
	Preview   string `json:"preview"`
}

// LikeToggledPayload payload.
type LikeToggledPayload struct {
	Target   domain.LikeTarget `json:"target"`
	TargetID int               `json:"target_id"`
	Liked    bool              `json:"liked"`
}
