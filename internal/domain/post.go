package domain

import "time"

// Post is a piece of content published by a user.
type Post struct {
	ID        int
	AuthorID  int
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        int
	PostID    int
	AuthorID  int
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// LikeTarget distinguishes what a like row points at.
type LikeTarget string

const (
	LikeTargetPost    LikeTarget = "POST"
	LikeTargetComment LikeTarget = "COMMENT"
)

// Like records a user liking a post or a comment.
type Like struct {
	ID        int
	UserID    int
	Target    LikeTarget
	TargetID  int
	CreatedAt time.Time
}
