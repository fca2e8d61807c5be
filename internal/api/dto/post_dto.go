package dto

import "time"

// PostInput payload for creating or updating a post.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID        int        `json:"id"`
	AuthorID  int        `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CommentInput payload for adding a comment.
type CommentInput struct {
	Content string `json:"content"`
}

// CommentResponse is the public view of a comment.
type CommentResponse struct {
	ID        int        `json:"id"`
	PostID    int        `json:"post_id"`
	AuthorID  int        `json:"author_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// LikeInput payload for like/unlike toggles.
type LikeInput struct {
	IsLiked bool `json:"isLiked"`
}
