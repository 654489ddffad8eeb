package models

import (
	"time"
)

// CommentLike records a user's like on a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_comment_like" json:"user_id"`
	CommentID uint           `gorm:"not null;uniqueIndex:idx_comment_like" json:"comment_id"`
	CreatedAt time.Time      `json:"created_at"`
}

// PostLike records a user's like on a blog post.
// The combination of UserID and PostID must be unique.
type PostLike struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_post_like" json:"user_id"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_post_like" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
}

// PostBookmark records a user's bookmark of a blog post.
// The combination of UserID and PostID must be unique.
type PostBookmark struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_post_bookmark" json:"user_id"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_post_bookmark" json:"post_id"`
	CreatedAt time.Time      `json:"created_at"`
}
