package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a comment on a blog post. A nil ParentID marks a root
// comment; a set ParentID must reference a root comment on the same
// post. Threading is capped at two levels, replies cannot be replied to.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	UserID   uint      `gorm:"not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     *BlogPost `gorm:"foreignKey:PostID" json:"post,omitempty"`
	ParentID *uint     `gorm:"index" json:"parent_id,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int            `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommentThread is a root comment with its direct replies, as produced
// by service.BuildCommentTree.
type CommentThread struct {
	Comment
	Replies []*Comment `json:"replies"`
}
