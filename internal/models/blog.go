package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an article in the site blog.
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"unique;not null" json:"slug"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	CoverURL    string     `json:"cover_url"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	// LikesCount, BookmarksCount and CommentsCount are not persisted; computed at query time
	LikesCount     int            `gorm:"->" json:"likes_count"`
	BookmarksCount int            `gorm:"->" json:"bookmarks_count"`
	CommentsCount  int            `gorm:"->" json:"comments_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
