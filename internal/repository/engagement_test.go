package repository

import (
	"context"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, slug string) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{AuthorID: authorID, Title: slug, Slug: slug, Body: "body", Published: true}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, userID, postID uint, parentID *uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{UserID: userID, PostID: postID, ParentID: parentID, Content: content}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func TestToggleCommentLikeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "liker")
	author := seedUser(t, db, "author")
	post := seedPost(t, db, author.ID, "a-post")
	comment := seedComment(t, db, author.ID, post.ID, nil, "root")

	active, count, err := repo.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, int64(1), count)

	active, count, err = repo.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, int64(0), count)

	active, count, err = repo.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, int64(1), count)
}

func TestToggleCommentLikeCountsPerComment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	first := seedUser(t, db, "first")
	second := seedUser(t, db, "second")
	post := seedPost(t, db, first.ID, "a-post")
	comment := seedComment(t, db, first.ID, post.ID, nil, "root")
	other := seedComment(t, db, first.ID, post.ID, nil, "other")

	_, _, err := repo.ToggleCommentLike(ctx, first.ID, comment.ID)
	require.NoError(t, err)
	_, count, err := repo.ToggleCommentLike(ctx, second.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// the sibling comment is untouched
	_, count, err = repo.ToggleCommentLike(ctx, second.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostLikeAndBookmarkAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "reader")
	author := seedUser(t, db, "author")
	post := seedPost(t, db, author.ID, "a-post")

	liked, likes, err := repo.TogglePostLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), likes)

	marked, bookmarks, err := repo.TogglePostBookmark(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, int64(1), bookmarks)

	// removing the bookmark leaves the like in place
	marked, bookmarks, err = repo.TogglePostBookmark(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, marked)
	assert.Equal(t, int64(0), bookmarks)

	var stillLiked int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&stillLiked).Error)
	assert.Equal(t, int64(1), stillLiked)
}
