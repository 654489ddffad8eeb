package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBlogService(t *testing.T) (*BlogService, *gorm.DB, *models.User) {
	t.Helper()
	db := setupTestDB(t)
	author := createTestUser(t, db, "writer", models.RoleManager)
	svc := NewBlogService(repository.NewBlogRepository(db), repository.NewEngagementRepository(db))
	return svc, db, author
}

func TestCreatePostSlugAndConflict(t *testing.T) {
	svc, _, author := newBlogService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{
		ActorID: author.ID, Title: "Autumn Catalog Preview!", Body: "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "autumn-catalog-preview", post.Slug)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)

	_, err = svc.CreatePost(ctx, CreatePostInput{
		ActorID: author.ID, Title: "Autumn Catalog Preview", Body: "other body",
	})
	assertAppErrorCode(t, err, models.CodeConflict)
}

func TestPublishStampsTimestampOnce(t *testing.T) {
	svc, _, author := newBlogService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Draft", Body: "body"})
	require.NoError(t, err)

	published, err := svc.SetPublished(ctx, author.ID, models.RoleManager, post.ID, true)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// unpublish keeps the timestamp
	unpublished, err := svc.SetPublished(ctx, author.ID, models.RoleManager, post.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.Published)
	require.NotNil(t, unpublished.PublishedAt)

	time.Sleep(10 * time.Millisecond)
	republished, err := svc.SetPublished(ctx, author.ID, models.RoleManager, post.ID, true)
	require.NoError(t, err)
	assert.True(t, republished.PublishedAt.Equal(firstStamp))
}

func TestGetPostBySlugHidesDrafts(t *testing.T) {
	svc, _, author := newBlogService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Hidden Draft", Body: "body"})
	require.NoError(t, err)

	_, err = svc.GetPostBySlug(ctx, post.Slug)
	assertAppErrorCode(t, err, models.CodeNotFound)

	_, err = svc.SetPublished(ctx, author.ID, models.RoleManager, post.ID, true)
	require.NoError(t, err)

	got, err := svc.GetPostBySlug(ctx, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	// staff read sees the draft either way
	_, err = svc.SetPublished(ctx, author.ID, models.RoleManager, post.ID, false)
	require.NoError(t, err)
	staffView, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, staffView.Published)
}

func TestListPostsPublishedOnly(t *testing.T) {
	svc, _, author := newBlogService(t)
	ctx := context.Background()

	draft, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Draft Post", Body: "body"})
	require.NoError(t, err)
	live, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Live Post", Body: "body"})
	require.NoError(t, err)
	_, err = svc.SetPublished(ctx, author.ID, models.RoleManager, live.ID, true)
	require.NoError(t, err)

	public, err := svc.ListPosts(ctx, true, 20, 0)
	require.NoError(t, err)
	require.Len(t, public.Posts, 1)
	assert.Equal(t, live.ID, public.Posts[0].ID)

	staff, err := svc.ListPosts(ctx, false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, staff.Posts, 2)
	_ = draft
}

func TestManagerTouchesOnlyOwnPosts(t *testing.T) {
	svc, db, author := newBlogService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Mine", Body: "body"})
	require.NoError(t, err)

	rival := createTestUser(t, db, "rival", models.RoleManager)
	newBody := "hijacked"
	_, err = svc.UpdatePost(ctx, UpdatePostInput{
		ActorID: rival.ID, ActorRole: models.RoleManager, PostID: post.ID, Body: &newBody,
	})
	assertAppErrorCode(t, err, models.CodeForbidden)

	err = svc.DeletePost(ctx, rival.ID, models.RoleManager, post.ID)
	assertAppErrorCode(t, err, models.CodeForbidden)

	// admins override ownership
	admin := createTestUser(t, db, "chief", models.RoleAdmin)
	edited, err := svc.UpdatePost(ctx, UpdatePostInput{
		ActorID: admin.ID, ActorRole: models.RoleAdmin, PostID: post.ID, Body: &newBody,
	})
	require.NoError(t, err)
	assert.Equal(t, "hijacked", edited.Body)
}

func TestPostLikeAndBookmarkToggles(t *testing.T) {
	svc, db, author := newBlogService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreatePostInput{ActorID: author.ID, Title: "Engaging", Body: "body"})
	require.NoError(t, err)
	reader := createTestUser(t, db, "reader", models.RoleUser)

	liked, err := svc.ToggleLike(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(1), liked.Likes)

	liked, err = svc.ToggleLike(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked.Liked)
	assert.Equal(t, int64(0), liked.Likes)

	marked, err := svc.ToggleBookmark(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, marked.Bookmarked)
	assert.Equal(t, int64(1), marked.Bookmarks)

	marked, err = svc.ToggleBookmark(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, marked.Bookmarked)
	assert.Equal(t, int64(0), marked.Bookmarks)
}
