package service

import (
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildCommentTreeGroupsReplies(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	flat := []*models.Comment{
		{ID: 3, Content: "newest root"},
		{ID: 1, Content: "oldest root"},
		{ID: 5, ParentID: uintPtr(1), Content: "late reply"},
		{ID: 2, ParentID: uintPtr(1), Content: "early reply"},
	}
	flat[0].CreatedAt = base.Add(3 * time.Hour)
	flat[1].CreatedAt = base
	flat[2].CreatedAt = base.Add(2 * time.Hour)
	flat[3].CreatedAt = base.Add(1 * time.Hour)

	threads := BuildCommentTree(flat)
	require.Len(t, threads, 2)

	// roots keep the input order, newest first
	assert.Equal(t, uint(3), threads[0].ID)
	assert.Equal(t, uint(1), threads[1].ID)

	assert.Empty(t, threads[0].Replies)

	// replies sorted oldest first regardless of input order
	require.Len(t, threads[1].Replies, 2)
	assert.Equal(t, uint(2), threads[1].Replies[0].ID)
	assert.Equal(t, uint(5), threads[1].Replies[1].ID)
}

// A reply whose parent is not in the input is dropped entirely, never
// promoted to a root.
func TestBuildCommentTreeDropsOrphans(t *testing.T) {
	flat := []*models.Comment{
		{ID: 1},
		{ID: 2, ParentID: uintPtr(1)},
		{ID: 3, ParentID: uintPtr(1)},
		{ID: 4, ParentID: uintPtr(99)},
	}

	threads := BuildCommentTree(flat)
	require.Len(t, threads, 1)
	assert.Equal(t, uint(1), threads[0].ID)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, uint(2), threads[0].Replies[0].ID)
	assert.Equal(t, uint(3), threads[0].Replies[1].ID)
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	threads := BuildCommentTree(nil)
	assert.NotNil(t, threads)
	assert.Empty(t, threads)
}

func TestBuildCommentTreeRepliesNeverNil(t *testing.T) {
	threads := BuildCommentTree([]*models.Comment{{ID: 1}})
	require.Len(t, threads, 1)
	assert.NotNil(t, threads[0].Replies)
}
