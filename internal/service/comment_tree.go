package service

import (
	"sort"

	"storefront/internal/models"
)

// BuildCommentTree groups a flat comment list into root threads with
// their direct replies. Threading is capped at two levels, so no
// recursion or depth tracking is needed.
//
// The input order of roots is preserved (the repository returns newest
// first); replies are reordered chronologically, oldest first. A comment
// whose parent is missing from the input, typically because the parent
// was deleted, is dropped from the output rather than promoted to root.
func BuildCommentTree(flat []*models.Comment) []*models.CommentThread {
	threads := make([]*models.CommentThread, 0, len(flat))
	byID := make(map[uint]*models.CommentThread, len(flat))

	for _, c := range flat {
		if c.ParentID != nil {
			continue
		}
		thread := &models.CommentThread{Comment: *c, Replies: []*models.Comment{}}
		threads = append(threads, thread)
		byID[c.ID] = thread
	}

	for _, c := range flat {
		if c.ParentID == nil {
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			// Orphaned reply: parent absent from this post's comments.
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}

	for _, thread := range threads {
		sort.SliceStable(thread.Replies, func(i, j int) bool {
			return thread.Replies[i].CreatedAt.Before(thread.Replies[j].CreatedAt)
		})
	}

	return threads
}
