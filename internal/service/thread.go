package service

import (
	"sort"

	"github.com/blog-comments-api/internal/markdown"
	"github.com/blog-comments-api/internal/models"
)

// assembleThread turns a flat comment result set into an ordered reply
// forest. Every input row yields exactly one node. A node whose parent
// is absent from rows (filtered out, cross-post, or corrupted into a
// cycle) becomes a root; that is a defined fallback, not an error.
// Replies are sorted oldest-first, roots newest-first; both sorts are
// stable so ties keep store order.
func assembleThread(rows []*models.CommentRow, likedIDs map[string]bool) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(rows))
	parents := make(map[string]string, len(rows))

	for _, row := range rows {
		nodes[row.ID] = newNode(row, likedIDs[row.ID])
		if row.ParentID != nil {
			parents[row.ID] = *row.ParentID
		}
	}

	roots := make([]*models.CommentNode, 0)
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*row.ParentID]
		if !ok || inCycle(row.ID, parents) {
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	for _, node := range nodes {
		replies := node.Replies
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		})
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	return roots
}

func newNode(row *models.CommentRow, liked bool) *models.CommentNode {
	return &models.CommentNode{
		ID:            row.ID,
		PostID:        row.PostID,
		UserID:        row.UserID,
		Username:      row.Username,
		Body:          row.Body,
		BodyHTML:      markdown.Render(row.Body),
		CreatedAt:     row.CreatedAt,
		IsDeleted:     row.IsDeleted,
		ParentID:      row.ParentID,
		LikeCount:     row.LikeCount,
		LikedByViewer: liked,
		Replies:       make([]*models.CommentNode, 0),
	}
}

// inCycle reports whether following parent pointers from id revisits
// id. Insertion-time validation prevents cycles, but a corrupted store
// must not hang the assembler.
func inCycle(id string, parents map[string]string) bool {
	seen := make(map[string]bool)
	cur, ok := parents[id]
	for ok {
		if cur == id {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		cur, ok = parents[cur]
	}
	return false
}
