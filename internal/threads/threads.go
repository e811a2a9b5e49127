// Package threads assembles the flat comment list of a post into reply trees.
package threads

import (
	"errors"
	"fmt"
	"sort"

	"github.com/blog-personal-api/internal/models"
	"github.com/samber/lo"
)

var (
	ErrCommentCycle   = errors.New("parent chain forms a cycle")
	ErrDanglingParent = errors.New("parent is not part of the thread")
)

// IntegrityError reports a comment that cannot be placed in any tree
type IntegrityError struct {
	CommentID int64
	Err       error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("comment %d: %v", e.CommentID, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// Build returns the root comments of a post, each carrying its replies to
// full depth. Roots and every reply list are ordered by creation time, then
// id. The input is not modified.
//
// Every comment must descend from a root. A comment whose parent chain loops
// back on itself, or leads to a parent missing from comments, yields an
// *IntegrityError.
func Build(comments []*models.CommentView) ([]*models.CommentView, error) {
	nodes := make([]*models.CommentView, 0, len(comments))
	byID := make(map[int64]*models.CommentView, len(comments))
	for _, c := range comments {
		n := *c
		n.Replies = []*models.CommentView{}
		nodes = append(nodes, &n)
		byID[n.ID] = &n
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	roots := lo.Filter(nodes, func(n *models.CommentView, _ int) bool {
		return n.ParentID == nil
	})
	replies := lo.GroupBy(
		lo.Filter(nodes, func(n *models.CommentView, _ int) bool { return n.ParentID != nil }),
		func(n *models.CommentView) int64 { return *n.ParentID },
	)

	placed := make(map[int64]bool, len(nodes))
	queue := append([]*models.CommentView(nil), roots...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if placed[n.ID] {
			continue
		}
		placed[n.ID] = true
		if kids, ok := replies[n.ID]; ok {
			n.Replies = kids
			queue = append(queue, kids...)
		}
	}

	for _, n := range nodes {
		if !placed[n.ID] {
			return nil, &IntegrityError{CommentID: n.ID, Err: diagnose(n, byID)}
		}
	}

	return roots, nil
}

// diagnose walks up from an unplaced comment to find why it has no root
func diagnose(n *models.CommentView, byID map[int64]*models.CommentView) error {
	seen := make(map[int64]bool)
	for cur := n; cur.ParentID != nil; {
		if seen[cur.ID] {
			return ErrCommentCycle
		}
		seen[cur.ID] = true

		parent, ok := byID[*cur.ParentID]
		if !ok {
			return ErrDanglingParent
		}
		cur = parent
	}
	// Unreachable for well-formed ids: a comment without a parent is a root.
	return ErrCommentCycle
}
