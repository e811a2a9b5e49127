// Package visibility decides which posts a principal may read.
//
// Authors and admins see every post. Any other authenticated user sees
// published and private posts. Anonymous callers see published posts only.
package visibility

import (
	"github.com/blog-personal-api/internal/auth"
	"github.com/blog-personal-api/internal/models"
	"github.com/samber/lo"
)

// Outcome is the result of resolving a single-post lookup
type Outcome int

const (
	Visible Outcome = iota
	NotFound
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Visible:
		return "visible"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

var (
	memberStatuses    = []models.PostStatus{models.PostPublished, models.PostPrivate}
	anonymousStatuses = []models.PostStatus{models.PostPublished}
)

// VisibleStatuses returns the post states p may read. A nil result means
// no restriction.
func VisibleStatuses(p auth.Principal) []models.PostStatus {
	switch {
	case p.IsAuthor():
		return nil
	case p.Authenticated:
		return memberStatuses
	default:
		return anonymousStatuses
	}
}

// CanView reports whether p may read a post in the given state
func CanView(status models.PostStatus, p auth.Principal) bool {
	allowed := VisibleStatuses(p)
	return allowed == nil || lo.Contains(allowed, status)
}

// Resolve decides the outcome of fetching post on behalf of p. A nil post
// did not match the lookup.
func Resolve(post *models.Post, p auth.Principal) Outcome {
	if post == nil {
		return NotFound
	}
	if !CanView(post.Status, p) {
		return Forbidden
	}
	return Visible
}
