package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blog-personal-api/internal/models"
	"github.com/blog-personal-api/internal/repository"
	"github.com/samber/lo"
)

// Verify interface compliance
var (
	_ repository.PostRepository     = (*MockPostRepository)(nil)
	_ repository.CommentRepository  = (*MockCommentRepository)(nil)
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.TagRepository      = (*MockTagRepository)(nil)
	_ repository.CategoryRepository = (*MockCategoryRepository)(nil)
	_ repository.AuditRepository    = (*MockAuditRepository)(nil)
	_ repository.LookupRepository   = (*MockLookupRepository)(nil)
)

// MockRepositories is an in-memory store whose repositories resolve joins
// (author names, comment counts, tag and category names) against each other
type MockRepositories struct {
	Posts      *MockPostRepository
	Comments   *MockCommentRepository
	Users      *MockUserRepository
	Tags       *MockTagRepository
	Categories *MockCategoryRepository
	Audit      *MockAuditRepository
	Lookup     *MockLookupRepository
}

func NewMockRepositories() *MockRepositories {
	m := &MockRepositories{
		Users:      NewMockUserRepository(),
		Tags:       NewMockTagRepository(),
		Categories: NewMockCategoryRepository(),
		Audit:      NewMockAuditRepository(),
		Lookup:     NewMockLookupRepository(),
	}
	m.Comments = NewMockCommentRepository(m.Users)
	m.Posts = NewMockPostRepository(m.Users, m.Comments, m.Tags, m.Categories)
	return m
}

// Repositories exposes the mocks through the production interfaces
func (m *MockRepositories) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Post:     m.Posts,
		Comment:  m.Comments,
		User:     m.Users,
		Tag:      m.Tags,
		Category: m.Categories,
		Audit:    m.Audit,
		Lookup:   m.Lookup,
	}
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mu     sync.Mutex
	Posts  map[int64]*models.Post
	nextID int64

	users      *MockUserRepository
	comments   *MockCommentRepository
	tags       *MockTagRepository
	categories *MockCategoryRepository

	CreateError error
	// SlugConflicts makes the next n inserts fail as a unique violation,
	// simulating a concurrent writer taking the slug.
	SlugConflicts int
	CreateCalls   int
}

func NewMockPostRepository(users *MockUserRepository, comments *MockCommentRepository, tags *MockTagRepository, categories *MockCategoryRepository) *MockPostRepository {
	return &MockPostRepository{
		Posts:      make(map[int64]*models.Post),
		users:      users,
		comments:   comments,
		tags:       tags,
		categories: categories,
	}
}

// Seed stores a post as-is, assigning an ID if it has none
func (m *MockPostRepository) Seed(post *models.Post) *models.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post.ID == 0 {
		m.nextID++
		post.ID = m.nextID
	} else if post.ID > m.nextID {
		m.nextID = post.ID
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	stored := *post
	m.Posts[post.ID] = &stored
	return post
}

func (m *MockPostRepository) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	posts := lo.Filter(lo.Values(m.Posts), func(p *models.Post, _ int) bool {
		if filter.Statuses != nil && !lo.Contains(filter.Statuses, p.Status) {
			return false
		}
		if term == "" {
			return true
		}
		summary := ""
		if p.Summary != nil {
			summary = *p.Summary
		}
		return strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Body), term) ||
			strings.Contains(strings.ToLower(summary), term)
	})

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return m.views(posts), nil
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID int64, status *models.PostStatus) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := lo.Filter(lo.Values(m.Posts), func(p *models.Post, _ int) bool {
		return p.AuthorID == authorID && (status == nil || p.Status == *status)
	})

	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		}
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return m.views(posts), nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	return m.view(post), nil
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := lo.Find(lo.Values(m.Posts), func(p *models.Post) bool { return p.Slug == slug })
	if !ok {
		return nil, nil
	}
	return m.view(post), nil
}

func (m *MockPostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Posts[id]
	return ok, nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugTaken(slug), nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++

	if m.CreateError != nil {
		return m.CreateError
	}
	if m.SlugConflicts > 0 {
		m.SlugConflicts--
		return fmt.Errorf("%w: posts_slug_key", repository.ErrDuplicate)
	}
	if m.slugTaken(post.Slug) {
		return fmt.Errorf("%w: posts_slug_key", repository.ErrDuplicate)
	}

	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.Posts[post.ID] = &stored
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Posts[post.ID]
	if !ok {
		return false, nil
	}
	stored := *post
	stored.Slug = existing.Slug
	stored.AuthorID = existing.AuthorID
	stored.CreatedAt = existing.CreatedAt
	stored.Views = existing.Views
	m.Posts[post.ID] = &stored
	return true, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[id]; !ok {
		return false, nil
	}
	delete(m.Posts, id)
	if m.comments != nil {
		m.comments.deleteForPost(id)
	}
	return true, nil
}

func (m *MockPostRepository) IncrementViews(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.Posts[id]
	if !ok {
		return false, nil
	}
	post.Views++
	return true, nil
}

func (m *MockPostRepository) slugTaken(slug string) bool {
	return lo.ContainsBy(lo.Values(m.Posts), func(p *models.Post) bool { return p.Slug == slug })
}

func (m *MockPostRepository) views(posts []*models.Post) []*models.Post {
	return lo.Map(posts, func(p *models.Post, _ int) *models.Post { return m.view(p) })
}

// view returns a copy of the stored post with joined display fields filled
func (m *MockPostRepository) view(stored *models.Post) *models.Post {
	post := *stored
	post.StatusName = post.Status.Name()
	post.Categories = []string{}
	post.Tags = []models.Tag{}
	post.CategoryIDs = append([]int64(nil), stored.CategoryIDs...)
	post.TagIDs = append([]int64(nil), stored.TagIDs...)

	if m.users != nil {
		if user, _ := m.users.GetByID(context.Background(), post.AuthorID); user != nil {
			post.AuthorName = user.Username
		}
	}
	if m.comments != nil {
		post.CommentCount = m.comments.countForPost(post.ID)
	}
	if m.categories != nil {
		for _, id := range post.CategoryIDs {
			if c, ok := m.categories.Categories[id]; ok {
				post.Categories = append(post.Categories, c.Name)
			}
		}
	}
	if m.tags != nil {
		for _, id := range post.TagIDs {
			if t, _ := m.tags.GetByID(context.Background(), id); t != nil {
				post.Tags = append(post.Tags, *t)
			}
		}
	}
	return &post
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments map[int64]*models.Comment
	nextID   int64
	users    *MockUserRepository

	InsertError error
}

func NewMockCommentRepository(users *MockUserRepository) *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[int64]*models.Comment),
		users:    users,
	}
}

// Seed stores a comment as-is, bypassing all checks
func (m *MockCommentRepository) Seed(comment *models.Comment) *models.Comment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.ID == 0 {
		m.nextID++
		comment.ID = m.nextID
	} else if comment.ID > m.nextID {
		m.nextID = comment.ID
	}
	stored := *comment
	m.Comments[comment.ID] = &stored
	return comment
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.CommentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	comments := lo.Filter(lo.Values(m.Comments), func(c *models.Comment, _ int) bool { return c.PostID == postID })
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})

	return lo.Map(comments, func(c *models.Comment, _ int) *models.CommentView {
		view := &models.CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			AuthorID:  c.AuthorID,
			Body:      c.Body,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			ParentID:  c.ParentID,
		}
		if m.users != nil {
			if user, _ := m.users.GetByID(ctx, c.AuthorID); user != nil {
				view.AuthorName = user.Username
			}
		}
		return view
	}), nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	c := *comment
	return &c, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Seed(comment)
	return nil
}

func (m *MockCommentRepository) countForPost(postID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.CountBy(lo.Values(m.Comments), func(c *models.Comment) bool { return c.PostID == postID })
}

func (m *MockCommentRepository) deleteForPost(postID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Comments {
		if c.PostID == postID {
			delete(m.Comments, id)
		}
	}
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	nextID      int64

	InsertError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	if _, taken := m.EmailToUser[user.Email]; taken {
		return fmt.Errorf("%w: users_email_key", repository.ErrDuplicate)
	}
	if m.usernameTaken(user.Username) {
		return fmt.Errorf("%w: users_username_key", repository.ErrDuplicate)
	}
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	stored := *user
	m.Users[user.ID] = &stored
	m.EmailToUser[user.Email] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.EmailToUser[email]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.EmailToUser[email]
	return exists, nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usernameTaken(username), nil
}

func (m *MockUserRepository) usernameTaken(username string) bool {
	return lo.ContainsBy(lo.Values(m.Users), func(u *models.User) bool { return u.Username == username })
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mu     sync.Mutex
	Tags   map[int64]*models.Tag
	nextID int64
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{Tags: make(map[int64]*models.Tag)}
}

func (m *MockTagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := lo.Map(lo.Values(m.Tags), func(t *models.Tag, _ int) *models.Tag {
		c := *t
		return &c
	})
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name != tags[j].Name {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].ID < tags[j].ID
	})
	return tags, nil
}

func (m *MockTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.Tags[id]
	if !ok {
		return nil, nil
	}
	t := *tag
	return &t, nil
}

func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(tag.Slug, 0) {
		return fmt.Errorf("%w: tags_slug_key", repository.ErrDuplicate)
	}
	m.nextID++
	tag.ID = m.nextID
	stored := *tag
	m.Tags[tag.ID] = &stored
	return nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *models.Tag) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tags[tag.ID]; !ok {
		return false, nil
	}
	if m.slugTaken(tag.Slug, tag.ID) {
		return false, fmt.Errorf("%w: tags_slug_key", repository.ErrDuplicate)
	}
	stored := *tag
	m.Tags[tag.ID] = &stored
	return true, nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tags[id]; !ok {
		return false, nil
	}
	delete(m.Tags, id)
	return true, nil
}

func (m *MockTagRepository) slugTaken(slug string, exceptID int64) bool {
	return lo.ContainsBy(lo.Values(m.Tags), func(t *models.Tag) bool { return t.Slug == slug && t.ID != exceptID })
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*models.Category
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[int64]*models.Category)}
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	categories := lo.Values(m.Categories)
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mu          sync.Mutex
	Entries     []*models.AuditEntry
	RecordError error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordError != nil {
		return m.RecordError
	}
	entry.ID = int64(len(m.Entries) + 1)
	stored := *entry
	m.Entries = append(m.Entries, &stored)
	return nil
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entity string, entityID int64, limit int) ([]*models.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := lo.Filter(m.Entries, func(e *models.AuditEntry, _ int) bool {
		return e.Entity == entity && e.EntityID == entityID
	})
	entries = lo.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		return entries[:limit], nil
	}
	return entries, nil
}

// MockLookupRepository is a mock implementation of LookupRepository.
// It starts with every seeded role and comment status present.
type MockLookupRepository struct {
	Roles           map[models.Role]bool
	CommentStatuses map[models.CommentStatus]bool
}

func NewMockLookupRepository() *MockLookupRepository {
	return &MockLookupRepository{
		Roles: map[models.Role]bool{
			models.RoleAdmin: true, models.RoleAuthor: true, models.RoleUser: true, models.RoleVisitor: true,
		},
		CommentStatuses: map[models.CommentStatus]bool{
			models.CommentPending: true, models.CommentApproved: true, models.CommentRejected: true,
		},
	}
}

func (m *MockLookupRepository) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	return m.Roles[role], nil
}

func (m *MockLookupRepository) CommentStatusExists(ctx context.Context, status models.CommentStatus) (bool, error) {
	return m.CommentStatuses[status], nil
}
