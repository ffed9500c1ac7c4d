package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emilythestrangee/wordcap/backend/internal/database"
	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

// fakeStore keeps everything in memory and answers for every store interface
// the handlers and the thread service use.
type fakeStore struct {
	mu            sync.Mutex
	seq           int
	clock         time.Time
	users         map[string]*models.User
	posts         map[string]*models.Post
	comments      []models.Comment
	notifications []models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		users: map[string]*models.User{},
		posts: map[string]*models.Post{},
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) addPost(id, author string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[id] = &models.Post{ID: id, UserID: author, Content: "words", CreatedAt: s.tick()}
}

// thread.Store

func (s *fakeStore) ListComments(_ context.Context, postID string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeStore) InsertComment(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return thread.ErrPostNotFound
	}
	c.ID = s.nextID("c")
	c.CreatedAt = s.tick()
	s.comments = append(s.comments, *c)
	return nil
}

func (s *fakeStore) CountComments(_ context.Context, postID string, p thread.Participant) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID && !c.IsAuthorReply && p.Wrote(c) {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) PostAuthor(_ context.Context, postID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return "", thread.ErrPostNotFound
	}
	return p.UserID, nil
}

func (s *fakeStore) InsertNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID("n")
	n.CreatedAt = s.tick()
	s.notifications = append(s.notifications, *n)
	return nil
}

// CommentStats

func (s *fakeStore) TotalCount(_ context.Context, postID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CommentedPosts(_ context.Context, p thread.Participant) ([]models.CommentedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.CommentedPost
	index := map[string]int{}
	for _, c := range s.comments {
		if c.IsAuthorReply || !p.Wrote(c) {
			continue
		}
		i, ok := index[c.PostID]
		if !ok {
			i = len(out)
			index[c.PostID] = i
			out = append(out, models.CommentedPost{Post: *s.posts[c.PostID]})
		}
		out[i].ParticipantCommentCount++
		out[i].LastCommentAt = c.CreatedAt
	}
	return out, nil
}

// PostStore

func (s *fakeStore) Create(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID("p")
	p.WordCount = database.WordCount(p.Content)
	if p.Language == "" {
		p.Language = "en"
	}
	p.CreatedAt = s.tick()
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, thread.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) ListRecent(_ context.Context, limit int) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Post
	for _, p := range s.posts {
		cp := *p
		out = append(out, &cp)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID string) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return thread.ErrPostNotFound
	}
	if p.UserID != userID {
		return thread.ErrNotAuthorized
	}
	delete(s.posts, id)
	return nil
}

// NotificationStore

func (s *fakeStore) ListForUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *fakeStore) UnreadCount(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, note := range s.notifications {
		if note.UserID == userID && !note.Read {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) MarkRead(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
			return nil
		}
	}
	return database.ErrNotificationNotFound
}

func (s *fakeStore) MarkAllRead(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

// UserStore

func (s *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return fmt.Errorf("inserting user: %w", database.ErrDuplicate)
		}
	}
	u.ID = s.nextID("u")
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (s *fakeStore) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
