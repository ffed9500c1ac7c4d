package thread

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

// memStore is an in-memory Store. The *Fn fields override single calls.
type memStore struct {
	mu            sync.Mutex
	clock         time.Time
	seq           int
	posts         map[string]string
	comments      []models.Comment
	notifications []models.Notification

	listFn         func(ctx context.Context, postID string) ([]models.Comment, error)
	insertFn       func(ctx context.Context, c *models.Comment) error
	countFn        func(ctx context.Context, postID string, p Participant) (int, error)
	notificationFn func(ctx context.Context, n *models.Notification) error
}

func newMemStore() *memStore {
	return &memStore{
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		posts: map[string]string{},
	}
}

func (m *memStore) addPost(postID, authorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[postID] = authorID
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, postID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) InsertComment(ctx context.Context, c *models.Comment) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[c.PostID]; !ok {
		return ErrPostNotFound
	}
	m.clock = m.clock.Add(time.Minute)
	c.ID = m.nextID("c")
	c.CreatedAt = m.clock
	m.comments = append(m.comments, *c)
	return nil
}

func (m *memStore) CountComments(ctx context.Context, postID string, p Participant) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, postID, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.comments {
		if c.PostID == postID && !c.IsAuthorReply && p.Wrote(c) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) PostAuthor(ctx context.Context, postID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	author, ok := m.posts[postID]
	if !ok {
		return "", ErrPostNotFound
	}
	return author, nil
}

func (m *memStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	if m.notificationFn != nil {
		return m.notificationFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.nextID("n")
	n.CreatedAt = m.clock
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memStore) commentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.comments)
}

func (m *memStore) notificationsFor(userID string) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
