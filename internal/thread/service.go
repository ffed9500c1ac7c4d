package thread

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

// Store is everything the service needs from persistence.
type Store interface {
	Counter
	AuthorLookup
	NotificationSink
	// ListComments returns every comment on postID, oldest first.
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	// InsertComment appends c, filling in its ID and CreatedAt.
	InsertComment(ctx context.Context, c *models.Comment) error
}

// Locker serializes work on one key across processes. The returned func
// releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Result is the outcome of a write.
type Result struct {
	Accepted  bool            `json:"accepted"`
	ThreadKey string          `json:"thread_key,omitempty"`
	Comment   *models.Comment `json:"comment,omitempty"`
}

type Service struct {
	store      Store
	dispatcher *Dispatcher
	locker     Locker
	logger     *slog.Logger
}

type Option func(*Service)

// WithLocker makes AddComment hold a per-thread lock around the quota check
// and the insert.
func WithLocker(l Locker) Option {
	return func(s *Service) { s.locker = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatcher = NewDispatcher(store, store, s.logger)
	return s
}

// GetThreads returns the threads on postID, oldest first. viewer may be nil;
// a nil viewer can never reply.
func (s *Service) GetThreads(ctx context.Context, postID string, viewer *Participant) ([]Thread, error) {
	comments, err := s.store.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	threads := Partition(postID, comments)
	for i := range threads {
		threads[i].annotate(viewer)
	}
	return threads, nil
}

// AddComment writes a participant message into the participant's thread on
// postID, starting the thread if needed.
func (s *Service) AddComment(ctx context.Context, postID, content string, p Participant) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	body, err := NormalizeContent(content)
	if err != nil {
		return Result{}, err
	}
	key := Key(postID, p)

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			return Result{}, fmt.Errorf("locking thread: %w", err)
		}
		defer unlock()
	}

	if _, err := CheckQuota(ctx, s.store, postID, p); err != nil {
		return Result{}, err
	}

	c := &models.Comment{
		PostID:    postID,
		Content:   body,
		ThreadKey: key,
	}
	p.Stamp(c)
	if err := s.store.InsertComment(ctx, c); err != nil {
		return Result{}, fmt.Errorf("inserting comment: %w", err)
	}

	s.dispatcher.Notify(ctx, Event{
		PostID:    postID,
		CommentID: c.ID,
		Kind:      models.NotificationComment,
		Actor:     p,
	})

	return Result{Accepted: true, ThreadKey: key, Comment: c}, nil
}

// AddAuthorReply writes a reply by the post author into an existing thread.
// Author replies have no quota.
func (s *Service) AddAuthorReply(ctx context.Context, postID, threadKey, content, candidate string) (Result, error) {
	if err := Authorize(ctx, s.store, postID, threadKey, candidate); err != nil {
		return Result{}, err
	}
	body, err := NormalizeContent(content)
	if err != nil {
		return Result{}, err
	}

	author := User(candidate)
	c := &models.Comment{
		PostID:        postID,
		Content:       body,
		ThreadKey:     threadKey,
		IsAuthorReply: true,
	}
	author.Stamp(c)
	if err := s.store.InsertComment(ctx, c); err != nil {
		return Result{}, fmt.Errorf("inserting author reply: %w", err)
	}

	s.dispatcher.Notify(ctx, Event{
		PostID:    postID,
		CommentID: c.ID,
		Kind:      models.NotificationReply,
		Actor:     author,
	})

	return Result{Accepted: true, ThreadKey: threadKey, Comment: c}, nil
}

// CommentCount returns how many messages p has written on postID and how
// many remain.
func (s *Service) CommentCount(ctx context.Context, postID string, p Participant) (used, remaining int, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	n, err := s.store.CountComments(ctx, postID, p)
	if err != nil {
		return 0, 0, fmt.Errorf("counting comments: %w", err)
	}
	return n, Remaining(n), nil
}
