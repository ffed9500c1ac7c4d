package thread

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

// NotificationSink stores notifications.
type NotificationSink interface {
	InsertNotification(ctx context.Context, n *models.Notification) error
}

// Event describes a comment that was just written.
type Event struct {
	PostID    string
	CommentID string
	Kind      models.NotificationKind
	Actor     Participant
}

// Message returns the fixed text shown for a notification kind.
func Message(kind models.NotificationKind) string {
	if kind == models.NotificationReply {
		return "Someone replied to a comment on your post"
	}
	return "Someone commented on your post"
}

// Dispatcher turns comment events into notifications for the post author.
type Dispatcher struct {
	posts  AuthorLookup
	sink   NotificationSink
	logger *slog.Logger
}

func NewDispatcher(posts AuthorLookup, sink NotificationSink, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{posts: posts, sink: sink, logger: logger}
}

// Dispatch writes one notification for ev. It returns nil, nil when the actor
// is the post author, who is never notified of their own messages.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (*models.Notification, error) {
	author, err := d.posts.PostAuthor(ctx, ev.PostID)
	if err != nil {
		return nil, fmt.Errorf("looking up post author: %w", err)
	}
	if ev.Actor.UserID != "" && ev.Actor.UserID == author {
		return nil, nil
	}

	n := &models.Notification{
		UserID:    author,
		PostID:    ev.PostID,
		CommentID: ev.CommentID,
		Kind:      ev.Kind,
		Message:   Message(ev.Kind),
	}
	if err := d.sink.InsertNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("inserting notification: %w", err)
	}
	return n, nil
}

// Notify is Dispatch with failures logged instead of returned. The comment
// behind ev is already stored and stays stored either way.
func (d *Dispatcher) Notify(ctx context.Context, ev Event) *models.Notification {
	n, err := d.Dispatch(ctx, ev)
	if err != nil {
		d.logger.ErrorContext(ctx, "notification dropped",
			"post_id", ev.PostID,
			"comment_id", ev.CommentID,
			"kind", string(ev.Kind),
			"error", err,
		)
		return nil
	}
	return n
}
