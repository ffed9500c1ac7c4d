package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/wordcap/backend/internal/auth"
	"github.com/emilythestrangee/wordcap/backend/internal/database"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Post         *PostHandler
	Comment      *CommentHandler
	Notification *NotificationHandler
}

// NewHandler wires every sub-handler against one store.
func NewHandler(users *database.UserRepository, store *database.Store, threads *thread.Service, tokens *auth.Tokens) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(users, tokens),
		Post:         NewPostHandler(store),
		Comment:      NewCommentHandler(threads, store),
		Notification: NewNotificationHandler(store),
	}
}

// respondError writes the status an engine or store error deserves. Faults
// are logged; expected refusals are not.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, thread.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, thread.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, thread.ErrInvalidContent),
		errors.Is(err, thread.ErrInvalidParticipant),
		errors.Is(err, thread.ErrInvalidThread):
		status = http.StatusBadRequest
	case errors.Is(err, thread.ErrPostNotFound):
		status = http.StatusNotFound
	case errors.Is(err, database.ErrNotificationNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

// errorMessage is the innermost sentinel text, without the wrapping context.
func errorMessage(err error) string {
	for _, sentinel := range []error{
		thread.ErrQuotaExceeded,
		thread.ErrNotAuthorized,
		thread.ErrInvalidContent,
		thread.ErrInvalidParticipant,
		thread.ErrInvalidThread,
		thread.ErrPostNotFound,
		database.ErrNotificationNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
