package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/wordcap/backend/internal/middleware"
	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

const notificationPageSize = 20

type NotificationStore interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type NotificationHandler struct {
	notes NotificationStore
}

func NewNotificationHandler(notes NotificationStore) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

// GetNotifications returns the newest notifications for the caller.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	list, err := h.notes.ListForUser(c.Request.Context(), userID, notificationPageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	n, err := h.notes.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.notes.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	n, err := h.notes.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
