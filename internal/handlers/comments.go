package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/wordcap/backend/internal/middleware"
	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

// CommentStats are the read-only views that sit beside the engine.
type CommentStats interface {
	TotalCount(ctx context.Context, postID string) (int, error)
	CommentedPosts(ctx context.Context, p thread.Participant) ([]models.CommentedPost, error)
}

type CommentHandler struct {
	threads *thread.Service
	stats   CommentStats
}

func NewCommentHandler(threads *thread.Service, stats CommentStats) *CommentHandler {
	return &CommentHandler{threads: threads, stats: stats}
}

// GetThreads returns a post's comments grouped into threads, annotated for
// whoever is asking.
func (h *CommentHandler) GetThreads(c *gin.Context) {
	var viewer *thread.Participant
	if p, ok := middleware.Participant(c); ok {
		viewer = &p
	}

	threads, err := h.threads.GetThreads(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// CreateComment starts or continues the caller's own thread on a post.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := middleware.Participant(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": thread.ErrInvalidParticipant.Error()})
		return
	}

	res, err := h.threads.AddComment(c.Request.Context(), c.Param("id"), input.Content, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// CreateReply lets the post author answer inside a thread.
func (h *CommentHandler) CreateReply(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	res, err := h.threads.AddAuthorReply(c.Request.Context(), c.Param("id"), c.Param("key"), input.Content, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetCommentCount reports the post's total and, when the caller is known,
// how much of their quota is used.
func (h *CommentHandler) GetCommentCount(c *gin.Context) {
	postID := c.Param("id")
	total, err := h.stats.TotalCount(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"total": total, "limit": thread.Quota}
	if p, ok := middleware.Participant(c); ok {
		used, remaining, err := h.threads.CommentCount(c.Request.Context(), postID, p)
		if err != nil {
			respondError(c, err)
			return
		}
		body["used"] = used
		body["remaining"] = remaining
	}
	c.JSON(http.StatusOK, body)
}

// GetCommentedPosts lists posts the caller has written in.
func (h *CommentHandler) GetCommentedPosts(c *gin.Context) {
	p, ok := middleware.Participant(c)
	if !ok {
		c.JSON(http.StatusOK, []models.CommentedPost{})
		return
	}

	posts, err := h.stats.CommentedPosts(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	if posts == nil {
		posts = []models.CommentedPost{}
	}
	c.JSON(http.StatusOK, posts)
}
