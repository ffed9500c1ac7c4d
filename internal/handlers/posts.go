package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/wordcap/backend/internal/middleware"
	"github.com/emilythestrangee/wordcap/backend/internal/models"
)

const (
	defaultPostLimit = 50
	maxPostLimit     = 200
)

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Post, error)
	Delete(ctx context.Context, id, userID string) error
}

type PostHandler struct {
	posts PostStore
}

func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

// GetPosts lists the newest posts. ?limit= caps the page.
func (h *PostHandler) GetPosts(c *gin.Context) {
	limit := defaultPostLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxPostLimit)
	}

	posts, err := h.posts.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetMyPosts lists the caller's own posts.
func (h *PostHandler) GetMyPosts(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	posts, err := h.posts.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost publishes a post for the signed-in user.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	userID, _ := middleware.UserID(c)
	post := models.Post{
		UserID:   userID,
		Title:    input.Title,
		Content:  input.Content,
		Language: input.Language,
	}
	if err := h.posts.Create(c.Request.Context(), &post); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeletePost removes a post. Only its author may.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.posts.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
