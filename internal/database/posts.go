package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

const authorCacheSize = 1024

// PostRepository stores posts. Post authorship never changes, so author
// lookups are cached until the post is deleted.
type PostRepository struct {
	db      *gorm.DB
	authors *lru.Cache[string, string]
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	authors, err := lru.New[string, string](authorCacheSize)
	if err != nil {
		// Only a non-positive size makes lru.New fail.
		panic(err)
	}
	return &PostRepository{db: db, authors: authors}
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	p.Content = strings.TrimSpace(p.Content)
	p.WordCount = WordCount(p.Content)
	if p.Language == "" {
		p.Language = "en"
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting post: %w", mapError(err))
	}
	r.authors.Add(p.ID, p.UserID)
	return nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	if err := fillCommentCounts(ctx, r.db, []*models.Post{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRecent returns the newest posts first.
func (r *PostRepository) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if err := fillCommentCounts(ctx, r.db, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser returns userID's own posts, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("listing posts by user: %w", mapError(err))
	}
	if err := fillCommentCounts(ctx, r.db, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post owned by userID. Comments and notifications go with
// it through ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id, userID string) error {
	author, err := r.PostAuthor(ctx, id)
	if err != nil {
		return err
	}
	if author != userID {
		return thread.ErrNotAuthorized
	}

	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Post{})
	if result.Error != nil {
		return fmt.Errorf("deleting post: %w", mapError(result.Error))
	}
	r.authors.Remove(id)
	if result.RowsAffected == 0 {
		return thread.ErrPostNotFound
	}
	return nil
}

// PostAuthor returns the user id of the post's author.
func (r *PostRepository) PostAuthor(ctx context.Context, postID string) (string, error) {
	if author, ok := r.authors.Get(postID); ok {
		return author, nil
	}

	var p models.Post
	err := r.db.WithContext(ctx).Select("id", "user_id").First(&p, "id = ?", postID).Error
	if err != nil {
		if errors.Is(mapError(err), thread.ErrPostNotFound) {
			return "", thread.ErrPostNotFound
		}
		return "", fmt.Errorf("loading post author: %w", err)
	}
	r.authors.Add(postID, p.UserID)
	return p.UserID, nil
}

type commentCountRow struct {
	PostID string
	N      int
}

func fillCommentCounts(ctx context.Context, db *gorm.DB, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var rows []commentCountRow
	err := db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, count(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("counting comments: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.N
	}
	for _, p := range posts {
		p.CommentCount = counts[p.ID]
	}
	return nil
}
