package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

// CommentRepository is the append-only comment store. There is deliberately
// no update or delete.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// ListComments returns every comment on postID, oldest first. Ties on
// created_at break on id so repeated reads agree.
func (r *CommentRepository) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", mapError(err))
	}
	return comments, nil
}

func (r *CommentRepository) InsertComment(ctx context.Context, c *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// CountComments counts p's non-author comments on postID straight from the
// table.
func (r *CommentRepository) CountComments(ctx context.Context, postID string, p thread.Participant) (int, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND is_author_reply = ?", postID, false)
	q = whereParticipant(q, p)

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}

// TotalCount counts all comments on postID, author replies included.
func (r *CommentRepository) TotalCount(ctx context.Context, postID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	if err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}

type commentedRow struct {
	PostID        string
	Count         int
	LastCommentAt time.Time
}

// CommentedPosts lists the posts p has written in, most recent activity
// first, with p's own message count on each.
func (r *CommentRepository) CommentedPosts(ctx context.Context, p thread.Participant) ([]models.CommentedPost, error) {
	q := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, count(*) AS count, max(created_at) AS last_comment_at").
		Where("is_author_reply = ?", false)
	q = whereParticipant(q, p)

	var rows []commentedRow
	if err := q.Group("post_id").Order("last_comment_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing commented posts: %w", mapError(err))
	}
	if len(rows) == 0 {
		return []models.CommentedPost{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PostID)
	}
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("loading commented posts: %w", err)
	}
	byID := make(map[string]*models.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	if err := fillCommentCounts(ctx, r.db, posts); err != nil {
		return nil, err
	}

	out := make([]models.CommentedPost, 0, len(rows))
	for _, row := range rows {
		post, ok := byID[row.PostID]
		if !ok {
			continue
		}
		out = append(out, models.CommentedPost{
			Post:                    *post,
			ParticipantCommentCount: row.Count,
			LastCommentAt:           row.LastCommentAt,
		})
	}
	return out, nil
}

func whereParticipant(q *gorm.DB, p thread.Participant) *gorm.DB {
	if p.UserID != "" {
		return q.Where("user_id = ?", p.UserID)
	}
	return q.Where("anonymous_id = ?", p.AnonymousID)
}
