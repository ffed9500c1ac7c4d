package models

import "time"

// Post is a single long-form entry. Authorship never changes after publishing.
type Post struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	WordCount int       `gorm:"not null;default:0" json:"word_count"`
	Language  string    `gorm:"size:8;not null;default:'en'" json:"language"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Filled in by list queries, not stored.
	CommentCount int `gorm:"-" json:"comment_count"`
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content" binding:"required"`
	Language string `json:"language"`
}

// CommentedPost is a post seen from the side of a participant who has
// written in it.
type CommentedPost struct {
	Post
	ParticipantCommentCount int       `json:"participant_comment_count"`
	LastCommentAt           time.Time `json:"last_comment_at"`
}
