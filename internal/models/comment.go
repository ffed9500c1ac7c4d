package models

import "time"

// Comment is one message inside a thread. Exactly one of UserID and
// AnonymousID is set. Rows are never updated after insert.
type Comment struct {
	ID            string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PostID        string    `gorm:"type:uuid;not null;index:idx_comments_post_created,priority:1" json:"post_id"`
	Post          Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID        *string   `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AnonymousID   *string   `gorm:"size:64;index" json:"anonymous_id,omitempty"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	ThreadKey     string    `gorm:"size:200;not null;index" json:"thread_key"`
	IsAuthorReply bool      `gorm:"not null;default:false" json:"is_author_reply"`
	CreatedAt     time.Time `gorm:"index:idx_comments_post_created,priority:2" json:"created_at"`

	// Deprecated: replies are grouped by ThreadKey. Kept so older rows load.
	ParentID *string `gorm:"type:uuid" json:"-"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
