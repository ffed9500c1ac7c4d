package models

import "time"

type NotificationKind string

const (
	NotificationComment NotificationKind = "comment"
	NotificationReply   NotificationKind = "reply"
)

// Notification is addressed to a post author. Only Read ever changes.
type Notification struct {
	ID        string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;index:idx_notifications_user_read,priority:1" json:"user_id"`
	PostID    string           `gorm:"type:uuid;not null;index" json:"post_id"`
	Post      Post             `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CommentID string           `gorm:"type:uuid;not null" json:"comment_id"`
	Comment   Comment          `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	Kind      NotificationKind `gorm:"type:varchar(16);not null" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Read      bool             `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
