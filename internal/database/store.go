package database

import "gorm.io/gorm"

// Store bundles the repositories the threading engine reads and writes.
type Store struct {
	*PostRepository
	*CommentRepository
	*NotificationRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
