package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/wordcap/backend/internal/models"
	"github.com/emilythestrangee/wordcap/backend/internal/thread"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts u. A taken username or email yields ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("inserting user: %w", mapError(err))
	}
	return nil
}

func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(mapError(err), thread.ErrPostNotFound) {
		return nil, ErrUserNotFound
	}
	return nil, fmt.Errorf("loading user: %w", err)
}
