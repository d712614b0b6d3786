package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/models"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string, dest *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(dest).Error; err != nil {
		return translate(err, "user not found", "get user by username failed")
	}
	return nil
}
