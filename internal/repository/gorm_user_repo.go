package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/pkg/log"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user row. Used by provisioning and fixtures; identity
// itself lives outside this service.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	model := domain.UserModel{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByUsername retrieves a user by username.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model domain.UserModel
	err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Delete removes an account and everything hanging off it: the user's
// comments, comments on their posts, their posts, and follow edges in both
// directions.
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}

		err := tx.Where("post_id IN (?)",
			tx.Model(&domain.PostModel{}).Select("id").Where("author_id = ?", id),
		).Delete(&domain.CommentModel{}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", id).Delete(&domain.PostModel{}).Error; err != nil {
			return err
		}

		err = tx.Where("follower_id = ? OR following_id = ?", id, id).
			Delete(&domain.FollowModel{}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&domain.UserModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		l.Error().Err(err).Str(log.FieldUserID, id).Msg("failed to delete user in db")
	}
	return err
}

var _ UserRepository = (*GormUserRepository)(nil)
