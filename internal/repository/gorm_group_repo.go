package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/pkg/log"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// GORM v1.25+ translates these to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// GormGroupRepository implements GroupRepository using GORM.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM-backed group repository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// Create inserts a group; the slug must be unique.
func (r *GormGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	l := log.Ctx(ctx)

	model := domain.GroupToModel(group)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrGroupExists
		}
		l.Error().Err(err).Str("slug", group.Slug).Msg("failed to create group in db")
		return err
	}

	group.ID = model.ID
	group.CreatedAt = model.CreatedAt
	return nil
}

// GetBySlug retrieves a group by its slug.
func (r *GormGroupRepository) GetBySlug(ctx context.Context, slug string) (*domain.Group, error) {
	var model domain.GroupModel
	err := r.db.WithContext(ctx).First(&model, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update rewrites a group's title and description.
func (r *GormGroupRepository) Update(ctx context.Context, group *domain.Group) error {
	result := r.db.WithContext(ctx).Model(&domain.GroupModel{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"title":       group.Title,
			"description": group.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGroupNotFound
	}
	return nil
}

// Delete clears the group reference on every post in the group, then
// removes the group. Posts are never deleted with their group.
func (r *GormGroupRepository) Delete(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model domain.GroupModel
		if err := tx.First(&model, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return err
		}

		err := tx.Model(&domain.PostModel{}).
			Where("group_id = ?", model.ID).
			Update("group_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&model).Error
	})
}

// List returns all groups ordered by title.
func (r *GormGroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	var models []domain.GroupModel
	err := r.db.WithContext(ctx).Order("title").Find(&models).Error
	if err != nil {
		return nil, err
	}

	groups := make([]domain.Group, len(models))
	for i := range models {
		groups[i] = *models[i].ToDomain()
	}
	return groups, nil
}

var _ GroupRepository = (*GormGroupRepository)(nil)
