package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/pkg/log"
)

// feedOrder is the listing contract for every feed: newest first, ties
// broken by descending id since creation timestamps may collide.
const feedOrder = "created_at DESC, id DESC"

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-backed post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a post and returns it with generated id and timestamp.
func (r *GormPostRepository) Create(ctx context.Context, authorID, text string, groupID *uint, imageKey string) (*domain.Post, error) {
	l := log.Ctx(ctx)

	model := domain.PostModel{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		ImageKey: imageKey,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		l.Error().Err(err).Msg("failed to create post in db")
		return nil, err
	}

	return r.GetByID(ctx, model.ID)
}

// GetByID retrieves a post with its author and group loaded.
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	var model domain.PostModel
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		First(&model, "posts.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update rewrites the mutable fields of a post. The creation timestamp is
// never touched.
func (r *GormPostRepository) Update(ctx context.Context, id uint, text string, groupID *uint, imageKey string) error {
	result := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"text":      text,
			"group_id":  groupID,
			"image_key": imageKey,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post together with its comments.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.PostModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// ListAll returns every post, newest first.
func (r *GormPostRepository) ListAll(ctx context.Context) ([]domain.Post, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

// ListByGroup returns the posts published into a group.
func (r *GormPostRepository) ListByGroup(ctx context.Context, groupID uint) ([]domain.Post, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

// ListByAuthor returns the posts by a single author.
func (r *GormPostRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

// ListByAuthors returns the merged posts of several authors in one indexed
// query, already globally ordered.
func (r *GormPostRepository) ListByAuthors(ctx context.Context, authorIDs []string) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}
	return r.list(ctx, r.db.WithContext(ctx).Where("author_id IN ?", authorIDs))
}

// CountByAuthor returns the author's total post count.
func (r *GormPostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPostRepository) list(ctx context.Context, query *gorm.DB) ([]domain.Post, error) {
	l := log.Ctx(ctx)

	var models []domain.PostModel
	err := query.
		Preload("Author").Preload("Group").
		Order(feedOrder).
		Find(&models).Error
	if err != nil {
		l.Error().Err(err).Msg("failed to list posts from db")
		return nil, err
	}

	posts := make([]domain.Post, len(models))
	for i := range models {
		posts[i] = *models[i].ToDomain()
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)
