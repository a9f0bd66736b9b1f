package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/pkg/log"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-backed comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a comment under a post.
func (r *GormCommentRepository) Create(ctx context.Context, postID uint, authorID, text string) (*domain.Comment, error) {
	l := log.Ctx(ctx)

	model := domain.CommentModel{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		l.Error().Err(err).Uint("post_id", postID).Msg("failed to create comment in db")
		return nil, err
	}

	var created domain.CommentModel
	err := r.db.WithContext(ctx).Preload("Author").First(&created, model.ID).Error
	if err != nil {
		return nil, err
	}
	return created.ToDomain(), nil
}

// ListByPost returns a post's comments oldest-first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var models []domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, len(models))
	for i := range models {
		comments[i] = *models[i].ToDomain()
	}
	return comments, nil
}

var _ CommentRepository = (*GormCommentRepository)(nil)
