package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom/internal/model"
)

// ArticleLikeRepository defines like persistence operations.
type ArticleLikeRepository interface {
	Create(ctx context.Context, like *model.ArticleLike) error
	Delete(ctx context.Context, userID, articleID uint) error
	Find(ctx context.Context, userID, articleID uint) (*model.ArticleLike, error)
	ListByArticle(ctx context.Context, articleID uint) ([]model.ArticleLike, error)
}

type articleLikeRepository struct {
	db     *gorm.DB
	mapper likeMapper
}

// NewArticleLikeRepository creates a new like repository.
func NewArticleLikeRepository(db *gorm.DB) ArticleLikeRepository {
	return &articleLikeRepository{db: db}
}

// Create relies on the (user_id, article_id) unique index; a second like
// by the same user surfaces as a conflict.
func (r *articleLikeRepository) Create(ctx context.Context, like *model.ArticleLike) error {
	row := r.mapper.ToRow(like)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "article like")
	}
	like.ID = row.ID
	return nil
}

func (r *articleLikeRepository) Delete(ctx context.Context, userID, articleID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&ArticleLikeRecord{})
	if res.Error != nil {
		return translate(res.Error, "article like")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "article like")
	}
	return nil
}

func (r *articleLikeRepository) Find(ctx context.Context, userID, articleID uint) (*model.ArticleLike, error) {
	var row ArticleLikeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&row).Error
	if err != nil {
		return nil, translate(err, "article like")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *articleLikeRepository) ListByArticle(ctx context.Context, articleID uint) ([]model.ArticleLike, error) {
	var rows []ArticleLikeRecord
	if err := r.db.WithContext(ctx).Where("article_id = ?", articleID).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "article like")
	}
	return fromRows[model.ArticleLike, ArticleLikeRecord](r.mapper, rows), nil
}
