package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Review, error)
	ListByArticle(ctx context.Context, articleID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db     *gorm.DB
	mapper reviewMapper
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create fails with a conflict when the user already reviewed the article.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	row := r.mapper.ToRow(review)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "review")
	}
	review.ID = row.ID
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	row := r.mapper.ToRow(review)
	err := r.db.WithContext(ctx).Model(&ReviewRecord{ID: review.ID}).
		Omit(clause.Associations).
		Select("Title", "Content", "Rating").
		Updates(row).Error
	return translate(err, "review")
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&ReviewRecord{}, id)
	if res.Error != nil {
		return translate(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "review")
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	var row ReviewRecord
	if err := r.db.WithContext(ctx).Preload("User").First(&row, id).Error; err != nil {
		return nil, translate(err, "review")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]model.Review, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *reviewRepository) ListByArticle(ctx context.Context, articleID uint) ([]model.Review, error) {
	return r.find(r.db.WithContext(ctx).Where("article_id = ?", articleID))
}

func (r *reviewRepository) find(q *gorm.DB) ([]model.Review, error) {
	var rows []ReviewRecord
	if err := q.Preload("User").Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "review")
	}
	return fromRows[model.Review, ReviewRecord](r.mapper, rows), nil
}
