package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom/internal/model"
)

// ArticleRepository defines article persistence operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	List(ctx context.Context) ([]model.Article, error)
	ListPublishedBetween(ctx context.Context, from, to time.Time) ([]model.Article, error)
	Count(ctx context.Context) (int64, error)
}

type articleRepository struct {
	db     *gorm.DB
	mapper articleMapper
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// withRelations preloads author, paper, reviews (with their authors) and likes.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Paper").Preload("Reviews.User").Preload("Likes")
}

// Create inserts the article row only; relations are referenced by id.
func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	row := r.mapper.ToRow(article)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "article")
	}
	article.ID = row.ID
	return nil
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	row := r.mapper.ToRow(article)
	err := r.db.WithContext(ctx).Model(&ArticleRecord{ID: article.ID}).
		Omit(clause.Associations).
		Select("Title", "Summary", "Picture", "PublishedAt", "ArticleType", "PaperID").
		Updates(row).Error
	return translate(err, "article")
}

// Delete removes the article with its reviews and likes in one transaction.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteArticleDependents(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Delete(&ArticleRecord{}, id)
		if res.Error != nil {
			return translate(res.Error, "article")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "article")
		}
		return nil
	})
}

func deleteArticleDependents(tx *gorm.DB, articleIDs []uint) error {
	if len(articleIDs) == 0 {
		return nil
	}
	if err := tx.Where("article_id IN ?", articleIDs).Delete(&ArticleLikeRecord{}).Error; err != nil {
		return translate(err, "article like")
	}
	if err := tx.Where("article_id IN ?", articleIDs).Delete(&ReviewRecord{}).Error; err != nil {
		return translate(err, "review")
	}
	return nil
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var row ArticleRecord
	if err := withRelations(r.db.WithContext(ctx)).First(&row, id).Error; err != nil {
		return nil, translate(err, "article")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *articleRepository) List(ctx context.Context) ([]model.Article, error) {
	var rows []ArticleRecord
	if err := withRelations(r.db.WithContext(ctx)).Order("published_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err, "article")
	}
	return fromRows[model.Article, ArticleRecord](r.mapper, rows), nil
}

// ListPublishedBetween returns articles with from <= published_at < to.
func (r *articleRepository) ListPublishedBetween(ctx context.Context, from, to time.Time) ([]model.Article, error) {
	var rows []ArticleRecord
	err := withRelations(r.db.WithContext(ctx)).
		Where("published_at >= ? AND published_at < ?", from.UTC(), to.UTC()).
		Order("published_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "article")
	}
	return fromRows[model.Article, ArticleRecord](r.mapper, rows), nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ArticleRecord{}).Count(&n).Error; err != nil {
		return 0, translate(err, "article")
	}
	return n, nil
}
