package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom/internal/model"
)

// PaperRepository defines paper persistence operations.
type PaperRepository interface {
	Create(ctx context.Context, paper *model.Paper) error
	Update(ctx context.Context, paper *model.Paper) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Paper, error)
	Latest(ctx context.Context) (*model.Paper, error)
	List(ctx context.Context) ([]model.Paper, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Paper, error)
	CountArticles(ctx context.Context, id uint) (int64, error)
}

type paperRepository struct {
	db     *gorm.DB
	mapper paperMapper
}

// NewPaperRepository creates a new paper repository.
func NewPaperRepository(db *gorm.DB) PaperRepository {
	return &paperRepository{db: db}
}

func (r *paperRepository) Create(ctx context.Context, paper *model.Paper) error {
	row := r.mapper.ToRow(paper)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "paper")
	}
	paper.ID = row.ID
	return nil
}

func (r *paperRepository) Update(ctx context.Context, paper *model.Paper) error {
	row := r.mapper.ToRow(paper)
	err := r.db.WithContext(ctx).Model(&PaperRecord{ID: paper.ID}).
		Select("Date", "NamePaper", "NamePublisher").
		Updates(row).Error
	return translate(err, "paper")
}

func (r *paperRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&PaperRecord{}, id)
	if res.Error != nil {
		return translate(res.Error, "paper")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "paper")
	}
	return nil
}

func (r *paperRepository) FindByID(ctx context.Context, id uint) (*model.Paper, error) {
	var row PaperRecord
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, "paper")
	}
	return r.mapper.FromRow(&row), nil
}

// Latest returns the paper with the most recent date.
func (r *paperRepository) Latest(ctx context.Context) (*model.Paper, error) {
	var row PaperRecord
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").First(&row).Error; err != nil {
		return nil, translate(err, "paper")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *paperRepository) List(ctx context.Context) ([]model.Paper, error) {
	var rows []PaperRecord
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err, "paper")
	}
	return fromRows[model.Paper, PaperRecord](r.mapper, rows), nil
}

// ListBetween returns papers dated from <= date < to.
func (r *paperRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.Paper, error) {
	var rows []PaperRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from.UTC(), to.UTC()).
		Order("date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "paper")
	}
	return fromRows[model.Paper, PaperRecord](r.mapper, rows), nil
}

func (r *paperRepository) CountArticles(ctx context.Context, id uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ArticleRecord{}).Where("paper_id = ?", id).Count(&n).Error; err != nil {
		return 0, translate(err, "paper")
	}
	return n, nil
}
