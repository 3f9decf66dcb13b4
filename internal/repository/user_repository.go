package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db     *gorm.DB
	mapper userMapper
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	row := r.mapper.ToRow(user)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "user")
	}
	user.ID = row.ID
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	row := r.mapper.ToRow(user)
	err := r.db.WithContext(ctx).Model(&UserRecord{ID: user.ID}).
		Select("Username", "FirstName", "LastName", "Email", "PasswordHash", "Role").
		Updates(row).Error
	return translate(err, "user")
}

// Delete removes the user together with their articles, reviews and likes.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var articleIDs []uint
		if err := tx.Model(&ArticleRecord{}).Where("user_id = ?", id).Pluck("id", &articleIDs).Error; err != nil {
			return translate(err, "user")
		}
		if err := deleteArticleDependents(tx, articleIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&ArticleLikeRecord{}).Error; err != nil {
			return translate(err, "article like")
		}
		if err := tx.Where("user_id = ?", id).Delete(&ReviewRecord{}).Error; err != nil {
			return translate(err, "review")
		}
		if err := tx.Where("user_id = ?", id).Delete(&ArticleRecord{}).Error; err != nil {
			return translate(err, "article")
		}
		res := tx.Delete(&UserRecord{}, id)
		if res.Error != nil {
			return translate(res.Error, "user")
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "user")
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var row UserRecord
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var row UserRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translate(err, "user")
	}
	return r.mapper.FromRow(&row), nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var rows []UserRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "user")
	}
	return fromRows[model.User, UserRecord](r.mapper, rows), nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserRecord{}).Count(&n).Error; err != nil {
		return 0, translate(err, "user")
	}
	return n, nil
}
