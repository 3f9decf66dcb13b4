package repository

import "time"

// UserRecord is the users table row.
type UserRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;size:100;not null"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	Email        string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:'guest'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserRecord) TableName() string { return "users" }

// PaperRecord is the papers table row.
type PaperRecord struct {
	ID            uint      `gorm:"primaryKey"`
	Date          time.Time `gorm:"index;not null"`
	NamePaper     string    `gorm:"size:255"`
	NamePublisher string    `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaperRecord) TableName() string { return "papers" }

// ArticleRecord is the articles table row with its relations.
type ArticleRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Summary     string    `gorm:"type:text;not null"`
	Picture     string    `gorm:"size:1024;not null"`
	PublishedAt time.Time `gorm:"index;not null"`
	ArticleType string    `gorm:"size:100"`
	UserID      uint      `gorm:"index;not null"`
	PaperID     uint      `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User    *UserRecord         `gorm:"foreignKey:UserID"`
	Paper   *PaperRecord        `gorm:"foreignKey:PaperID"`
	Reviews []ReviewRecord      `gorm:"foreignKey:ArticleID"`
	Likes   []ArticleLikeRecord `gorm:"foreignKey:ArticleID"`
}

func (ArticleRecord) TableName() string { return "articles" }

// ReviewRecord is the reviews table row. One review per (user, article).
type ReviewRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`
	Rating    *int
	UserID    uint `gorm:"not null;uniqueIndex:idx_review_user_article"`
	ArticleID uint `gorm:"not null;uniqueIndex:idx_review_user_article"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *UserRecord `gorm:"foreignKey:UserID"`
}

func (ReviewRecord) TableName() string { return "reviews" }

// ArticleLikeRecord is the article_likes table row. One like per (user, article).
type ArticleLikeRecord struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_article"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_like_user_article"`
	Date      time.Time `gorm:"not null"`
}

func (ArticleLikeRecord) TableName() string { return "article_likes" }

// Tables lists every record type in dependency order, parents first.
func Tables() []interface{} {
	return []interface{}{
		&UserRecord{},
		&PaperRecord{},
		&ArticleRecord{},
		&ReviewRecord{},
		&ArticleLikeRecord{},
	}
}
