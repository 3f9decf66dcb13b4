package model

import (
	"time"

	"newsroom/internal/errors"
)

// ArticleLike records that a user liked an article. A user likes an article at most once.
type ArticleLike struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	ArticleID uint      `json:"articleId"`
	Date      time.Time `json:"date"`
}

// NewArticleLike builds a like dated at the given instant.
func NewArticleLike(userID, articleID uint, at time.Time) (*ArticleLike, error) {
	if userID == 0 || articleID == 0 {
		return nil, errors.Validation("articleId", "user and article are required")
	}
	return &ArticleLike{UserID: userID, ArticleID: articleID, Date: at}, nil
}

func (l *ArticleLike) Equal(other *ArticleLike) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.ID == other.ID && l.UserID == other.UserID && l.ArticleID == other.ArticleID
}
