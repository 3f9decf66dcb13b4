package model

import (
	"strings"

	"newsroom/internal/errors"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Review is a user's rated opinion on an article.
type Review struct {
	ID        uint     `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Rating    *int     `json:"rating,omitempty"`
	UserID    uint     `json:"userId"`
	ArticleID uint     `json:"articleId"`
	User      *User    `json:"user,omitempty"`
	Article   *Article `json:"article,omitempty"`
}

// ReviewParams holds the fields needed to construct a Review.
type ReviewParams struct {
	ID        uint
	Title     string
	Content   string
	Rating    *int
	UserID    uint
	ArticleID uint
}

// NewReview builds a validated Review.
func NewReview(p ReviewParams) (*Review, error) {
	r := &Review{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Rating:    p.Rating,
		UserID:    p.UserID,
		ArticleID: p.ArticleID,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate enforces the review field rules. A nil rating is allowed.
func (r *Review) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Content) == "" {
		return errors.Validation("title", "title and content are required")
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		return errors.Validation("rating", "rating must be between 0 and 5")
	}
	return nil
}

func (r *Review) OwnerID() uint {
	return r.UserID
}

// Equal compares identity, title, content and rating.
func (r *Review) Equal(other *Review) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ID == other.ID && r.Title == other.Title && r.Content == other.Content &&
		equalRating(r.Rating, other.Rating)
}

func equalRating(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
