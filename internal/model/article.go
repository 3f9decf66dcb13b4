package model

import (
	"strings"
	"time"

	"newsroom/internal/errors"
)

// Article is a piece published by a user into a paper.
type Article struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Picture     string        `json:"picture"`
	PublishedAt time.Time     `json:"publishedAt"`
	ArticleType string        `json:"articleType"`
	AuthorID    uint          `json:"userId"`
	PaperID     uint          `json:"paperId"`
	Author      *User         `json:"user,omitempty"`
	Paper       *Paper        `json:"paper,omitempty"`
	Reviews     []Review      `json:"reviews,omitempty"`
	Likes       []ArticleLike `json:"articleLikes,omitempty"`
}

// ArticleParams holds the fields needed to construct an Article.
type ArticleParams struct {
	ID          uint
	Title       string
	Summary     string
	Picture     string
	PublishedAt time.Time
	ArticleType string
	AuthorID    uint
	PaperID     uint
}

// NewArticle builds a validated Article.
func NewArticle(p ArticleParams) (*Article, error) {
	a := &Article{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		Picture:     p.Picture,
		PublishedAt: p.PublishedAt,
		ArticleType: p.ArticleType,
		AuthorID:    p.AuthorID,
		PaperID:     p.PaperID,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate enforces the article field rules.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Summary) == "" {
		return errors.Validation("title", "title and summary are required")
	}
	if a.PublishedAt.IsZero() {
		return errors.Validation("publishedAt", "published date is invalid")
	}
	if strings.TrimSpace(a.Picture) == "" {
		return errors.Validation("picture", "picture is required")
	}
	return nil
}

// OwnerID returns the id of the authoring user.
func (a *Article) OwnerID() uint {
	return a.AuthorID
}

// Equal compares identity, title and the publication instant.
func (a *Article) Equal(other *Article) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID && a.Title == other.Title && a.PublishedAt.Equal(other.PublishedAt)
}

// LikerIDs returns the ids of users who liked the article.
func (a *Article) LikerIDs() []uint {
	ids := make([]uint, 0, len(a.Likes))
	for _, l := range a.Likes {
		ids = append(ids, l.UserID)
	}
	return ids
}

// ReviewerIDs returns the ids of users who reviewed the article.
func (a *Article) ReviewerIDs() []uint {
	ids := make([]uint, 0, len(a.Reviews))
	for _, r := range a.Reviews {
		ids = append(ids, r.UserID)
	}
	return ids
}
