package service

import (
	"context"

	"newsroom/internal/cache"
	"newsroom/internal/metrics"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

// ReviewInput is the payload for reviewing an article.
type ReviewInput struct {
	Title     string
	Content   string
	Rating    *int
	ArticleID uint
}

// ReviewUpdate carries the fields to change; nil fields are kept.
type ReviewUpdate struct {
	Title   *string
	Content *string
	Rating  *int
}

// ReviewService manages reviews.
type ReviewService interface {
	List(ctx context.Context) ([]model.Review, error)
	Get(ctx context.Context, id uint) (*model.Review, error)
	ListByArticle(ctx context.Context, articleID uint) ([]model.Review, error)
	Create(ctx context.Context, actor model.Actor, in ReviewInput) (*model.Review, error)
	Update(ctx context.Context, actor model.Actor, id uint, in ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, actor model.Actor, id uint) error
}

type reviewService struct {
	reviews  repository.ReviewRepository
	articles repository.ArticleRepository
	cache    cache.Store
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, articles repository.ArticleRepository, cache cache.Store) ReviewService {
	return &reviewService{reviews: reviews, articles: articles, cache: cache}
}

func (s *reviewService) List(ctx context.Context) ([]model.Review, error) {
	return s.reviews.List(ctx)
}

func (s *reviewService) Get(ctx context.Context, id uint) (*model.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

// ListByArticle returns the reviews of an existing article.
func (s *reviewService) ListByArticle(ctx context.Context, articleID uint) ([]model.Review, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.reviews.ListByArticle(ctx, articleID)
}

// Create stores a review. Authors cannot review their own article and a
// user reviews an article at most once.
func (s *reviewService) Create(ctx context.Context, actor model.Actor, in ReviewInput) (*model.Review, error) {
	review, err := model.NewReview(model.ReviewParams{
		Title:     in.Title,
		Content:   in.Content,
		Rating:    in.Rating,
		UserID:    actor.ID,
		ArticleID: in.ArticleID,
	})
	if err != nil {
		return nil, err
	}

	article, err := s.articles.FindByID(ctx, in.ArticleID)
	if err != nil {
		return nil, err
	}
	if err := CheckEngagement(EngagementReview, article.AuthorID, actor.ID, article.ReviewerIDs()); err != nil {
		metrics.RecordEngagement(string(EngagementReview), "rejected")
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	metrics.RecordEngagement(string(EngagementReview), "created")
	invalidateArticles(ctx, s.cache, article.PublishedAt)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor model.Actor, id uint, in ReviewUpdate) (*model.Review, error) {
	review, found, err := lookup(s.reviews.FindByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if err := authorizeOwned("review", review, found, actor); err != nil {
		return nil, err
	}

	if in.Title != nil {
		review.Title = *in.Title
	}
	if in.Content != nil {
		review.Content = *in.Content
	}
	if in.Rating != nil {
		review.Rating = in.Rating
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	s.invalidateFor(ctx, review.ArticleID)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor model.Actor, id uint) error {
	review, found, err := lookup(s.reviews.FindByID(ctx, id))
	if err != nil {
		return err
	}
	if err := authorizeOwned("review", review, found, actor); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFor(ctx, review.ArticleID)
	return nil
}

func (s *reviewService) invalidateFor(ctx context.Context, articleID uint) {
	if article, err := s.articles.FindByID(ctx, articleID); err == nil {
		invalidateArticles(ctx, s.cache, article.PublishedAt)
		return
	}
	invalidateArticles(ctx, s.cache)
}
