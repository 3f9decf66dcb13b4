package service

import (
	"context"
	"time"

	"newsroom/internal/cache"
	"newsroom/internal/metrics"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

// LikeService manages article likes.
type LikeService interface {
	Like(ctx context.Context, actor model.Actor, articleID uint) (*model.ArticleLike, error)
	Unlike(ctx context.Context, actor model.Actor, articleID uint) error
	ListByArticle(ctx context.Context, articleID uint) ([]model.ArticleLike, error)
}

type likeService struct {
	likes    repository.ArticleLikeRepository
	articles repository.ArticleRepository
	cache    cache.Store
}

// NewLikeService creates a new like service.
func NewLikeService(likes repository.ArticleLikeRepository, articles repository.ArticleRepository, cache cache.Store) LikeService {
	return &likeService{likes: likes, articles: articles, cache: cache}
}

// Like records actor's like. The unique (user, article) index backs the
// duplicate check when two requests race.
func (s *likeService) Like(ctx context.Context, actor model.Actor, articleID uint) (*model.ArticleLike, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if err := CheckEngagement(EngagementLike, article.AuthorID, actor.ID, article.LikerIDs()); err != nil {
		metrics.RecordEngagement(string(EngagementLike), "rejected")
		return nil, err
	}

	like, err := model.NewArticleLike(actor.ID, articleID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.likes.Create(ctx, like); err != nil {
		return nil, err
	}
	metrics.RecordEngagement(string(EngagementLike), "created")
	invalidateArticles(ctx, s.cache, article.PublishedAt)
	return like, nil
}

// Unlike removes actor's own like.
func (s *likeService) Unlike(ctx context.Context, actor model.Actor, articleID uint) error {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return err
	}
	if _, err := s.likes.Find(ctx, actor.ID, articleID); err != nil {
		return err
	}
	if err := s.likes.Delete(ctx, actor.ID, articleID); err != nil {
		return err
	}
	invalidateArticles(ctx, s.cache, article.PublishedAt)
	return nil
}

func (s *likeService) ListByArticle(ctx context.Context, articleID uint) ([]model.ArticleLike, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}
	return s.likes.ListByArticle(ctx, articleID)
}
