package service

import (
	"context"
	"time"

	"newsroom/internal/cache"
	"newsroom/internal/errors"
	"newsroom/internal/metrics"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

const (
	articleCacheTTL     = time.Minute
	articlesAllKey      = "articles:all"
	articlesByDayPrefix = "articles:date:"
)

// ArticleInput is the payload for publishing an article. A nil PublishedAt
// means now; a nil PaperID publishes into the latest paper.
type ArticleInput struct {
	Title       string
	Summary     string
	Picture     string
	ArticleType string
	PublishedAt *time.Time
	PaperID     *uint
}

// ArticleUpdate carries the fields to change; nil fields are kept.
type ArticleUpdate struct {
	Title       *string
	Summary     *string
	Picture     *string
	ArticleType *string
	PublishedAt *time.Time
	PaperID     *uint
}

// ArticleService handles article publishing.
type ArticleService interface {
	List(ctx context.Context) ([]model.Article, error)
	ListByDate(ctx context.Context, day time.Time) ([]model.Article, error)
	Get(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, actor model.Actor, in ArticleInput) (*model.Article, error)
	Update(ctx context.Context, actor model.Actor, id uint, in ArticleUpdate) (*model.Article, error)
	Delete(ctx context.Context, actor model.Actor, id uint) error
}

type articleService struct {
	articles repository.ArticleRepository
	papers   repository.PaperRepository
	cache    cache.Store
}

// NewArticleService creates a new article service.
func NewArticleService(articles repository.ArticleRepository, papers repository.PaperRepository, cache cache.Store) ArticleService {
	return &articleService{articles: articles, papers: papers, cache: cache}
}

// DayWindow returns the UTC day [start, end) containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func dayKey(t time.Time) string {
	return articlesByDayPrefix + t.UTC().Format(time.DateOnly)
}

// invalidateArticles drops the cached lists touched by a change to articles
// published on the given instants.
func invalidateArticles(ctx context.Context, c cache.Store, published ...time.Time) {
	if c == nil {
		return
	}
	keys := []string{articlesAllKey}
	for _, t := range published {
		keys = append(keys, dayKey(t))
	}
	_ = c.Delete(ctx, keys...)
}

// invalidateAllArticles drops every cached article list. Used when a change
// reaches articles on unknown days, such as an author or paper edit.
func invalidateAllArticles(ctx context.Context, c cache.Store) {
	if c == nil {
		return
	}
	_ = c.Delete(ctx, articlesAllKey)
	_ = c.DeletePrefix(ctx, articlesByDayPrefix)
}

func (s *articleService) List(ctx context.Context) ([]model.Article, error) {
	var cached []model.Article
	if cache.GetJSON(ctx, s.cache, articlesAllKey, &cached) {
		return cached, nil
	}
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, articlesAllKey, articles, articleCacheTTL)
	return articles, nil
}

// ListByDate returns the articles published on the UTC day containing day.
func (s *articleService) ListByDate(ctx context.Context, day time.Time) ([]model.Article, error) {
	key := dayKey(day)
	var cached []model.Article
	if cache.GetJSON(ctx, s.cache, key, &cached) {
		return cached, nil
	}
	from, to := DayWindow(day)
	articles, err := s.articles.ListPublishedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, key, articles, articleCacheTTL)
	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	return s.articles.FindByID(ctx, id)
}

// Create publishes an article authored by actor. Only journalists and
// admins may publish.
func (s *articleService) Create(ctx context.Context, actor model.Actor, in ArticleInput) (*model.Article, error) {
	if !actor.Role.CanPublish() {
		return nil, errors.Forbidden("only journalists and admins can publish articles")
	}

	publishedAt := time.Now().UTC()
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}
	article, err := model.NewArticle(model.ArticleParams{
		Title:       in.Title,
		Summary:     in.Summary,
		Picture:     in.Picture,
		PublishedAt: publishedAt,
		ArticleType: in.ArticleType,
		AuthorID:    actor.ID,
	})
	if err != nil {
		return nil, err
	}

	paper, err := s.resolvePaper(ctx, in.PaperID)
	if err != nil {
		return nil, err
	}
	article.PaperID = paper.ID

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	metrics.ArticlesPublished.Inc()
	invalidateArticles(ctx, s.cache, article.PublishedAt)

	return s.articles.FindByID(ctx, article.ID)
}

func (s *articleService) resolvePaper(ctx context.Context, id *uint) (*model.Paper, error) {
	if id != nil {
		return s.papers.FindByID(ctx, *id)
	}
	return s.papers.Latest(ctx)
}

// Update applies a partial edit by the author or an admin and re-validates the result.
func (s *articleService) Update(ctx context.Context, actor model.Actor, id uint, in ArticleUpdate) (*model.Article, error) {
	article, found, err := lookup(s.articles.FindByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if err := authorizeOwned("article", article, found, actor); err != nil {
		return nil, err
	}

	previous := article.PublishedAt
	if in.Title != nil {
		article.Title = *in.Title
	}
	if in.Summary != nil {
		article.Summary = *in.Summary
	}
	if in.Picture != nil {
		article.Picture = *in.Picture
	}
	if in.ArticleType != nil {
		article.ArticleType = *in.ArticleType
	}
	if in.PublishedAt != nil {
		article.PublishedAt = *in.PublishedAt
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}
	if in.PaperID != nil && *in.PaperID != article.PaperID {
		paper, err := s.papers.FindByID(ctx, *in.PaperID)
		if err != nil {
			return nil, err
		}
		article.PaperID = paper.ID
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	invalidateArticles(ctx, s.cache, previous, article.PublishedAt)

	return s.articles.FindByID(ctx, id)
}

// Delete removes an article with its reviews and likes.
func (s *articleService) Delete(ctx context.Context, actor model.Actor, id uint) error {
	article, found, err := lookup(s.articles.FindByID(ctx, id))
	if err != nil {
		return err
	}
	if err := authorizeOwned("article", article, found, actor); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	invalidateArticles(ctx, s.cache, article.PublishedAt)
	return nil
}
