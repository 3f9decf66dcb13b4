package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/config"
	"newsroom/internal/db"
	"newsroom/internal/logging"
	"newsroom/internal/model"
	"newsroom/internal/repository"
	"newsroom/internal/service"
)

type seedUser struct {
	username, password, firstName, lastName, email string
	role                                           model.Role
}

var articleTypes = []string{"informatif", "job add", "product add", "sport", "politics", "global news", "show bizz"}

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	// Seeding always starts from empty tables.
	if err := db.Migrate(gormDB, true); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	s := &seeder{
		users:    repository.NewUserRepository(gormDB),
		papers:   repository.NewPaperRepository(gormDB),
		articles: repository.NewArticleRepository(gormDB),
		reviews:  repository.NewReviewRepository(gormDB),
		likes:    repository.NewArticleLikeRepository(gormDB),
		rnd:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 42)),
	}
	if err := s.run(context.Background(), time.Now().UTC()); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		os.Exit(1)
	}
}

type seeder struct {
	users    repository.UserRepository
	papers   repository.PaperRepository
	articles repository.ArticleRepository
	reviews  repository.ReviewRepository
	likes    repository.ArticleLikeRepository
	rnd      *rand.Rand
}

func (s *seeder) run(ctx context.Context, now time.Time) error {
	users, err := s.seedUsers(ctx)
	if err != nil {
		return err
	}
	papers, err := s.seedPapers(ctx, now)
	if err != nil {
		return err
	}
	articles, err := s.seedArticles(ctx, users, papers)
	if err != nil {
		return err
	}
	reviews, likes, err := s.seedEngagement(ctx, users, articles, now)
	if err != nil {
		return err
	}
	slog.Info("seed completed",
		slog.Int("users", len(users)),
		slog.Int("papers", len(papers)),
		slog.Int("articles", len(articles)),
		slog.Int("reviews", reviews),
		slog.Int("likes", likes))
	return nil
}

func demoUsers() []seedUser {
	users := []seedUser{
		{"admin", "admin", "Admin", "Admin", "Admin@admin.com", model.RoleAdmin},
		{"Jhon", "Doe", "Jhon", "Doe", "jhon.doe@ucll.be", model.RoleAdmin},
		{"reader", "reader", "Reader", "Reader", "reader@gmail.com", model.RoleReader},
		{"Rudy", "rudy", "Rudy", "Vranckx", "rudy@vranckx.com", model.RoleJournalist},
		{"ruben", "ruben", "Ruben", "Van Gugcht", "ruben@gucht.com", model.RoleJournalist},
	}
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("reader%d", i)
		users = append(users, seedUser{name, name, fmt.Sprintf("Reader%d", i), fmt.Sprintf("Reader%d", i), name + "@gmail.com", model.RoleReader})
	}
	return users
}

// seedUsers writes the demo accounts directly; their passwords predate the
// sign-up length rule.
func (s *seeder) seedUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range demoUsers() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		user := &model.User{
			Username:     u.username,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.username, err)
		}
		out = append(out, *user)
	}
	return out, nil
}

func (s *seeder) seedPapers(ctx context.Context, now time.Time) ([]model.Paper, error) {
	var out []model.Paper
	for i := 0; i < 3; i++ {
		day, _ := service.DayWindow(now.AddDate(0, 0, i-2))
		paper, err := model.NewPaper(0, day, fmt.Sprintf("Paper %d", i+1), fmt.Sprintf("Publisher %d", i+1))
		if err != nil {
			return nil, err
		}
		if err := s.papers.Create(ctx, paper); err != nil {
			return nil, fmt.Errorf("create paper: %w", err)
		}
		out = append(out, *paper)
	}
	return out, nil
}

func (s *seeder) seedArticles(ctx context.Context, users []model.User, papers []model.Paper) ([]model.Article, error) {
	var writers []model.User
	for _, u := range users {
		if u.Role.CanPublish() {
			writers = append(writers, u)
		}
	}

	var out []model.Article
	for i := 1; i <= 30; i++ {
		author := writers[s.rnd.IntN(len(writers))]
		paper := papers[s.rnd.IntN(len(papers))]
		article, err := model.NewArticle(model.ArticleParams{
			Title:       fmt.Sprintf("Article %d", i),
			Summary:     fmt.Sprintf("Summary %d", i),
			Picture:     "https://www.example.com/image.jpg",
			PublishedAt: paper.Date.Add(time.Duration(s.rnd.IntN(24*60)) * time.Minute),
			ArticleType: articleTypes[s.rnd.IntN(len(articleTypes))],
			AuthorID:    author.ID,
			PaperID:     paper.ID,
		})
		if err != nil {
			return nil, err
		}
		if err := s.articles.Create(ctx, article); err != nil {
			return nil, fmt.Errorf("create article: %w", err)
		}
		out = append(out, *article)
	}
	return out, nil
}

// seedEngagement adds random reviews and likes while honouring the same
// rules the API enforces.
func (s *seeder) seedEngagement(ctx context.Context, users []model.User, articles []model.Article, now time.Time) (reviews, likes int, err error) {
	for _, article := range articles {
		var reviewers, likers []uint

		for i, n := 0, s.rnd.IntN(6); i < n; i++ {
			user := users[s.rnd.IntN(len(users))]
			if service.CheckEngagement(service.EngagementReview, article.AuthorID, user.ID, reviewers) != nil {
				continue
			}
			rating := s.rnd.IntN(5) + 1
			review, err := model.NewReview(model.ReviewParams{
				Title:     fmt.Sprintf("Review %d for Article %d", i+1, article.ID),
				Content:   fmt.Sprintf("Content of Review %d", i+1),
				Rating:    &rating,
				UserID:    user.ID,
				ArticleID: article.ID,
			})
			if err != nil {
				return reviews, likes, err
			}
			if err := s.reviews.Create(ctx, review); err != nil {
				return reviews, likes, fmt.Errorf("create review: %w", err)
			}
			reviewers = append(reviewers, user.ID)
			reviews++
		}

		for _, user := range users {
			if s.rnd.IntN(2) == 0 {
				continue
			}
			if service.CheckEngagement(service.EngagementLike, article.AuthorID, user.ID, likers) != nil {
				continue
			}
			like, err := model.NewArticleLike(user.ID, article.ID, now)
			if err != nil {
				return reviews, likes, err
			}
			if err := s.likes.Create(ctx, like); err != nil {
				return reviews, likes, fmt.Errorf("create like: %w", err)
			}
			likers = append(likers, user.ID)
			likes++
		}
	}
	return reviews, likes, nil
}
