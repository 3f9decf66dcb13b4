package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsroom/internal/errors"
	"newsroom/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Tables()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	author  *model.User
	reader  *model.User
	paper   *model.Paper
	article *model.Article
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(db)

	author := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleJournalist}
	reader := &model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: model.RoleReader}
	require.NoError(t, users.Create(ctx, author))
	require.NoError(t, users.Create(ctx, reader))

	paper := &model.Paper{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), NamePaper: "Daily", NamePublisher: "Press"}
	require.NoError(t, NewPaperRepository(db).Create(ctx, paper))

	article := &model.Article{
		Title:       "Elections",
		Summary:     "Results are in",
		Picture:     "https://www.example.com/image.jpg",
		PublishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		ArticleType: "politics",
		AuthorID:    author.ID,
		PaperID:     paper.ID,
	}
	require.NoError(t, NewArticleRepository(db).Create(ctx, article))

	return fixture{author: author, reader: reader, paper: paper, article: article}
}

func TestUserRepository_UsernameUnique(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", Email: "a@example.com", PasswordHash: "x", Role: model.RoleGuest}))
	err := repo.Create(ctx, &model.User{Username: "alice", Email: "b@example.com", PasswordHash: "x", Role: model.RoleGuest})
	assert.True(t, errors.Is(err, errors.ErrConflict), "got %v", err)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", found.Email)
}

func TestArticleLikeRepository_DuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewArticleLikeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.ArticleLike{UserID: f.reader.ID, ArticleID: f.article.ID, Date: time.Now()}))
	err := repo.Create(ctx, &model.ArticleLike{UserID: f.reader.ID, ArticleID: f.article.ID, Date: time.Now()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.Equal(t, "article like already exists", err.Error())

	require.NoError(t, repo.Delete(ctx, f.reader.ID, f.article.ID))
	err = repo.Delete(ctx, f.reader.ID, f.article.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestReviewRepository_OnePerUserAndArticle(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	rating := 4
	first := &model.Review{Title: "Sharp", Content: "Good read", Rating: &rating, UserID: f.reader.ID, ArticleID: f.article.ID}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &model.Review{Title: "Again", Content: "Still good", UserID: f.reader.ID, ArticleID: f.article.ID})
	assert.True(t, errors.Is(err, errors.ErrConflict))

	first.Title = "Sharper"
	require.NoError(t, repo.Update(ctx, first))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharper", got.Title)
	require.NotNil(t, got.User)
	assert.Equal(t, "bob", got.User.Username)

	byUser, err := repo.ListByUser(ctx, f.reader.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)
}

func TestArticleRepository_FindByIDLoadsRelations(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	require.NoError(t, NewArticleLikeRepository(db).Create(ctx, &model.ArticleLike{UserID: f.reader.ID, ArticleID: f.article.ID, Date: time.Now()}))
	require.NoError(t, NewReviewRepository(db).Create(ctx, &model.Review{Title: "t", Content: "c", UserID: f.reader.ID, ArticleID: f.article.ID}))

	got, err := NewArticleRepository(db).FindByID(ctx, f.article.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(f.article))
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Username)
	require.NotNil(t, got.Paper)
	assert.Equal(t, "Daily", got.Paper.NamePaper)
	assert.Equal(t, []uint{f.reader.ID}, got.LikerIDs())
	assert.Equal(t, []uint{f.reader.ID}, got.ReviewerIDs())

	_, err = NewArticleRepository(db).FindByID(ctx, 9999)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestArticleRepository_ListPublishedBetween(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	next := *f.article
	next.ID = 0
	next.Title = "Next day"
	next.PublishedAt = time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &next))

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListPublishedBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Elections", got[0].Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Next day", all[0].Title)
}

func TestArticleRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	require.NoError(t, NewArticleLikeRepository(db).Create(ctx, &model.ArticleLike{UserID: f.reader.ID, ArticleID: f.article.ID, Date: time.Now()}))
	require.NoError(t, NewReviewRepository(db).Create(ctx, &model.Review{Title: "t", Content: "c", UserID: f.reader.ID, ArticleID: f.article.ID}))

	repo := NewArticleRepository(db)
	require.NoError(t, repo.Delete(ctx, f.article.ID))

	var likes, reviews int64
	db.Model(&ArticleLikeRecord{}).Count(&likes)
	db.Model(&ReviewRecord{}).Count(&reviews)
	assert.Zero(t, likes)
	assert.Zero(t, reviews)

	assert.True(t, errors.Is(repo.Delete(ctx, f.article.ID), errors.ErrNotFound))
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	require.NoError(t, NewReviewRepository(db).Create(ctx, &model.Review{Title: "t", Content: "c", UserID: f.reader.ID, ArticleID: f.article.ID}))

	require.NoError(t, NewUserRepository(db).Delete(ctx, f.author.ID))

	n, err := NewArticleRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	var reviews int64
	db.Model(&ReviewRecord{}).Count(&reviews)
	assert.Zero(t, reviews)

	users, err := NewUserRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, users)
}

func TestPaperRepository_LatestAndCount(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaperRepository(db)
	ctx := context.Background()

	newer := &model.Paper{Date: f.paper.Date.AddDate(0, 0, 1), NamePaper: "Tomorrow"}
	require.NoError(t, repo.Create(ctx, newer))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	n, err := repo.CountArticles(ctx, f.paper.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	day, err := repo.ListBetween(ctx, f.paper.Date, f.paper.Date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.True(t, day[0].Equal(f.paper))
}

func TestArticleLikeRepository_MySQLDuplicateEntry(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `article_likes`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '2-3' for key 'idx_like_user_article'"})
	mock.ExpectRollback()

	err = NewArticleLikeRepository(db).Create(context.Background(), &model.ArticleLike{UserID: 2, ArticleID: 3, Date: time.Now()})
	assert.True(t, errors.Is(err, errors.ErrConflict), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
