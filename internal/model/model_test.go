package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/errors"
)

func intPtr(v int) *int { return &v }

func validArticle() ArticleParams {
	return ArticleParams{
		Title:       "Elections",
		Summary:     "Results are in",
		Picture:     "https://www.example.com/image.jpg",
		PublishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		ArticleType: "politics",
		AuthorID:    1,
		PaperID:     1,
	}
}

func TestNewArticle(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ArticleParams)
		wantMsg string
	}{
		{name: "valid", mutate: func(*ArticleParams) {}},
		{name: "empty title", mutate: func(p *ArticleParams) { p.Title = "" }, wantMsg: "title and summary are required"},
		{name: "blank summary", mutate: func(p *ArticleParams) { p.Summary = "  " }, wantMsg: "title and summary are required"},
		{name: "empty picture", mutate: func(p *ArticleParams) { p.Picture = "" }, wantMsg: "picture is required"},
		{name: "zero published date", mutate: func(p *ArticleParams) { p.PublishedAt = time.Time{} }, wantMsg: "published date is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validArticle()
			tt.mutate(&p)
			a, err := NewArticle(p)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, p.Title, a.Title)
				return
			}
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, errors.Is(err, errors.ErrValidation))
		})
	}
}

func TestArticle_Equal(t *testing.T) {
	a, err := NewArticle(validArticle())
	require.NoError(t, err)

	same := *a
	same.Summary = "different summary"
	same.PublishedAt = a.PublishedAt.In(time.FixedZone("CET", 3600))
	assert.True(t, a.Equal(&same))

	other := *a
	other.ID = 99
	assert.False(t, a.Equal(&other))

	later := *a
	later.PublishedAt = a.PublishedAt.Add(time.Second)
	assert.False(t, a.Equal(&later))
}

func TestNewReview_Rating(t *testing.T) {
	for r := -2; r <= 7; r++ {
		_, err := NewReview(ReviewParams{Title: "Good", Content: "Well written", Rating: intPtr(r)})
		if r >= MinRating && r <= MaxRating {
			assert.NoError(t, err, "rating %d", r)
		} else {
			assert.EqualError(t, err, "rating must be between 0 and 5", "rating %d", r)
		}
	}

	_, err := NewReview(ReviewParams{Title: "Good", Content: "Well written"})
	assert.NoError(t, err)

	_, err = NewReview(ReviewParams{Title: "", Content: "Well written"})
	assert.EqualError(t, err, "title and content are required")
}

func TestReview_Equal(t *testing.T) {
	a := &Review{ID: 1, Title: "t", Content: "c", Rating: intPtr(3), UserID: 1}
	b := &Review{ID: 1, Title: "t", Content: "c", Rating: intPtr(3), UserID: 2}
	assert.True(t, a.Equal(b))

	b.Rating = nil
	assert.False(t, a.Equal(b))
}

func TestNewUser(t *testing.T) {
	valid := UserParams{Username: "alice", Email: "alice@example.com", Password: "pw123456", Role: RoleJournalist}

	u, err := NewUser(valid)
	require.NoError(t, err)
	assert.Equal(t, RoleJournalist, u.Role)
	assert.Empty(t, u.PasswordHash)

	noRole := valid
	noRole.Role = ""
	u, err = NewUser(noRole)
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, u.Role)

	badEmail := valid
	badEmail.Email = "alice@example"
	_, err = NewUser(badEmail)
	assert.EqualError(t, err, "invalid email address")

	shortPw := valid
	shortPw.Password = "12345"
	_, err = NewUser(shortPw)
	assert.EqualError(t, err, "password must be at least 6 characters long")

	badRole := valid
	badRole.Role = "editor"
	_, err = NewUser(badRole)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestUser_Equal(t *testing.T) {
	a := &User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice"}
	assert.True(t, a.Equal(a))

	b := &User{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alicia", Role: RoleAdmin}
	assert.True(t, a.Equal(b))

	c := *b
	c.ID = 2
	assert.False(t, a.Equal(&c))
}

func TestNewPaper(t *testing.T) {
	_, err := NewPaper(0, time.Time{}, "Daily", "Press")
	assert.EqualError(t, err, "valid date is required")

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p, err := NewPaper(1, day, "Daily", "Press")
	require.NoError(t, err)
	assert.True(t, p.Equal(&Paper{ID: 1, Date: day}))
	assert.False(t, p.Equal(&Paper{ID: 1, Date: day.AddDate(0, 0, 1)}))
}

func TestNewArticleLike(t *testing.T) {
	_, err := NewArticleLike(0, 3, time.Now())
	assert.True(t, errors.Is(err, errors.ErrValidation))

	l, err := NewArticleLike(2, 3, time.Now())
	require.NoError(t, err)
	assert.True(t, l.Equal(&ArticleLike{UserID: 2, ArticleID: 3}))
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAdmin.CanPublish())
	assert.True(t, RoleJournalist.CanPublish())
	assert.False(t, RoleReader.CanPublish())
	assert.False(t, Role("editor").Valid())
	assert.True(t, Actor{Role: RoleAdmin}.IsAdmin())
}
