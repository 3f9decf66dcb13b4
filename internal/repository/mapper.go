package repository

import "newsroom/internal/model"

// RowMapper translates between a domain entity and its storage row.
type RowMapper[E any, R any] interface {
	ToRow(entity *E) *R
	FromRow(row *R) *E
}

func fromRows[E any, R any](m RowMapper[E, R], rows []R) []E {
	out := make([]E, 0, len(rows))
	for i := range rows {
		out = append(out, *m.FromRow(&rows[i]))
	}
	return out
}

type userMapper struct{}

func (userMapper) ToRow(u *model.User) *UserRecord {
	return &UserRecord{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
}

func (userMapper) FromRow(r *UserRecord) *model.User {
	return &model.User{
		ID:           r.ID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         model.Role(r.Role),
	}
}

type paperMapper struct{}

func (paperMapper) ToRow(p *model.Paper) *PaperRecord {
	return &PaperRecord{
		ID:            p.ID,
		Date:          p.Date.UTC(),
		NamePaper:     p.NamePaper,
		NamePublisher: p.NamePublisher,
	}
}

func (paperMapper) FromRow(r *PaperRecord) *model.Paper {
	return &model.Paper{
		ID:            r.ID,
		Date:          r.Date,
		NamePaper:     r.NamePaper,
		NamePublisher: r.NamePublisher,
	}
}

type likeMapper struct{}

func (likeMapper) ToRow(l *model.ArticleLike) *ArticleLikeRecord {
	return &ArticleLikeRecord{ID: l.ID, UserID: l.UserID, ArticleID: l.ArticleID, Date: l.Date.UTC()}
}

func (likeMapper) FromRow(r *ArticleLikeRecord) *model.ArticleLike {
	return &model.ArticleLike{ID: r.ID, UserID: r.UserID, ArticleID: r.ArticleID, Date: r.Date}
}

type reviewMapper struct{}

func (reviewMapper) ToRow(rv *model.Review) *ReviewRecord {
	return &ReviewRecord{
		ID:        rv.ID,
		Title:     rv.Title,
		Content:   rv.Content,
		Rating:    rv.Rating,
		UserID:    rv.UserID,
		ArticleID: rv.ArticleID,
	}
}

func (reviewMapper) FromRow(r *ReviewRecord) *model.Review {
	rv := &model.Review{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		Rating:    r.Rating,
		UserID:    r.UserID,
		ArticleID: r.ArticleID,
	}
	if r.User != nil {
		rv.User = userMapper{}.FromRow(r.User)
	}
	return rv
}

type articleMapper struct{}

func (articleMapper) ToRow(a *model.Article) *ArticleRecord {
	return &ArticleRecord{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Picture:     a.Picture,
		PublishedAt: a.PublishedAt.UTC(),
		ArticleType: a.ArticleType,
		UserID:      a.AuthorID,
		PaperID:     a.PaperID,
	}
}

func (articleMapper) FromRow(r *ArticleRecord) *model.Article {
	a := &model.Article{
		ID:          r.ID,
		Title:       r.Title,
		Summary:     r.Summary,
		Picture:     r.Picture,
		PublishedAt: r.PublishedAt,
		ArticleType: r.ArticleType,
		AuthorID:    r.UserID,
		PaperID:     r.PaperID,
	}
	if r.User != nil {
		a.Author = userMapper{}.FromRow(r.User)
	}
	if r.Paper != nil {
		a.Paper = paperMapper{}.FromRow(r.Paper)
	}
	if len(r.Reviews) > 0 {
		a.Reviews = fromRows[model.Review, ReviewRecord](reviewMapper{}, r.Reviews)
	}
	if len(r.Likes) > 0 {
		a.Likes = fromRows[model.ArticleLike, ArticleLikeRecord](likeMapper{}, r.Likes)
	}
	return a
}

var (
	_ RowMapper[model.User, UserRecord]               = userMapper{}
	_ RowMapper[model.Paper, PaperRecord]             = paperMapper{}
	_ RowMapper[model.Article, ArticleRecord]         = articleMapper{}
	_ RowMapper[model.Review, ReviewRecord]           = reviewMapper{}
	_ RowMapper[model.ArticleLike, ArticleLikeRecord] = likeMapper{}
)
