// Package web is the server-rendered front end. It keeps the API token in a
// cookie session and renders gomponents pages from API responses.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	g "github.com/maragudk/gomponents"

	apperrors "newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/service"
)

const (
	sessionToken    = "token"
	sessionUsername = "username"
	sessionRole     = "role"
	sessionUserID   = "userID"
	sessionFlash    = "flash"
	sessionFlashKey = "flashKind"
)

// App serves the front-end pages.
type App struct {
	api      *Client
	sessions *scs.SessionManager
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionManager returns an in-memory cookie session manager.
func NewSessionManager(lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.Name = "newsroom_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = false
	return sm
}

func NewApp(api *Client, sessions *scs.SessionManager, logger *slog.Logger) *App {
	return &App{api: api, sessions: sessions, logger: logger, now: time.Now}
}

// Register mounts the pages on e.
func (a *App) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(a.sessions.LoadAndSave))

	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/articles") })
	e.GET("/login", a.loginForm)
	e.POST("/login", a.login)
	e.GET("/signup", a.signupForm)
	e.POST("/signup", a.signup)

	s := e.Group("", a.requireLogin)
	s.POST("/logout", a.logout)
	s.GET("/articles", a.articles)
	s.POST("/articles", a.createArticle)
	s.GET("/articles/new", a.newArticle)
	s.GET("/articles/:id", a.article)
	s.GET("/articles/:id/edit", a.editArticle)
	s.POST("/articles/:id/edit", a.updateArticle)
	s.POST("/articles/:id/delete", a.deleteArticle)
	s.POST("/articles/:id/like", a.like)
	s.POST("/articles/:id/reviews", a.review)
	s.GET("/papers", a.papers)
	s.POST("/papers", a.createPaper)
	s.GET("/profile", a.profile)
	s.GET("/users", a.users)
	s.POST("/users/:id/delete", a.deleteUser)
}

func (a *App) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.token(c) == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

func (a *App) ctx(c echo.Context) context.Context { return c.Request().Context() }

func (a *App) token(c echo.Context) string {
	return a.sessions.GetString(a.ctx(c), sessionToken)
}

func (a *App) viewer(c echo.Context) viewer {
	ctx := a.ctx(c)
	return viewer{
		ID:       uint(a.sessions.GetInt(ctx, sessionUserID)),
		Username: a.sessions.GetString(ctx, sessionUsername),
		Role:     model.Role(a.sessions.GetString(ctx, sessionRole)),
	}
}

func (a *App) setFlash(c echo.Context, kind, message string) {
	a.sessions.Put(a.ctx(c), sessionFlash, message)
	a.sessions.Put(a.ctx(c), sessionFlashKey, kind)
}

func (a *App) popFlash(c echo.Context) flash {
	ctx := a.ctx(c)
	return flash{
		Kind:    a.sessions.PopString(ctx, sessionFlashKey),
		Message: a.sessions.PopString(ctx, sessionFlash),
	}
}

func render(c echo.Context, status int, page g.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return page.Render(c.Response())
}

// fail flashes err and redirects to target. An expired token ends the session.
func (a *App) fail(c echo.Context, err error, target string) error {
	if IsSessionExpired(err) {
		_ = a.sessions.Destroy(a.ctx(c))
		a.setFlash(c, "error", "your session has expired, please log in again")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) && !errors.Is(err, ErrUnavailable) && !isDomainError(err) {
		a.logger.ErrorContext(a.ctx(c), "api call failed", slog.String("path", c.Path()), slog.Any("error", err))
		err = errors.New("something went wrong, please try again")
	}
	a.setFlash(c, "error", err.Error())
	return c.Redirect(http.StatusSeeOther, target)
}

func isDomainError(err error) bool {
	var de *apperrors.DomainError
	return errors.As(err, &de)
}

func (a *App) loginForm(c echo.Context) error {
	if a.token(c) != "" {
		return c.Redirect(http.StatusSeeOther, "/articles")
	}
	return render(c, http.StatusOK, loginPage(a.popFlash(c)))
}

func (a *App) login(c echo.Context) error {
	ctx := a.ctx(c)
	res, err := a.api.Login(ctx, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return a.fail(c, err, "/login")
	}
	profile, err := a.api.Profile(ctx, res.Token)
	if err != nil {
		return a.fail(c, err, "/login")
	}

	if err := a.sessions.RenewToken(ctx); err != nil {
		return err
	}
	a.sessions.Put(ctx, sessionToken, res.Token)
	a.sessions.Put(ctx, sessionUsername, res.Username)
	a.sessions.Put(ctx, sessionRole, string(res.Role))
	a.sessions.Put(ctx, sessionUserID, int(profile.ID))
	a.setFlash(c, "success", "Welcome "+res.Fullname)
	return c.Redirect(http.StatusSeeOther, "/articles")
}

func (a *App) signupForm(c echo.Context) error {
	return render(c, http.StatusOK, signupPage(a.popFlash(c)))
}

func (a *App) signup(c echo.Context) error {
	_, err := a.api.Signup(a.ctx(c), SignupRequest{
		Username:  c.FormValue("username"),
		Password:  c.FormValue("password"),
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Email:     c.FormValue("email"),
		Role:      c.FormValue("role"),
	})
	if err != nil {
		return a.fail(c, err, "/signup")
	}
	a.setFlash(c, "success", "Account created, you can log in now")
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (a *App) logout(c echo.Context) error {
	ctx := a.ctx(c)
	if err := a.api.Logout(ctx, a.token(c)); err != nil {
		a.logger.WarnContext(ctx, "logout failed", slog.Any("error", err))
	}
	if err := a.sessions.Destroy(ctx); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// day reads ?date=YYYY-MM-DD, defaulting to today.
func (a *App) day(c echo.Context) time.Time {
	if raw := c.QueryParam("date"); raw != "" {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			return t
		}
	}
	return a.now().UTC()
}

func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err == nil && id > 0
}

func (a *App) articles(c echo.Context) error {
	day := a.day(c)
	list, err := a.api.ArticlesOn(a.ctx(c), a.token(c), day)
	if err != nil {
		if IsSessionExpired(err) {
			return a.fail(c, err, "/login")
		}
		return render(c, http.StatusOK, articlesPage(a.viewer(c), flash{Kind: "error", Message: err.Error()}, day, nil))
	}
	return render(c, http.StatusOK, articlesPage(a.viewer(c), a.popFlash(c), day, list))
}

func (a *App) article(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	article, err := a.api.Article(a.ctx(c), a.token(c), id)
	if err != nil {
		return a.fail(c, err, "/articles")
	}
	return render(c, http.StatusOK, articlePage(a.viewer(c), a.popFlash(c), article))
}

func (a *App) newArticle(c echo.Context) error {
	v := a.viewer(c)
	if !v.canPublish() {
		a.setFlash(c, "error", "only journalists and admins can write articles")
		return c.Redirect(http.StatusSeeOther, "/articles")
	}
	return render(c, http.StatusOK, articleFormPage(v, a.popFlash(c), nil))
}

func articleForm(c echo.Context) (ArticleForm, error) {
	form := ArticleForm{
		Title:       c.FormValue("title"),
		Summary:     c.FormValue("summary"),
		Picture:     c.FormValue("picture"),
		ArticleType: c.FormValue("articleType"),
		PublishedAt: c.FormValue("publishedAt"),
	}
	if raw := c.FormValue("paperId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return form, errors.New("paper id must be a number")
		}
		paperID := uint(id)
		form.PaperID = &paperID
	}
	return form, nil
}

func (a *App) createArticle(c echo.Context) error {
	form, err := articleForm(c)
	if err != nil {
		return a.fail(c, err, "/articles/new")
	}
	article, err := a.api.CreateArticle(a.ctx(c), a.token(c), form)
	if err != nil {
		return a.fail(c, err, "/articles/new")
	}
	a.setFlash(c, "success", "Article published")
	return c.Redirect(http.StatusSeeOther, "/articles/"+itoa(article.ID))
}

func (a *App) editArticle(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	article, err := a.api.Article(a.ctx(c), a.token(c), id)
	if err != nil {
		return a.fail(c, err, "/articles")
	}
	v := a.viewer(c)
	if !v.canModify(article.AuthorID) {
		a.setFlash(c, "error", "you are not allowed to modify this article")
		return c.Redirect(http.StatusSeeOther, "/articles/"+itoa(id))
	}
	return render(c, http.StatusOK, articleFormPage(v, a.popFlash(c), article))
}

func (a *App) updateArticle(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	back := "/articles/" + itoa(id)
	form, err := articleForm(c)
	if err != nil {
		return a.fail(c, err, back+"/edit")
	}
	if _, err := a.api.UpdateArticle(a.ctx(c), a.token(c), id, form); err != nil {
		return a.fail(c, err, back+"/edit")
	}
	a.setFlash(c, "success", "Article updated")
	return c.Redirect(http.StatusSeeOther, back)
}

func (a *App) deleteArticle(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	if err := a.api.DeleteArticle(a.ctx(c), a.token(c), id); err != nil {
		return a.fail(c, err, "/articles/"+itoa(id))
	}
	a.setFlash(c, "success", "Article deleted")
	return c.Redirect(http.StatusSeeOther, "/articles")
}

// engage loads the article and applies the like/review rule locally before
// anything is sent.
func (a *App) engage(c echo.Context, kind service.EngagementKind, send func(articleID uint) error) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	back := "/articles/" + itoa(id)
	article, err := a.api.Article(a.ctx(c), a.token(c), id)
	if err != nil {
		return a.fail(c, err, back)
	}
	existing := article.LikerIDs()
	if kind == service.EngagementReview {
		existing = article.ReviewerIDs()
	}
	if err := service.CheckEngagement(kind, article.AuthorID, a.viewer(c).ID, existing); err != nil {
		return a.fail(c, err, back)
	}
	if err := send(id); err != nil {
		return a.fail(c, err, back)
	}
	return c.Redirect(http.StatusSeeOther, back)
}

func (a *App) like(c echo.Context) error {
	return a.engage(c, service.EngagementLike, func(articleID uint) error {
		return a.api.Like(a.ctx(c), a.token(c), articleID)
	})
}

func (a *App) review(c echo.Context) error {
	form := ReviewForm{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	if raw := c.FormValue("rating"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil {
			a.setFlash(c, "error", "rating must be a number")
			return c.Redirect(http.StatusSeeOther, "/articles/"+c.Param("id"))
		}
		form.Rating = &r
	}
	return a.engage(c, service.EngagementReview, func(articleID uint) error {
		form.ArticleID = articleID
		if err := a.api.Review(a.ctx(c), a.token(c), form); err != nil {
			return err
		}
		a.setFlash(c, "success", "Thanks for your review")
		return nil
	})
}

func (a *App) papers(c echo.Context) error {
	day := a.day(c)
	list, err := a.api.PapersOn(a.ctx(c), a.token(c), day)
	if err != nil {
		if IsSessionExpired(err) {
			return a.fail(c, err, "/login")
		}
		return render(c, http.StatusOK, papersPage(a.viewer(c), flash{Kind: "error", Message: err.Error()}, day, nil))
	}
	return render(c, http.StatusOK, papersPage(a.viewer(c), a.popFlash(c), day, list))
}

func (a *App) createPaper(c echo.Context) error {
	date := c.FormValue("date")
	_, err := a.api.CreatePaper(a.ctx(c), a.token(c), PaperForm{
		Date:          date,
		NamePaper:     c.FormValue("namePaper"),
		NamePublisher: c.FormValue("namePublisher"),
	})
	if err != nil {
		return a.fail(c, err, "/papers?date="+date)
	}
	a.setFlash(c, "success", "Paper created")
	return c.Redirect(http.StatusSeeOther, "/papers?date="+date)
}

func (a *App) profile(c echo.Context) error {
	ctx, token := a.ctx(c), a.token(c)
	user, err := a.api.Profile(ctx, token)
	if err != nil {
		return a.fail(c, err, "/articles")
	}
	reviews, err := a.api.UserReviews(ctx, token, user.ID)
	if err != nil {
		return a.fail(c, err, "/articles")
	}
	return render(c, http.StatusOK, profilePage(a.viewer(c), a.popFlash(c), user, reviews))
}

func (a *App) users(c echo.Context) error {
	v := a.viewer(c)
	if v.Role != model.RoleAdmin {
		a.setFlash(c, "error", "only admins can manage users")
		return c.Redirect(http.StatusSeeOther, "/articles")
	}
	list, err := a.api.Users(a.ctx(c), a.token(c))
	if err != nil {
		return a.fail(c, err, "/articles")
	}
	return render(c, http.StatusOK, usersPage(v, a.popFlash(c), list))
}

func (a *App) deleteUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return echo.ErrNotFound
	}
	if err := a.api.DeleteUser(a.ctx(c), a.token(c), id); err != nil {
		return a.fail(c, err, "/users")
	}
	a.setFlash(c, "success", "User deleted")
	return c.Redirect(http.StatusSeeOther, "/users")
}
