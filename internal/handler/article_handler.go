package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/internal/errors"
	"newsroom/internal/service"
)

// ArticleHandler handles article endpoints.
type ArticleHandler struct {
	svc service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(svc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// ArticleRequest is the article payload. On update every field is optional.
type ArticleRequest struct {
	Title       *string `json:"title"`
	Summary     *string `json:"summary"`
	Picture     *string `json:"picture"`
	ArticleType *string `json:"articleType"`
	PublishedAt *string `json:"publishedAt"`
	PaperID     *uint   `json:"paperId"`
}

func (r ArticleRequest) publishedAt() (*time.Time, error) {
	if r.PublishedAt == nil {
		return nil, nil
	}
	t, ok := parseDate(*r.PublishedAt)
	if !ok {
		return nil, errors.Validation("publishedAt", "published date is invalid")
	}
	return &t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListArticles godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Article
// @Failure 401 {object} errors.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	articles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// GetArticles godoc
// @Summary Articles published on a day, or a single article by numeric id
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param date path string true "YYYY-MM-DD, RFC 3339 timestamp or article id"
// @Success 200 {array} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{date} [get]
func (h *ArticleHandler) GetArticles(c echo.Context) error {
	param := c.Param("date")
	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		article, err := h.svc.Get(c.Request().Context(), uint(id))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, article)
	}

	day, ok := parseDate(param)
	if !ok {
		return respondError(c, errors.Validation("date", "invalid date"))
	}
	articles, err := h.svc.ListByDate(c.Request().Context(), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, articles)
}

// CreateArticle godoc
// @Summary Publish an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ArticleRequest true "Article"
// @Success 201 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles [post]
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req ArticleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	publishedAt, err := req.publishedAt()
	if err != nil {
		return respondError(c, err)
	}

	article, err := h.svc.Create(c.Request().Context(), actor, service.ArticleInput{
		Title:       deref(req.Title),
		Summary:     deref(req.Summary),
		Picture:     deref(req.Picture),
		ArticleType: deref(req.ArticleType),
		PublishedAt: publishedAt,
		PaperID:     req.PaperID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, article)
}

// UpdateArticle godoc
// @Summary Edit an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body ArticleRequest true "Fields to change"
// @Success 200 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [put]
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req ArticleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	publishedAt, err := req.publishedAt()
	if err != nil {
		return respondError(c, err)
	}

	article, err := h.svc.Update(c.Request().Context(), actor, id, service.ArticleUpdate{
		Title:       req.Title,
		Summary:     req.Summary,
		Picture:     req.Picture,
		ArticleType: req.ArticleType,
		PublishedAt: publishedAt,
		PaperID:     req.PaperID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

// DeleteArticle godoc
// @Summary Delete an article with its reviews and likes
// @Tags articles
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [delete]
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
