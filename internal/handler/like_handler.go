package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsroom/internal/service"
)

// LikeHandler handles article likes.
type LikeHandler struct {
	svc service.LikeService
}

// NewLikeHandler creates a new like handler.
func NewLikeHandler(svc service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// LikeRequest names the article to like.
type LikeRequest struct {
	ArticleID uint `json:"articleId" validate:"required"`
}

// Like godoc
// @Summary Like an article
// @Tags articlelikes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LikeRequest true "Article to like"
// @Success 201 {object} model.ArticleLike
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /articlelikes [post]
func (h *LikeHandler) Like(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req LikeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	like, err := h.svc.Like(c.Request().Context(), actor, req.ArticleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, like)
}

// Unlike godoc
// @Summary Withdraw a like
// @Tags articlelikes
// @Security BearerAuth
// @Param articleId path int true "Article ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /articlelikes/{articleId} [delete]
func (h *LikeHandler) Unlike(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	articleID, err := parseID(c, "articleId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.svc.Unlike(c.Request().Context(), actor, articleID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLikes godoc
// @Summary Likes of an article
// @Tags articlelikes
// @Produce json
// @Security BearerAuth
// @Param articleId path int true "Article ID"
// @Success 200 {array} model.ArticleLike
// @Failure 404 {object} errors.ErrorResponse
// @Router /articlelikes/{articleId} [get]
func (h *LikeHandler) ListLikes(c echo.Context) error {
	articleID, err := parseID(c, "articleId")
	if err != nil {
		return respondError(c, err)
	}
	likes, err := h.svc.ListByArticle(c.Request().Context(), articleID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, likes)
}
