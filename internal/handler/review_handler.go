package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"newsroom/internal/errors"
	"newsroom/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// CreateReviewRequest is the payload for reviewing an article.
type CreateReviewRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Rating    *int   `json:"rating"`
	ArticleID uint   `json:"articleId" validate:"required"`
}

// UpdateReviewRequest changes parts of a review.
type UpdateReviewRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

// ListReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param articleId query int false "Only reviews of this article"
// @Success 200 {array} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := c.QueryParam("articleId"); raw != "" {
		articleID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || articleID == 0 {
			return respondError(c, errors.Validation("articleId", "invalid articleId"))
		}
		reviews, err := h.svc.ListByArticle(ctx, uint(articleID))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, reviews)
	}
	reviews, err := h.svc.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetReview godoc
// @Summary Get review by id
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// CreateReview godoc
// @Summary Review an article
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	review, err := h.svc.Create(c.Request().Context(), actor, service.ReviewInput{
		Title:     req.Title,
		Content:   req.Content,
		Rating:    req.Rating,
		ArticleID: req.ArticleID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary Edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to change"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	review, err := h.svc.Update(c.Request().Context(), actor, id, service.ReviewUpdate{
		Title:   req.Title,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
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
