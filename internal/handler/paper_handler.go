package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/service"
)

// PaperHandler handles edition endpoints.
type PaperHandler struct {
	svc service.PaperService
}

// NewPaperHandler creates a new paper handler.
func NewPaperHandler(svc service.PaperService) *PaperHandler {
	return &PaperHandler{svc: svc}
}

// PaperRequest is the edition payload. On update every field is optional.
type PaperRequest struct {
	Date          *string `json:"date"`
	NamePaper     *string `json:"namePaper"`
	NamePublisher *string `json:"namePublisher"`
}

func (r PaperRequest) date() (*time.Time, error) {
	if r.Date == nil {
		return nil, nil
	}
	t, ok := parseDate(*r.Date)
	if !ok {
		return nil, errors.Validation("date", "valid date is required")
	}
	return &t, nil
}

// ListPapers godoc
// @Summary List papers, optionally those of one day
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} model.Paper
// @Failure 400 {object} errors.ErrorResponse
// @Router /papers [get]
func (h *PaperHandler) ListPapers(c echo.Context) error {
	var (
		papers []model.Paper
		err    error
	)
	if raw := c.QueryParam("date"); raw != "" {
		day, ok := parseDate(raw)
		if !ok {
			return respondError(c, errors.Validation("date", "invalid date"))
		}
		papers, err = h.svc.ListByDate(c.Request().Context(), day)
	} else {
		papers, err = h.svc.List(c.Request().Context())
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, papers)
}

// GetPaper godoc
// @Summary Get paper by id
// @Tags papers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 200 {object} model.Paper
// @Failure 404 {object} errors.ErrorResponse
// @Router /papers/{id} [get]
func (h *PaperHandler) GetPaper(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	paper, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paper)
}

// CreatePaper godoc
// @Summary Create an edition
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaperRequest true "Paper"
// @Success 201 {object} model.Paper
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /papers [post]
func (h *PaperHandler) CreatePaper(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req PaperRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	date, err := req.date()
	if err != nil {
		return respondError(c, err)
	}
	in := service.PaperInput{
		NamePaper:     deref(req.NamePaper),
		NamePublisher: deref(req.NamePublisher),
	}
	if date != nil {
		in.Date = *date
	}

	paper, err := h.svc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, paper)
}

// UpdatePaper godoc
// @Summary Edit an edition
// @Tags papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Param request body PaperRequest true "Fields to change"
// @Success 200 {object} model.Paper
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /papers/{id} [put]
func (h *PaperHandler) UpdatePaper(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req PaperRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}
	date, err := req.date()
	if err != nil {
		return respondError(c, err)
	}

	paper, err := h.svc.Update(c.Request().Context(), actor, id, service.PaperUpdate{
		Date:          date,
		NamePaper:     req.NamePaper,
		NamePublisher: req.NamePublisher,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paper)
}

// DeletePaper godoc
// @Summary Delete an empty edition
// @Tags papers
// @Security BearerAuth
// @Param id path int true "Paper ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /papers/{id} [delete]
func (h *PaperHandler) DeletePaper(c echo.Context) error {
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
