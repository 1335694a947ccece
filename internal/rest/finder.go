package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"retroFinder/business/finder"
	"retroFinder/domain"
	"retroFinder/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FinderHandler struct {
		validate      *validator.Validate
		finderService FinderService
		timeout       time.Duration
	}

	FinderService interface {
		StartSession(ctx context.Context) (domain.SessionView, error)
		GetSession(ctx context.Context, sessionID string) (domain.SessionView, error)
		Choose(ctx context.Context, sessionID, pairID, side string) (domain.NextStepResult, error)
		Restart(ctx context.Context, sessionID string) (domain.SessionView, error)
		AbandonSession(ctx context.Context, sessionID string) error
		DebugRanking(ctx context.Context, sessionID string) ([]domain.RankedItemDebug, error)
	}

	ChooseRequest struct {
		PairID string `json:"pair_id" validate:"required"`
		Side   string `json:"side" validate:"required,oneof=left right"`
	}
)

func NewFinderHandler(svc FinderService) *FinderHandler {
	return &FinderHandler{
		validate:      validator.New(),
		finderService: svc,
		timeout:       10 * time.Second,
	}
}

// POST /api/v1/finder/sessions
func (h *FinderHandler) StartSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.finderService.StartSession(ctx)
	if err != nil {
		return finderError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(view))
}

// GET /api/v1/finder/sessions/:id
func (h *FinderHandler) GetSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.finderService.GetSession(ctx, c.Param("id"))
	if err != nil {
		return finderError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// POST /api/v1/finder/sessions/:id/choices
func (h *FinderHandler) Choose(c echo.Context) error {
	var req ChooseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.finderService.Choose(ctx, c.Param("id"), req.PairID, req.Side)
	if err != nil {
		return finderError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/finder/sessions/:id/restart
func (h *FinderHandler) Restart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.finderService.Restart(ctx, c.Param("id"))
	if err != nil {
		return finderError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// DELETE /api/v1/finder/sessions/:id
func (h *FinderHandler) Abandon(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.finderService.AbandonSession(ctx, c.Param("id")); err != nil {
		return finderError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GET /api/v1/admin/finder/sessions/:id/ranking
func (h *FinderHandler) DebugRanking(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, err := h.finderService.DebugRanking(ctx, c.Param("id"))
	if err != nil {
		return finderError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rows))
}

func finderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, finder.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, finder.ErrInvalidDecision):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, finder.ErrSessionCompleted):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case errors.Is(err, finder.ErrInsufficientCatalog):
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
	}

	logger.Error("finder request failed",
		"trace_id", finder.TraceIDFromContext(c.Request().Context()),
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
}
