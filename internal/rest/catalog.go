package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"retroFinder/business/catalog"
	"retroFinder/domain"
	"retroFinder/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetAllItems(ctx context.Context) ([]domain.CatalogItem, error)
	GetItemByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	CreateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	UpdateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error)
	DeleteItem(ctx context.Context, id string) error
}

type CatalogHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CatalogItemRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Genre        string  `json:"genre"`
	Platform     string  `json:"platform" validate:"required"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	SalePrice    float64 `json:"sale_price" validate:"gte=0"`
	Completeness string  `json:"completeness"`
	IsFeatured   bool    `json:"is_featured"`
	IsHardware   bool    `json:"is_hardware"`
	Image        string  `json:"image"`
}

func (r CatalogItemRequest) toItem(id string) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:           id,
		Name:         r.Name,
		Genre:        r.Genre,
		Platform:     r.Platform,
		Price:        r.Price,
		SalePrice:    r.SalePrice,
		Completeness: r.Completeness,
		IsFeatured:   r.IsFeatured,
		IsHardware:   r.IsHardware,
		Image:        r.Image,
	}
}

func (h *CatalogHandler) GetAllItems(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.catalogService.GetAllItems(ctx)
	if err != nil {
		logger.Error("Failed to find all catalog items", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *CatalogHandler) GetItemByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.GetItemByID(ctx, c.Param("id"))
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CatalogHandler) CreateItem(c echo.Context) error {
	var req CatalogItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate catalog item request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.CreateItem(ctx, req.toItem(req.ID))
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	var req CatalogItemRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate catalog item request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item, err := h.catalogService.UpdateItem(ctx, req.toItem(c.Param("id")))
	if err != nil {
		return catalogError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteItem(ctx, c.Param("id")); err != nil {
		return catalogError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("catalog item successfully deleted"))
}

func catalogError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrItemNotFound), errors.Is(err, catalog.ErrInvalidItemID):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, catalog.ErrDuplicateItemID):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case catalog.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	logger.Error("catalog request failed", "error", err)
	return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
}
