package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retroFinder/domain"
	"retroFinder/pkg/logger"
)

var (
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrInvalidItemID   = errors.New("invalid catalog item id")
	ErrDuplicateItemID = errors.New("catalog item id already exists")
)

// CatalogRepository contract interface
type CatalogRepository interface {
	Create(ctx context.Context, item *domain.CatalogItem) error
	FindByID(ctx context.Context, id string) (domain.CatalogItem, error)
	FindAll(ctx context.Context) ([]domain.CatalogItem, error)
	Update(ctx context.Context, item *domain.CatalogItem) error
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	catalogRepo CatalogRepository
}

func NewCatalogService(catalogRepo CatalogRepository) *catalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
	}
}

func (s *catalogService) GetAllItems(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all catalog items")
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all catalog items", "error", err)
		return nil, err
	}

	return items, nil
}

func (s *catalogService) GetItemByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	if strings.TrimSpace(id) == "" {
		logger.Error("invalid catalog item id")
		return nil, ErrInvalidItemID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get catalog item")
		return nil, fmt.Errorf("context error: %w", err)
	}

	item, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find catalog item by id", "id", id, "error", err)
		return nil, err
	}

	return &item, nil
}

func (s *catalogService) CreateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create catalog item")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateItem(item); err != nil {
		logger.Error("Invalid catalog item data", "error", err)
		return nil, err
	}

	if _, err := s.catalogRepo.FindByID(ctx, item.ID); err == nil {
		return nil, ErrDuplicateItemID
	} else if !errors.Is(err, ErrItemNotFound) {
		return nil, err
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		logger.Error("failed to create new catalog item", "error", err)
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}

	logger.Info("catalog item created successfully", "id", item.ID)

	return item, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, item *domain.CatalogItem) (*domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating catalog item")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateItem(item); err != nil {
		logger.Error("Invalid catalog item data", "error", err)
		return nil, err
	}

	// Verify item exists
	if _, err := s.catalogRepo.FindByID(ctx, item.ID); err != nil {
		logger.Error("catalog item not found", "id", item.ID, "error", err)
		return nil, err
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		logger.Error("failed to update catalog item", "error", err)
		return nil, fmt.Errorf("failed to update catalog item: %w", err)
	}

	updated, err := s.catalogRepo.FindByID(ctx, item.ID)
	if err != nil {
		logger.Error("failed to fetch updated catalog item", "error", err)
		return nil, fmt.Errorf("failed to fetch updated catalog item: %w", err)
	}

	logger.Info("catalog item updated", "id", item.ID)

	return &updated, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		logger.Error("Invalid catalog item id when deleting")
		return ErrInvalidItemID
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting catalog item")
		return fmt.Errorf("context error: %w", err)
	}

	if _, err := s.catalogRepo.FindByID(ctx, id); err != nil {
		logger.Error("catalog item not found", "id", id, "error", err)
		return err
	}

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete catalog item", "error", err)
		return fmt.Errorf("failed to delete catalog item: %w", err)
	}

	logger.Info("catalog item deleted", "id", id)

	return nil
}

// Validation errors are plain errors so handlers can answer 400 for them.
var (
	errIDRequired       = errors.New("catalog item id is required")
	errNameRequired     = errors.New("catalog item name is required")
	errPlatformRequired = errors.New("platform is required")
	errPriceInvalid     = errors.New("price must be greater than 0")
	errSalePriceInvalid = errors.New("sale price cannot be negative")
)

func IsValidationError(err error) bool {
	return errors.Is(err, errIDRequired) ||
		errors.Is(err, errNameRequired) ||
		errors.Is(err, errPlatformRequired) ||
		errors.Is(err, errPriceInvalid) ||
		errors.Is(err, errSalePriceInvalid)
}

func validateItem(item *domain.CatalogItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return errIDRequired
	}
	if strings.TrimSpace(item.Name) == "" {
		return errNameRequired
	}
	if strings.TrimSpace(item.Platform) == "" {
		return errPlatformRequired
	}
	if item.Price <= 0 {
		return errPriceInvalid
	}
	if item.SalePrice < 0 {
		return errSalePriceInvalid
	}
	return nil
}
