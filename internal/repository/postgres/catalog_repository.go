package postgres

import (
	"context"
	"errors"
	"fmt"

	"retroFinder/business/catalog"
	"retroFinder/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

var _ catalog.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		DB: db,
	}
}

func (r *CatalogRepository) Create(ctx context.Context, item *domain.CatalogItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create catalog item: %w", err)
	}

	return nil
}

func (r *CatalogRepository) FindByID(ctx context.Context, id string) (domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.CatalogItem

	err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CatalogItem{}, catalog.ErrItemNotFound
		}
		return domain.CatalogItem{}, fmt.Errorf("failed to find catalog item: %w", err)
	}

	return item, nil
}

// FindAll returns the whole catalog ordered by id.
func (r *CatalogRepository) FindAll(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.CatalogItem
	err := r.DB.WithContext(ctx).Order("id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog items: %w", err)
	}

	return items, nil
}

func (r *CatalogRepository) Update(ctx context.Context, item *domain.CatalogItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":         item.Name,
		"genre":        item.Genre,
		"platform":     item.Platform,
		"price":        item.Price,
		"sale_price":   item.SalePrice,
		"completeness": item.Completeness,
		"is_featured":  item.IsFeatured,
		"is_hardware":  item.IsHardware,
		"image":        item.Image,
	}

	result := r.DB.WithContext(ctx).Model(&domain.CatalogItem{}).Where("id = ?", item.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update catalog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrItemNotFound
	}

	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.CatalogItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete catalog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrItemNotFound
	}

	return nil
}
