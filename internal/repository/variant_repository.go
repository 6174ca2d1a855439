package repository

import (
	"context"

	"gorm.io/gorm"

	"printlab/internal/model"
)

// VariantRepository defines variant persistence operations.
type VariantRepository interface {
	Create(ctx context.Context, variant *model.Variant) error
	Update(ctx context.Context, variant *model.Variant) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Variant, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Variant, error)
}

type variantRepository struct {
	db *gorm.DB
}

// NewVariantRepository creates a new variant repository.
func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

// Create creates a new variant.
func (r *variantRepository) Create(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// Update updates an existing variant.
func (r *variantRepository) Update(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// Delete soft-deletes a variant.
func (r *variantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Variant{}, id).Error
}

// FindByID finds a variant by ID.
func (r *variantRepository) FindByID(ctx context.Context, id uint) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// ListByProduct lists all variants of a product.
func (r *variantRepository) ListByProduct(ctx context.Context, productID uint) ([]model.Variant, error) {
	var variants []model.Variant
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
