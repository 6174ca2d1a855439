package repository

import (
	"context"

	"gorm.io/gorm"

	"printlab/internal/model"
)

// AssetRepository defines asset persistence operations.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Asset, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Asset, error)
}

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository.
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *assetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Asset{}, id).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uint) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListByProduct(ctx context.Context, productID uint) ([]model.Asset, error) {
	var assets []model.Asset
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
