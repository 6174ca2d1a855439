package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "printlab/internal/errors"
	"printlab/internal/model"
	"printlab/internal/repository"
)

// AssetService handles catalog media operations.
type AssetService interface {
	Get(ctx context.Context, id uint) (*model.Asset, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Asset, error)
	Create(ctx context.Context, asset *model.Asset) error
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, id uint) error
}

type assetService struct {
	repo repository.AssetRepository
}

// NewAssetService creates a new asset service.
func NewAssetService(repo repository.AssetRepository) AssetService {
	return &assetService{repo: repo}
}

func (s *assetService) Get(ctx context.Context, id uint) (*model.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return asset, nil
}

func (s *assetService) ListByProduct(ctx context.Context, productID uint) ([]model.Asset, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *assetService) Create(ctx context.Context, asset *model.Asset) error {
	if err := s.repo.Create(ctx, asset); err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (s *assetService) Update(ctx context.Context, asset *model.Asset) error {
	if _, err := s.repo.FindByID(ctx, asset.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAssetNotFound
		}
		return fmt.Errorf("find asset: %w", err)
	}
	if err := s.repo.Update(ctx, asset); err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

func (s *assetService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAssetNotFound
		}
		return fmt.Errorf("find asset: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
