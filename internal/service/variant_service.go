package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"printlab/internal/cache"
	apperrors "printlab/internal/errors"
	"printlab/internal/model"
	"printlab/internal/repository"
)

const variantCacheTTL = 5 * time.Minute

// VariantService handles variant operations.
type VariantService interface {
	Get(ctx context.Context, id uint) (*model.Variant, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Variant, error)
	Create(ctx context.Context, variant *model.Variant) error
	Update(ctx context.Context, variant *model.Variant) error
	Delete(ctx context.Context, id uint) error
}

type variantService struct {
	repo        repository.VariantRepository
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewVariantService creates a new variant service.
func NewVariantService(repo repository.VariantRepository, productRepo repository.ProductRepository, cache *cache.Client) VariantService {
	return &variantService{
		repo:        repo,
		productRepo: productRepo,
		cache:       cache,
	}
}

func variantCacheKey(id uint) string {
	return fmt.Sprintf("variant:%d", id)
}

// Get retrieves a variant by ID with caching.
func (s *variantService) Get(ctx context.Context, id uint) (*model.Variant, error) {
	if data, _ := s.cache.Get(ctx, variantCacheKey(id)); data != nil {
		var cached model.Variant
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	variant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVariantNotFound
		}
		return nil, fmt.Errorf("find variant: %w", err)
	}

	if payload, err := json.Marshal(variant); err == nil {
		_ = s.cache.Set(ctx, variantCacheKey(id), payload, variantCacheTTL)
	}

	return variant, nil
}

// ListByProduct lists a product's variants.
func (s *variantService) ListByProduct(ctx context.Context, productID uint) ([]model.Variant, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return s.repo.ListByProduct(ctx, productID)
}

// Create creates a variant under an existing product.
func (s *variantService) Create(ctx context.Context, variant *model.Variant) error {
	if _, err := s.productRepo.FindByID(ctx, variant.ProductID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.repo.Create(ctx, variant); err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	_ = s.cache.Delete(ctx, productCacheKey(variant.ProductID))
	return nil
}

// Update updates a variant and invalidates caches that may carry its price.
func (s *variantService) Update(ctx context.Context, variant *model.Variant) error {
	existing, err := s.repo.FindByID(ctx, variant.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrVariantNotFound
		}
		return fmt.Errorf("find variant: %w", err)
	}
	if err := s.repo.Update(ctx, variant); err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	_ = s.cache.Delete(ctx, variantCacheKey(variant.ID), productCacheKey(existing.ProductID))
	return nil
}

// Delete removes a variant and invalidates caches.
func (s *variantService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrVariantNotFound
		}
		return fmt.Errorf("find variant: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	_ = s.cache.Delete(ctx, variantCacheKey(id), productCacheKey(existing.ProductID))
	return nil
}
