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

const productCacheTTL = 5 * time.Minute

// ProductService handles catalog product operations.
type ProductService interface {
	Get(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, params repository.ListParams) ([]model.Product, int64, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{
		repo:  repo,
		cache: cache,
	}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// Get retrieves a product by ID with caching.
func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, productCacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, productCacheKey(id), payload, productCacheTTL)
	}

	return product, nil
}

// List returns a page of products.
func (s *productService) List(ctx context.Context, params repository.ListParams) ([]model.Product, int64, error) {
	return s.repo.List(ctx, params)
}

// Create creates a product.
func (s *productService) Create(ctx context.Context, product *model.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update updates a product and invalidates its cache entry.
func (s *productService) Update(ctx context.Context, product *model.Product) error {
	if _, err := s.repo.FindByID(ctx, product.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	_ = s.cache.Delete(ctx, productCacheKey(product.ID))
	return nil
}

// Delete removes a product and invalidates its cache entry.
func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	_ = s.cache.Delete(ctx, productCacheKey(id))
	return nil
}
