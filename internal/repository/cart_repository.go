package repository

import (
	"context"

	"gorm.io/gorm"

	"printlab/internal/model"
)

// CartRepository defines cart persistence operations. Checkout spans the cart
// and order tables, so WithTransaction hands the closure tx-scoped instances
// of both repositories.
type CartRepository interface {
	FindOrCreateByUser(ctx context.Context, userID uint) (*model.Cart, error)
	FindItem(ctx context.Context, cartID, variantID uint) (*model.CartItem, error)
	FindItemByID(ctx context.Context, itemID uint) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateItem(ctx context.Context, item *model.CartItem) error
	DeleteItem(ctx context.Context, itemID uint) error
	DeleteAllItems(ctx context.Context, cartID uint) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, carts CartRepository, orders OrderRepository) error) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindOrCreateByUser returns the user's cart with items and variants loaded,
// creating an empty cart on first access.
func (r *cartRepository) FindOrCreateByUser(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where(model.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Variant").
		Where("cart_id = ?", cart.ID).
		Order("id asc").
		Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindItem finds the single item for a (cart, variant) pair.
func (r *cartRepository) FindItem(ctx context.Context, cartID, variantID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindItemByID finds a cart item by its ID.
func (r *cartRepository) FindItemByID(ctx context.Context, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a new cart item.
func (r *cartRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem updates an existing cart item.
func (r *cartRepository) UpdateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes a single cart item.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.CartItem{}, itemID).Error
}

// DeleteAllItems removes every item of a cart.
func (r *cartRepository) DeleteAllItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

// WithTransaction executes fn within a database transaction. Both repositories
// passed to fn share the transaction; an error from fn rolls everything back.
func (r *cartRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, carts CartRepository, orders OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &cartRepository{db: tx}, &orderRepository{db: tx})
	})
}
