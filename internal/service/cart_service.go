package service

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "printlab/internal/errors"
	"printlab/internal/events"
	"printlab/internal/mailer"
	"printlab/internal/model"
	"printlab/internal/repository"
)

// DesignPayload carries the optional per-side print design of a cart line.
type DesignPayload struct {
	FrontDesignData *string
	BackDesignData  *string
	FrontPreviewURL *string
	BackPreviewURL  *string
}

// ShippingDetails carries the contact and delivery fields captured at checkout.
type ShippingDetails struct {
	CustomerName  string
	CustomerPhone string
	Region        string
	Address       string
	Comment       string
}

// CartService handles the user's cart and its conversion into an order.
type CartService interface {
	GetCart(ctx context.Context, userID uint) (*model.Cart, error)
	AddItem(ctx context.Context, userID, variantID uint, quantity int, design *DesignPayload) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uint) (*model.Cart, error)
	ClearCart(ctx context.Context, userID uint) error
	Checkout(ctx context.Context, userID uint, details ShippingDetails) (*model.Order, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
	userRepo    repository.UserRepository
	mailer      mailer.Mailer
	publisher   events.Publisher
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	variantRepo repository.VariantRepository,
	userRepo repository.UserRepository,
	mailer mailer.Mailer,
	publisher events.Publisher,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		publisher:   publisher,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *cartService) GetCart(ctx context.Context, userID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a variant to the cart with merge semantics: adding a variant
// that is already present increments its quantity instead of creating a
// second row.
func (s *cartService) AddItem(ctx context.Context, userID, variantID uint, quantity int, design *DesignPayload) (*model.Cart, error) {
	if _, err := s.variantRepo.FindByID(ctx, variantID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVariantNotFound
		}
		return nil, fmt.Errorf("find variant: %w", err)
	}

	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if quantity < 1 {
		quantity = 1
	}

	existing, err := s.cartRepo.FindItem(ctx, cart.ID, variantID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(ctx, existing); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	case err == gorm.ErrRecordNotFound:
		item := &model.CartItem{
			CartID:    cart.ID,
			VariantID: variantID,
			Quantity:  quantity,
		}
		if design != nil {
			item.FrontDesignData = design.FrontDesignData
			item.BackDesignData = design.BackDesignData
			item.FrontPreviewURL = design.FrontPreviewURL
			item.BackPreviewURL = design.BackPreviewURL
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets an item's quantity exactly. A quantity of zero or less
// deletes the item. Items belonging to other users are reported as missing.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
	} else {
		item.Quantity = quantity
		if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	}

	return s.GetCart(ctx, cart.UserID)
}

// RemoveItem removes an item from the user's cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) (*model.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	return s.GetCart(ctx, cart.UserID)
}

// ClearCart removes every item from the user's cart.
func (s *cartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	return s.cartRepo.DeleteAllItems(ctx, cart.ID)
}

// Checkout converts the cart into an immutable order. Unit prices are read
// fresh from each variant at conversion time, never from the cart rows.
// Order creation and cart clearing commit in one transaction; confirmation
// mail and event publishing happen after commit and never fail the order.
func (s *cartService) Checkout(ctx context.Context, userID uint, details ShippingDetails) (*model.Order, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	total := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		variant, err := s.variantRepo.FindByID(ctx, item.VariantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrVariantNotFound
			}
			return nil, fmt.Errorf("resolve variant %d: %w", item.VariantID, err)
		}

		line := variant.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)

		orderItems = append(orderItems, model.OrderItem{
			VariantID:       item.VariantID,
			Quantity:        item.Quantity,
			Price:           variant.Price,
			FrontDesignData: item.FrontDesignData,
			BackDesignData:  item.BackDesignData,
			FrontPreviewURL: item.FrontPreviewURL,
			BackPreviewURL:  item.BackPreviewURL,
		})
	}

	order := &model.Order{
		UserID:        userID,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		TotalPrice:    total,
		CustomerName:  details.CustomerName,
		CustomerPhone: details.CustomerPhone,
		Region:        details.Region,
		Address:       details.Address,
		Comment:       details.Comment,
		Items:         orderItems,
	}

	err = s.cartRepo.WithTransaction(ctx, func(ctx context.Context, carts repository.CartRepository, orders repository.OrderRepository) error {
		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := carts.DeleteAllItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmed(ctx, order)

	return order, nil
}

// notifyConfirmed sends the confirmation mail and publishes the confirmed
// event. The order is already committed, so failures are only logged.
func (s *cartService) notifyConfirmed(ctx context.Context, order *model.Order) {
	if user, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
		if err := s.mailer.SendOrderConfirmation(user.Email, order.ID, order.TotalPrice); err != nil {
			log.Printf("checkout: confirmation mail for order %d: %v", order.ID, err)
		}
	} else {
		log.Printf("checkout: load user %d for confirmation mail: %v", order.UserID, err)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderConfirmed(ctx, events.OrderConfirmedEvent{
			OrderID:       order.ID,
			UserID:        order.UserID,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			TotalPrice:    order.TotalPrice.StringFixed(2),
			ItemCount:     len(order.Items),
			CreatedAt:     order.CreatedAt,
		})
	}
}

// ownedItem loads the user's cart and an item, verifying ownership.
func (s *cartService) ownedItem(ctx context.Context, userID, itemID uint) (*model.Cart, *model.CartItem, error) {
	cart, err := s.cartRepo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cart: %w", err)
	}

	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrCartItemNotFound
		}
		return nil, nil, fmt.Errorf("find cart item: %w", err)
	}
	if item.CartID != cart.ID {
		return nil, nil, apperrors.ErrCartItemNotFound
	}
	return cart, item, nil
}
