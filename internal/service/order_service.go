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

// OrderItemInput is one line of a direct order submission.
type OrderItemInput struct {
	VariantID uint
	Quantity  int
	Design    *DesignPayload
}

// OrderInput is a direct order submission bypassing the cart.
type OrderInput struct {
	Items    []OrderItemInput
	Shipping ShippingDetails
}

// OrderService handles order reads and admin mutations plus direct submission.
type OrderService interface {
	Create(ctx context.Context, userID uint, input OrderInput) (*model.Order, error)
	Get(ctx context.Context, id, requesterID uint, requesterRole string) (*model.Order, error)
	ListMine(ctx context.Context, userID uint, params repository.ListParams) ([]model.Order, int64, error)
	List(ctx context.Context, params repository.ListParams, status string) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id uint, status model.PaymentStatus) error
	Delete(ctx context.Context, id uint) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
	userRepo    repository.UserRepository
	mailer      mailer.Mailer
	publisher   events.Publisher
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	userRepo repository.UserRepository,
	mailer mailer.Mailer,
	publisher events.Publisher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		variantRepo: variantRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		publisher:   publisher,
	}
}

// Create builds an order directly from submitted lines. Prices are resolved
// from the variants at submission time, exactly like cart checkout.
func (s *orderService) Create(ctx context.Context, userID uint, input OrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		variant, err := s.variantRepo.FindByID(ctx, in.VariantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrVariantNotFound
			}
			return nil, fmt.Errorf("resolve variant %d: %w", in.VariantID, err)
		}

		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		total = total.Add(variant.Price.Mul(decimal.NewFromInt(int64(qty))))

		item := model.OrderItem{
			VariantID: in.VariantID,
			Quantity:  qty,
			Price:     variant.Price,
		}
		if in.Design != nil {
			item.FrontDesignData = in.Design.FrontDesignData
			item.BackDesignData = in.Design.BackDesignData
			item.FrontPreviewURL = in.Design.FrontPreviewURL
			item.BackPreviewURL = in.Design.BackPreviewURL
		}
		items = append(items, item)
	}

	order := &model.Order{
		UserID:        userID,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		TotalPrice:    total,
		CustomerName:  input.Shipping.CustomerName,
		CustomerPhone: input.Shipping.CustomerPhone,
		Region:        input.Shipping.Region,
		Address:       input.Shipping.Address,
		Comment:       input.Shipping.Comment,
		Items:         items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Best-effort receipt and event; the committed order wins over either.
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if err := s.mailer.SendOrderConfirmation(user.Email, order.ID, order.TotalPrice); err != nil {
			log.Printf("order: confirmation mail for order %d: %v", order.ID, err)
		}
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

	return order, nil
}

// Get returns an order visible to its owner or to staff.
func (s *orderService) Get(ctx context.Context, id, requesterID uint, requesterRole string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	staff := requesterRole == model.RoleAdmin || requesterRole == model.RoleSuperAdmin
	if order.UserID != requesterID && !staff {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

// ListMine returns the requester's own orders.
func (s *orderService) ListMine(ctx context.Context, userID uint, params repository.ListParams) ([]model.Order, int64, error) {
	return s.orderRepo.ListByUser(ctx, userID, params)
}

// List returns all orders for staff, optionally filtered by status.
func (s *orderService) List(ctx context.Context, params repository.ListParams, status string) ([]model.Order, int64, error) {
	return s.orderRepo.List(ctx, params, status)
}

// UpdateStatus sets the fulfilment status.
func (s *orderService) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

// UpdatePaymentStatus sets the payment status.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uint, status model.PaymentStatus) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	return s.orderRepo.UpdatePaymentStatus(ctx, id, status)
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id uint) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	return s.orderRepo.Delete(ctx, id)
}
