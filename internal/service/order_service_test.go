package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "printlab/internal/errors"
	"printlab/internal/events"
	"printlab/internal/model"
)

type orderMocks struct {
	orders    *MockOrderRepository
	variants  *MockVariantRepository
	users     *MockUserRepository
	mailer    *MockMailer
	publisher *MockPublisher
}

func newOrderServiceForTest() (OrderService, orderMocks) {
	m := orderMocks{
		orders:    new(MockOrderRepository),
		variants:  new(MockVariantRepository),
		users:     new(MockUserRepository),
		mailer:    new(MockMailer),
		publisher: new(MockPublisher),
	}
	return NewOrderService(m.orders, m.variants, m.users, m.mailer, m.publisher), m
}

func TestOrderService_Create(t *testing.T) {
	t.Run("lines price at submission time", func(t *testing.T) {
		service, m := newOrderServiceForTest()

		m.variants.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Variant{ID: 10, Price: price("120000")}, nil)
		m.orders.On("Create", mock.Anything, mock.MatchedBy(func(order *model.Order) bool {
			return order.TotalPrice.Equal(price("360000")) &&
				len(order.Items) == 1 && order.Items[0].Quantity == 3
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Order).ID = 7
		}).Return(nil)
		m.users.On("FindByID", mock.Anything, uint(4)).
			Return(&model.User{ID: 4, Email: "user@example.com"}, nil)
		m.mailer.On("SendOrderConfirmation", "user@example.com", uint(7), mock.Anything).Return(nil)
		m.publisher.On("PublishOrderConfirmed", mock.Anything, mock.MatchedBy(func(e events.OrderConfirmedEvent) bool {
			return e.OrderID == 7 && e.UserID == 4 && e.ItemCount == 1
		})).Return(nil)

		order, err := service.Create(context.Background(), 4, OrderInput{
			Items:    []OrderItemInput{{VariantID: 10, Quantity: 3}},
			Shipping: ShippingDetails{CustomerName: "Aziz", CustomerPhone: "+998901234567"},
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), order.ID)
		m.orders.AssertExpectations(t)
		m.publisher.AssertExpectations(t)
	})

	t.Run("publish failure never fails the order", func(t *testing.T) {
		service, m := newOrderServiceForTest()

		m.variants.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Variant{ID: 10, Price: price("120000")}, nil)
		m.orders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		m.users.On("FindByID", mock.Anything, uint(4)).
			Return(&model.User{ID: 4, Email: "user@example.com"}, nil)
		m.mailer.On("SendOrderConfirmation", "user@example.com", mock.Anything, mock.Anything).Return(nil)
		m.publisher.On("PublishOrderConfirmed", mock.Anything, mock.Anything).Return(assert.AnError)

		order, err := service.Create(context.Background(), 4, OrderInput{
			Items:    []OrderItemInput{{VariantID: 10, Quantity: 1}},
			Shipping: ShippingDetails{CustomerName: "Aziz", CustomerPhone: "+998901234567"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, order)
	})

	t.Run("no lines no order", func(t *testing.T) {
		service, m := newOrderServiceForTest()

		order, err := service.Create(context.Background(), 4, OrderInput{})
		assert.ErrorIs(t, err, apperrors.ErrEmptyCart)
		assert.Nil(t, order)
		m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.publisher.AssertNotCalled(t, "PublishOrderConfirmed", mock.Anything, mock.Anything)
	})

	t.Run("unknown variant is rejected", func(t *testing.T) {
		service, m := newOrderServiceForTest()
		m.variants.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Create(context.Background(), 4, OrderInput{
			Items: []OrderItemInput{{VariantID: 999, Quantity: 1}},
		})
		assert.ErrorIs(t, err, apperrors.ErrVariantNotFound)
	})
}

func TestOrderService_Get(t *testing.T) {
	stored := &model.Order{ID: 7, UserID: 4}

	tests := []struct {
		name          string
		requesterID   uint
		requesterRole string
		setupMock     func(*MockOrderRepository)
		expectedError error
	}{
		{
			name:        "owner reads own order",
			requesterID: 4, requesterRole: model.RoleUser,
			setupMock: func(m *MockOrderRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
		},
		{
			name:        "admin reads any order",
			requesterID: 99, requesterRole: model.RoleAdmin,
			setupMock: func(m *MockOrderRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
		},
		{
			name:        "stranger is refused",
			requesterID: 5, requesterRole: model.RoleUser,
			setupMock: func(m *MockOrderRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(stored, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:        "missing order",
			requesterID: 4, requesterRole: model.RoleUser,
			setupMock: func(m *MockOrderRepository) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newOrderServiceForTest()
			orders := m.orders
			tt.setupMock(orders)

			order, err := service.Get(context.Background(), 7, tt.requesterID, tt.requesterRole)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, order)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(7), order.ID)
			}
			orders.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("existing order moves along", func(t *testing.T) {
		service, m := newOrderServiceForTest()
		orders := m.orders
		orders.On("FindByID", mock.Anything, uint(7)).Return(&model.Order{ID: 7}, nil)
		orders.On("UpdateStatus", mock.Anything, uint(7), model.OrderStatusShipped).Return(nil)

		assert.NoError(t, service.UpdateStatus(context.Background(), 7, model.OrderStatusShipped))
		orders.AssertExpectations(t)
	})

	t.Run("missing order is reported", func(t *testing.T) {
		service, m := newOrderServiceForTest()
		orders := m.orders
		orders.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		err := service.UpdateStatus(context.Background(), 8, model.OrderStatusShipped)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
