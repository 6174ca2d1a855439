package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"printlab/internal/errors"
	"printlab/internal/model"
	"printlab/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one line of a direct order submission.
type OrderItemRequest struct {
	VariantID       uint    `json:"variant_id" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,min=1"`
	FrontDesignData *string `json:"front_design_data,omitempty"`
	BackDesignData  *string `json:"back_design_data,omitempty"`
	FrontPreviewURL *string `json:"front_preview_url,omitempty"`
	BackPreviewURL  *string `json:"back_preview_url,omitempty"`
}

// CreateOrderRequest submits an order directly, bypassing the cart.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerName  string             `json:"customer_name" validate:"required"`
	CustomerPhone string             `json:"customer_phone" validate:"required,min=7,max=20"`
	Region        string             `json:"region" validate:"required"`
	Address       string             `json:"address" validate:"required"`
	Comment       string             `json:"comment"`
}

// UpdateOrderStatusRequest sets the fulfilment status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// UpdatePaymentStatusRequest sets the payment status.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=UNPAID PAID REFUNDED"`
}

// Create godoc
// @Summary Submit an order directly
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Order data"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.OrderInput{
		Shipping: service.ShippingDetails{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Region:        req.Region,
			Address:       req.Address,
			Comment:       req.Comment,
		},
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Design: &service.DesignPayload{
				FrontDesignData: item.FrontDesignData,
				BackDesignData:  item.BackDesignData,
				FrontPreviewURL: item.FrontPreviewURL,
				BackPreviewURL:  item.BackPreviewURL,
			},
		})
	}

	order, err := h.orderService.Create(c.Request().Context(), claims.UserID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, order)
}

// Get godoc
// @Summary Get an order (owner or staff)
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(c.Request().Context(), id, claims.UserID, claims.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, order)
}

// ListMine godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} pagedResponse
// @Router /orders/my [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	params := listParamsFromQuery(c)
	orders, total, err := h.orderService.ListMine(c.Request().Context(), claims.UserID, params)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newPagedResponse(orders, total, params))
}

// List godoc
// @Summary List all orders (staff)
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Success 200 {object} pagedResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	params := listParamsFromQuery(c)
	orders, total, err := h.orderService.List(c.Request().Context(), params, c.QueryParam("status"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newPagedResponse(orders, total, params))
}

// UpdateStatus godoc
// @Summary Update an order's fulfilment status (staff)
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.orderService.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "order status updated"})
}

// UpdatePaymentStatus godoc
// @Summary Update an order's payment status (staff)
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body UpdatePaymentStatusRequest true "New payment status"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/payment-status [patch]
func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.orderService.UpdatePaymentStatus(c.Request().Context(), id, model.PaymentStatus(req.PaymentStatus)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "payment status updated"})
}

// Delete godoc
// @Summary Delete an order (super admin)
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "order deleted"})
}
