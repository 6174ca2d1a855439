package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"printlab/internal/errors"
	"printlab/internal/service"
)

// CartHandler handles the authenticated user's cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddItemRequest adds a variant to the cart.
type AddItemRequest struct {
	VariantID       uint    `json:"variant_id" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,min=1"`
	FrontDesignData *string `json:"front_design_data,omitempty"`
	BackDesignData  *string `json:"back_design_data,omitempty"`
	FrontPreviewURL *string `json:"front_preview_url,omitempty"`
	BackPreviewURL  *string `json:"back_preview_url,omitempty"`
}

// UpdateItemRequest sets an item's quantity; zero or negative deletes it.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest carries the shipping details for cart conversion.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=7,max=20"`
	Region        string `json:"region" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Comment       string `json:"comment"`
}

// GetCart godoc
// @Summary Get the current user's cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Cart
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	cart, err := h.cartService.GetCart(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem godoc
// @Summary Add a variant to the cart
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item data"
// @Success 200 {object} model.Cart
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	design := &service.DesignPayload{
		FrontDesignData: req.FrontDesignData,
		BackDesignData:  req.BackDesignData,
		FrontPreviewURL: req.FrontPreviewURL,
		BackPreviewURL:  req.BackPreviewURL,
	}

	cart, err := h.cartService.AddItem(c.Request().Context(), claims.UserID, req.VariantID, req.Quantity, design)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateItem godoc
// @Summary Set a cart item's quantity (zero or less removes it)
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param request body UpdateItemRequest true "New quantity"
// @Success 200 {object} model.Cart
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.UpdateItem(c.Request().Context(), claims.UserID, uint(itemID), req.Quantity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem godoc
// @Summary Remove an item from the cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} model.Cart
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	cart, err := h.cartService.RemoveItem(c.Request().Context(), claims.UserID, uint(itemID))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cart)
}

// ClearCart godoc
// @Summary Remove all items from the cart
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if err := h.cartService.ClearCart(c.Request().Context(), claims.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "cart cleared",
	})
}

// Checkout godoc
// @Summary Convert the cart into an order
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Shipping details"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.cartService.Checkout(c.Request().Context(), claims.UserID, service.ShippingDetails{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Region:        req.Region,
		Address:       req.Address,
		Comment:       req.Comment,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, order)
}
