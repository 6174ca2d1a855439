package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"printlab/internal/errors"
	"printlab/internal/model"
	"printlab/internal/service"
)

// VariantHandler handles variant endpoints.
type VariantHandler struct {
	variantService service.VariantService
}

// NewVariantHandler creates a new variant handler.
func NewVariantHandler(variantService service.VariantService) *VariantHandler {
	return &VariantHandler{variantService: variantService}
}

// VariantRequest creates or updates a variant.
type VariantRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	SKU       string `json:"sku" validate:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Price     string `json:"price" validate:"required"`
	Stock     int    `json:"stock" validate:"min=0"`
}

// Get godoc
// @Summary Get a variant
// @Tags variants
// @Produce json
// @Param id path int true "Variant ID"
// @Success 200 {object} model.Variant
// @Failure 404 {object} errors.ErrorResponse
// @Router /variants/{id} [get]
func (h *VariantHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	variant, err := h.variantService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, variant)
}

// ListByProduct godoc
// @Summary List a product's variants
// @Tags variants
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} model.Variant
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/variants [get]
func (h *VariantHandler) ListByProduct(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	variants, err := h.variantService.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, variants)
}

// Create godoc
// @Summary Create a variant (staff)
// @Tags variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VariantRequest true "Variant data"
// @Success 201 {object} model.Variant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /variants [post]
func (h *VariantHandler) Create(c echo.Context) error {
	var req VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	variant, err := h.variantFromRequest(&req, 0)
	if err != nil {
		return err
	}

	if err := h.variantService.Create(c.Request().Context(), variant); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, variant)
}

// Update godoc
// @Summary Update a variant (staff)
// @Tags variants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Variant ID"
// @Param request body VariantRequest true "Variant data"
// @Success 200 {object} model.Variant
// @Failure 404 {object} errors.ErrorResponse
// @Router /variants/{id} [put]
func (h *VariantHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	variant, err := h.variantFromRequest(&req, id)
	if err != nil {
		return err
	}

	if err := h.variantService.Update(c.Request().Context(), variant); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, variant)
}

// Delete godoc
// @Summary Delete a variant (staff)
// @Tags variants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Variant ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /variants/{id} [delete]
func (h *VariantHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.variantService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "variant deleted"})
}

func (h *VariantHandler) variantFromRequest(req *VariantRequest, id uint) (*model.Variant, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid price: "+strconv.Quote(req.Price))
	}
	return &model.Variant{
		ID:        id,
		ProductID: req.ProductID,
		SKU:       req.SKU,
		Color:     req.Color,
		Size:      req.Size,
		Price:     price,
		Stock:     req.Stock,
	}, nil
}
