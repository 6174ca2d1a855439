package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"printlab/internal/errors"
	"printlab/internal/model"
	"printlab/internal/service"
)

// AssetHandler handles catalog media endpoints.
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AssetRequest creates or updates an asset.
type AssetRequest struct {
	ProductID *uint  `json:"product_id,omitempty"`
	URL       string `json:"url" validate:"required,url"`
	Kind      string `json:"kind" validate:"required,oneof=mockup template preview"`
}

// Get godoc
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} model.Asset
// @Failure 404 {object} errors.ErrorResponse
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	asset, err := h.assetService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, asset)
}

// ListByProduct godoc
// @Summary List a product's assets
// @Tags assets
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} model.Asset
// @Router /products/{id}/assets [get]
func (h *AssetHandler) ListByProduct(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	assets, err := h.assetService.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, assets)
}

// Create godoc
// @Summary Create an asset (staff)
// @Tags assets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AssetRequest true "Asset data"
// @Success 201 {object} model.Asset
// @Failure 400 {object} errors.ErrorResponse
// @Router /assets [post]
func (h *AssetHandler) Create(c echo.Context) error {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	asset := &model.Asset{
		ProductID: req.ProductID,
		URL:       req.URL,
		Kind:      model.AssetKind(req.Kind),
	}

	if err := h.assetService.Create(c.Request().Context(), asset); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, asset)
}

// Update godoc
// @Summary Update an asset (staff)
// @Tags assets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Asset ID"
// @Param request body AssetRequest true "Asset data"
// @Success 200 {object} model.Asset
// @Failure 404 {object} errors.ErrorResponse
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	asset := &model.Asset{
		ID:        id,
		ProductID: req.ProductID,
		URL:       req.URL,
		Kind:      model.AssetKind(req.Kind),
	}

	if err := h.assetService.Update(c.Request().Context(), asset); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, asset)
}

// Delete godoc
// @Summary Delete an asset (staff)
// @Tags assets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.assetService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "asset deleted"})
}
