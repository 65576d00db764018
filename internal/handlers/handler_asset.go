package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assetHandler handles HTTP requests related to the asset registry.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

// newAssetHandler creates a new assetHandler.
func newAssetHandler(assetService portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{
		assetService: assetService,
	}
}

// registerAssetRoutes registers asset registry routes nested under a specific
// business unit.
func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.POST("", h.createAsset)
		assets.GET("", h.listAssets)
		assets.GET("/:asset_id", h.getAsset)
		assets.PUT("/:asset_id", h.updateAsset)
		assets.GET("/:asset_id/history", h.listAssetHistory)
	}
}

// createAsset godoc
// @Summary Register a new asset
// @Description Creates an asset, generating its item code from the category prefix when none is supplied.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   asset body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Item code already exists"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), businessUnitID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create asset")
		return
	}

	logger.Info("Asset created successfully", slog.String("asset_id", asset.AssetID), slog.String("item_code", asset.ItemCode))
	c.JSON(http.StatusCreated, dto.ToAssetResponse(asset))
}

// listAssets godoc
// @Summary List assets
// @Description Retrieves a paginated list of assets in the business unit.
// @Tags assets
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListAssetsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.assetService.ListAssets(c.Request.Context(), businessUnitID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list assets")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getAsset godoc
// @Summary Get an asset
// @Description Retrieves one asset by ID, scoped to the business unit.
// @Tags assets
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   asset_id path string true "Asset ID"
// @Success 200 {object} dto.AssetResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets/{asset_id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")
	assetID := c.Param("asset_id")

	asset, err := h.assetService.GetAssetByID(c.Request.Context(), businessUnitID, assetID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Applies changes to an asset; status and location changes are recorded in its history, financial changes recompute the depreciation parameters.
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   asset_id path string true "Asset ID"
// @Param   asset body dto.UpdateAssetRequest true "Fields to update"
// @Success 200 {object} dto.AssetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 422 {object} map[string]string "Illegal status transition"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets/{asset_id} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")
	assetID := c.Param("asset_id")

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), businessUnitID, assetID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssetResponse(asset))
}

// listAssetHistory godoc
// @Summary List asset history
// @Description Retrieves the append-only audit trail of one asset, newest first.
// @Tags assets
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   asset_id path string true "Asset ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListAssetHistoryResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets/{asset_id}/history [get]
func (h *assetHandler) listAssetHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")
	assetID := c.Param("asset_id")

	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.assetService.ListAssetHistory(c.Request.Context(), businessUnitID, assetID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list asset history")
		return
	}

	c.JSON(http.StatusOK, resp)
}
