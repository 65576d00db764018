package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// retirementHandler handles HTTP requests for retirement and disposal.
type retirementHandler struct {
	retirementService portssvc.RetirementSvcFacade
}

// newRetirementHandler creates a new retirementHandler.
func newRetirementHandler(retirementService portssvc.RetirementSvcFacade) *retirementHandler {
	return &retirementHandler{
		retirementService: retirementService,
	}
}

// registerRetirementRoutes registers retirement routes nested under a
// specific business unit.
func registerRetirementRoutes(rg *gin.RouterGroup, retirementService portssvc.RetirementSvcFacade) {
	h := newRetirementHandler(retirementService)

	retirements := rg.Group("/retirements")
	{
		retirements.POST("", h.retireAssets)
		retirements.GET("/retirable-assets", h.getRetirableAssets)
	}

	rg.POST("/disposals", h.disposeAsset)
}

// retireAssets godoc
// @Summary Retire a batch of assets
// @Description Retires the requested assets atomically: one invalid asset rejects the whole batch. Open deployments are auto-returned.
// @Tags retirement
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   retirement body dto.RetireAssetsRequest true "Retirement details"
// @Success 200 {object} dto.RetireAssetsResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 409 {object} map[string]string "Asset already retired"
// @Failure 422 {object} map[string]string "Asset not in a retirable state"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/retirements [post]
func (h *retirementHandler) retireAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var req dto.RetireAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RetireAssets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.retirementService.RetireAssets(c.Request.Context(), businessUnitID, req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retire assets")
		return
	}

	logger.Info("Assets retired successfully", slog.Int("retired", result.RetiredCount))
	c.JSON(http.StatusOK, result)
}

// getRetirableAssets godoc
// @Summary List retirable assets
// @Description Lists assets in a retirable lifecycle state for operator selection, optionally filtered by category.
// @Tags retirement
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   categoryID query string false "Restrict to one category"
// @Success 200 {object} dto.RetirableAssetsResponse
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/retirements/retirable-assets [get]
func (h *retirementHandler) getRetirableAssets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var params dto.RetirableAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.retirementService.GetRetirableAssets(c.Request.Context(), businessUnitID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list retirable assets")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// disposeAsset godoc
// @Summary Dispose a retired asset
// @Description Executes the terminal RETIRED to DISPOSED transition, recording the disposal against the asset's retirement.
// @Tags retirement
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   disposal body dto.DisposeAssetRequest true "Disposal details"
// @Success 201 {object} dto.DisposalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Asset not found"
// @Failure 422 {object} map[string]string "Asset is not retired"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/disposals [post]
func (h *retirementHandler) disposeAsset(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var req dto.DisposeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DisposeAsset", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	disposal, err := h.retirementService.DisposeAsset(c.Request.Context(), businessUnitID, req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to dispose asset")
		return
	}

	logger.Info("Asset disposed successfully", slog.String("disposal_id", disposal.DisposalID))
	c.JSON(http.StatusCreated, dto.ToDisposalResponse(disposal))
}
