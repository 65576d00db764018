package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/dto"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// depreciationHandler handles HTTP requests for the depreciation engine.
type depreciationHandler struct {
	depreciationService portssvc.DepreciationSvcFacade
}

// newDepreciationHandler creates a new depreciationHandler.
func newDepreciationHandler(depreciationService portssvc.DepreciationSvcFacade) *depreciationHandler {
	return &depreciationHandler{
		depreciationService: depreciationService,
	}
}

// registerDepreciationRoutes registers depreciation engine routes nested
// under a specific business unit.
func registerDepreciationRoutes(rg *gin.RouterGroup, depreciationService portssvc.DepreciationSvcFacade) {
	h := newDepreciationHandler(depreciationService)

	depreciation := rg.Group("/depreciation")
	{
		depreciation.GET("/preview", h.preview)
		depreciation.POST("/run", h.runManual)
	}

	schedules := rg.Group("/schedules")
	{
		schedules.POST("", h.createScheduleConfig)
		schedules.GET("", h.listScheduleConfigs)
		schedules.DELETE("/:schedule_id", h.deactivateScheduleConfig)
	}

	rg.GET("/assets/:asset_id/depreciation-entries", h.listEntries)
}

// parseCalcDate reads the optional "date" query parameter (YYYY-MM-DD),
// defaulting to the current UTC date. Injecting the date keeps batch
// decisions reproducible and testable.
func parseCalcDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// preview godoc
// @Summary Preview assets needing depreciation
// @Description Read-only eligibility preview for the given calculation date; nothing is written.
// @Tags depreciation
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   date query string false "Calculation date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.DepreciationPreviewResponse
// @Failure 404 {object} map[string]string "Business unit not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/depreciation/preview [get]
func (h *depreciationHandler) preview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	calcDate, ok := parseCalcDate(c)
	if !ok {
		return
	}

	resp, err := h.depreciationService.GetAssetsNeedingDepreciation(c.Request.Context(), businessUnitID, calcDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build depreciation preview")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// runManual godoc
// @Summary Run depreciation on demand
// @Description Executes a batch depreciation run over the filtered asset population. Re-running for the same period is idempotent: already processed assets are reported as skipped.
// @Tags depreciation
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   run body dto.ManualDepreciationRequest true "Run parameters"
// @Success 200 {object} dto.ScheduledDepreciationResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Business unit not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/depreciation/run [post]
func (h *depreciationHandler) runManual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var req dto.ManualDepreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for manual depreciation run", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.depreciationService.RunManual(c.Request.Context(), businessUnitID, req, time.Now().UTC(), actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run depreciation")
		return
	}

	logger.Info("Manual depreciation run completed",
		slog.String("execution_id", result.ExecutionID),
		slog.Int("processed", result.TotalAssetsProcessed),
	)
	c.JSON(http.StatusOK, result)
}

// createScheduleConfig godoc
// @Summary Create a recurring depreciation schedule
// @Description Defines a recurring job with a cadence, execution day and category filter.
// @Tags depreciation
// @Accept  json
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   schedule body dto.CreateScheduleConfigRequest true "Schedule details"
// @Success 201 {object} dto.ScheduleConfigResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Schedule name already exists"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/schedules [post]
func (h *depreciationHandler) createScheduleConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	var req dto.CreateScheduleConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateScheduleConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	config, err := h.depreciationService.CreateScheduleConfig(c.Request.Context(), businessUnitID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create schedule config")
		return
	}

	c.JSON(http.StatusCreated, dto.ToScheduleConfigResponse(config))
}

// listScheduleConfigs godoc
// @Summary List depreciation schedules
// @Tags depreciation
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Success 200 {array} dto.ScheduleConfigResponse
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/schedules [get]
func (h *depreciationHandler) listScheduleConfigs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")

	configs, err := h.depreciationService.ListScheduleConfigs(c.Request.Context(), businessUnitID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list schedule configs")
		return
	}

	out := make([]dto.ScheduleConfigResponse, len(configs))
	for i := range configs {
		out[i] = dto.ToScheduleConfigResponse(&configs[i])
	}
	c.JSON(http.StatusOK, out)
}

// deactivateScheduleConfig godoc
// @Summary Deactivate a depreciation schedule
// @Description Switches a recurring job off; its execution history is retained.
// @Tags depreciation
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   schedule_id path string true "Schedule ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} map[string]string "Schedule not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/schedules/{schedule_id} [delete]
func (h *depreciationHandler) deactivateScheduleConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")
	scheduleID := c.Param("schedule_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.depreciationService.DeactivateScheduleConfig(c.Request.Context(), businessUnitID, scheduleID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate schedule config")
		return
	}

	c.Status(http.StatusNoContent)
}

// listEntries godoc
// @Summary List the depreciation ledger of an asset
// @Description Retrieves the append-only depreciation entries for an asset, newest period first.
// @Tags depreciation
// @Produce  json
// @Param   business_unit_id path string true "Business Unit ID"
// @Param   asset_id path string true "Asset ID"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListDepreciationEntriesResponse
// @Failure 404 {object} map[string]string "Asset not found"
// @Security BearerAuth
// @Router /business-units/{business_unit_id}/assets/{asset_id}/depreciation-entries [get]
func (h *depreciationHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businessUnitID := c.Param("business_unit_id")
	assetID := c.Param("asset_id")

	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.depreciationService.ListDepreciationEntries(c.Request.Context(), businessUnitID, assetID, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list depreciation entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}
