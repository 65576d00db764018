package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fixedops/asset_management_app/internal/core/ports/services"
	"github.com/fixedops/asset_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// triggerHandler handles unattended batch triggers fired by an external
// scheduler (cron, cloud scheduler, etc).
type triggerHandler struct {
	depreciationService portssvc.DepreciationSvcFacade
}

func newTriggerHandler(depreciationService portssvc.DepreciationSvcFacade) *triggerHandler {
	return &triggerHandler{
		depreciationService: depreciationService,
	}
}

// registerTriggerRoutes registers the cron trigger routes. These sit outside
// the JWT-protected API group and authenticate with a shared secret instead.
func registerTriggerRoutes(rg *gin.RouterGroup, depreciationService portssvc.DepreciationSvcFacade) {
	h := newTriggerHandler(depreciationService)
	rg.POST("/depreciation/end-of-month", h.runEndOfMonth)
}

// runEndOfMonth godoc
// @Summary Trigger the end-of-month depreciation run
// @Description Runs every due schedule across all active business units, plus a default run on month end. Intended for an external cron caller; authenticates with the shared trigger secret as a bearer token.
// @Tags triggers
// @Produce  json
// @Param   date query string false "Calculation date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.EndOfMonthRunResult
// @Failure 401 {object} map[string]string "Missing or invalid cron secret"
// @Router /triggers/depreciation/end-of-month [post]
func (h *triggerHandler) runEndOfMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	calcDate, ok := parseCalcDate(c)
	if !ok {
		return
	}

	result, err := h.depreciationService.RunEndOfMonth(c.Request.Context(), calcDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run end-of-month depreciation")
		return
	}

	logger.Info("End-of-month depreciation trigger completed",
		slog.Bool("is_end_of_month", result.IsEndOfMonth),
		slog.Int("runs", len(result.Runs)),
	)
	c.JSON(http.StatusOK, result)
}
