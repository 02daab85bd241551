package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/middleware"
	"github.com/campusplan/planner-api/internal/service"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
	"github.com/campusplan/planner-api/pkg/response"
)

// PlanHandler exposes plan generation, optimization and export endpoints.
type PlanHandler struct {
	planner *service.PlannerService
	export  *service.ExportService
}

// NewPlanHandler constructs the handler.
func NewPlanHandler(planner *service.PlannerService, export *service.ExportService) *PlanHandler {
	return &PlanHandler{planner: planner, export: export}
}

// Generate godoc
// @Summary Generate the weekly plan
// @Description Builds the conflict-free weekly timetable for the current user. Cached results are reused unless force=true.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Param force query bool false "Bypass the cached plan"
// @Success 200 {object} response.Envelope
// @Router /plan/generate [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		var req dto.GeneratePlanRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.Force {
			force = true
		}
	}

	result, cached, err := h.planner.Generate(c.Request.Context(), claims.UserID, force)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Optimize godoc
// @Summary Optimize the current weekly plan
// @Description Re-sorts placed sessions within each day and recomputes the score and suggestions.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /plan/optimize [post]
func (h *PlanHandler) Optimize(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}

	result, err := h.planner.Optimize(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Export godoc
// @Summary Export the weekly plan
// @Tags Plan
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /plan/export [get]
func (h *PlanHandler) Export(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	format := c.Query("format")
	if format == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format query parameter is required"))
		return
	}

	file, err := h.export.Export(c.Request.Context(), claims.UserID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
