package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/models"
	"github.com/campusplan/planner-api/internal/service"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
	"github.com/campusplan/planner-api/pkg/response"
)

// ConstraintHandler exposes availability constraint endpoints.
type ConstraintHandler struct {
	service *service.ConstraintService
}

// NewConstraintHandler constructs the handler.
func NewConstraintHandler(svc *service.ConstraintService) *ConstraintHandler {
	return &ConstraintHandler{service: svc}
}

// List godoc
// @Summary List constraints
// @Tags Constraints
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param type query string false "Filter by constraint type"
// @Success 200 {object} response.Envelope
// @Router /constraints [get]
func (h *ConstraintHandler) List(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	page, pageSize := pagingFromQuery(c)
	filter := models.ConstraintFilter{Type: c.Query("type"), Page: page, PageSize: pageSize}

	constraints, total, err := h.service.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraints, paginationFor(page, pageSize, total))
}

// Get godoc
// @Summary Get a constraint
// @Tags Constraints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Constraint ID"
// @Success 200 {object} response.Envelope
// @Router /constraints/{id} [get]
func (h *ConstraintHandler) Get(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	constraint, err := h.service.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraint, nil)
}

// Create godoc
// @Summary Create a constraint
// @Tags Constraints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateConstraintRequest true "Constraint payload"
// @Success 201 {object} response.Envelope
// @Router /constraints [post]
func (h *ConstraintHandler) Create(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req dto.CreateConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraint payload"))
		return
	}
	constraint, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, constraint)
}

// Update godoc
// @Summary Update a constraint
// @Tags Constraints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Constraint ID"
// @Param payload body dto.UpdateConstraintRequest true "Constraint payload"
// @Success 200 {object} response.Envelope
// @Router /constraints/{id} [put]
func (h *ConstraintHandler) Update(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req dto.UpdateConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid constraint payload"))
		return
	}
	constraint, err := h.service.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, constraint, nil)
}

// Delete godoc
// @Summary Delete a constraint
// @Tags Constraints
// @Security BearerAuth
// @Param id path string true "Constraint ID"
// @Success 204
// @Router /constraints/{id} [delete]
func (h *ConstraintHandler) Delete(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
