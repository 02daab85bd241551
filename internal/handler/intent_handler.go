package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/service"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
	"github.com/campusplan/planner-api/pkg/response"
)

// IntentHandler exposes the free-text intent parsing endpoint.
type IntentHandler struct {
	service *service.IntentService
}

// NewIntentHandler constructs the handler.
func NewIntentHandler(svc *service.IntentService) *IntentHandler {
	return &IntentHandler{service: svc}
}

// Parse godoc
// @Summary Parse a scheduling request written in plain language
// @Description Extracts a session or constraint draft from free text and reports missing fields.
// @Tags Intent
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ParseIntentRequest true "Free text payload"
// @Success 200 {object} response.Envelope
// @Router /intent/parse [post]
func (h *IntentHandler) Parse(c *gin.Context) {
	var req dto.ParseIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid intent payload"))
		return
	}
	result, err := h.service.Parse(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
