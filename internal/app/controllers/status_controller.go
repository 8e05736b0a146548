package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/services"
	"github.com/kittipos/equiptrack/internal/middleware"
)

// StatusController handles status taxonomy endpoints
type StatusController struct {
	statusService *services.StatusService
}

// NewStatusController creates a new StatusController
func NewStatusController(statusService *services.StatusService) *StatusController {
	return &StatusController{
		statusService: statusService,
	}
}

// ListStatuses returns the whole taxonomy
// @Summary List statuses
// @Tags statuses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Status} "Statuses"
// @Router /statuses [get]
func (c *StatusController) ListStatuses(ctx *gin.Context) {
	statuses, err := c.statusService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      statuses,
		Timestamp: time.Now(),
	})
}

// CreateStatus adds a custom taxonomy entry
// @Summary Create status
// @Description Custom statuses are informational only and never participate in the ticket workflow
// @Tags statuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStatusRequest true "Status information"
// @Success 201 {object} dto.APIResponse{data=models.Status} "Status created"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Status name already exists"
// @Router /statuses [post]
func (c *StatusController) CreateStatus(ctx *gin.Context) {
	var req dto.CreateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, _ := middleware.CallerRole(ctx)

	status, err := c.statusService.Create(ctx.Request.Context(), role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// UpdateStatus edits a taxonomy entry
// @Summary Update status
// @Description On the six locked entries only the color may change
// @Tags statuses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Status ID"
// @Param request body dto.UpdateStatusRequest true "Status information"
// @Success 200 {object} dto.APIResponse{data=models.Status} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Status is locked"
// @Router /statuses/{id} [put]
func (c *StatusController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, _ := middleware.CallerRole(ctx)

	status, err := c.statusService.Update(ctx.Request.Context(), role, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// DeleteStatus removes a custom taxonomy entry
// @Summary Delete status
// @Description Locked entries and entries referenced by tickets are refused
// @Tags statuses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Status ID"
// @Success 200 {object} dto.APIResponse "Status deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Status is locked or in use"
// @Router /statuses/{id} [delete]
func (c *StatusController) DeleteStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, _ := middleware.CallerRole(ctx)

	if err := c.statusService.Delete(ctx.Request.Context(), role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Timestamp: time.Now(),
	})
}
