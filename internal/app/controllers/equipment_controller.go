package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/services"
	"github.com/kittipos/equiptrack/internal/middleware"
)

// EquipmentController handles inventory registry endpoints
type EquipmentController struct {
	equipmentService *services.EquipmentService
}

// NewEquipmentController creates a new EquipmentController
func NewEquipmentController(equipmentService *services.EquipmentService) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
	}
}

// CreateEquipment registers an inventory item
// @Summary Register equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEquipmentRequest true "Equipment information"
// @Success 201 {object} dto.APIResponse{data=models.Equipment} "Equipment registered"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Equipment code already exists"
// @Router /equipment [post]
func (c *EquipmentController) CreateEquipment(ctx *gin.Context) {
	var req dto.CreateEquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, _ := middleware.CallerRole(ctx)

	equipment, err := c.equipmentService.Create(ctx.Request.Context(), role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      equipment,
		Timestamp: time.Now(),
	})
}

// GetEquipment retrieves one inventory item
// @Summary Get equipment by ID
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse{data=models.Equipment} "Equipment"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Router /equipment/{id} [get]
func (c *EquipmentController) GetEquipment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	equipment, err := c.equipmentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      equipment,
		Timestamp: time.Now(),
	})
}

// ListEquipment retrieves inventory items
// @Summary List equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param room query string false "Filter by room"
// @Param status query string false "Filter by status" Enums(ACTIVE, MAINTENANCE, INACTIVE)
// @Success 200 {object} dto.APIResponse{data=[]models.Equipment} "Equipment list"
// @Router /equipment [get]
func (c *EquipmentController) ListEquipment(ctx *gin.Context) {
	items, err := c.equipmentService.List(ctx.Request.Context(), ctx.Query("room"), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// UpdateEquipment edits an item's descriptive fields
// @Summary Update equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Equipment information"
// @Success 200 {object} dto.APIResponse{data=models.Equipment} "Equipment updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Router /equipment/{id} [put]
func (c *EquipmentController) UpdateEquipment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEquipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, _ := middleware.CallerRole(ctx)

	equipment, err := c.equipmentService.Update(ctx.Request.Context(), role, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      equipment,
		Timestamp: time.Now(),
	})
}

// SetEquipmentStatus changes an item's operational state
// @Summary Set equipment status
// @Description Setting ACTIVE is refused while open tickets reference the equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Param request body dto.SetEquipmentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Equipment} "Status changed"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Equipment has open tickets"
// @Router /equipment/{id}/status [put]
func (c *EquipmentController) SetEquipmentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetEquipmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	role, _ := middleware.CallerRole(ctx)

	equipment, err := c.equipmentService.SetStatus(ctx.Request.Context(), role, id, models.EquipmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      equipment,
		Timestamp: time.Now(),
	})
}

// DeleteEquipment removes an inventory item
// @Summary Delete equipment
// @Description Items referenced by any ticket are refused to keep history intact
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Equipment ID"
// @Success 200 {object} dto.APIResponse "Equipment deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Equipment is referenced by tickets"
// @Router /equipment/{id} [delete]
func (c *EquipmentController) DeleteEquipment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role, _ := middleware.CallerRole(ctx)

	if err := c.equipmentService.Delete(ctx.Request.Context(), role, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Timestamp: time.Now(),
	})
}
