package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/services"
	"github.com/kittipos/equiptrack/internal/middleware"
	"github.com/kittipos/equiptrack/internal/pkg/helpers"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// TicketController handles the problem report endpoints
type TicketController struct {
	ticketService  *services.TicketService
	authMiddleware *middleware.AuthMiddleware
}

// NewTicketController creates a new TicketController
func NewTicketController(ticketService *services.TicketService, authMiddleware *middleware.AuthMiddleware) *TicketController {
	return &TicketController{
		ticketService:  ticketService,
		authMiddleware: authMiddleware,
	}
}

// CreateTicket files a new problem report
// @Summary Report a problem
// @Description Files a ticket for a piece of equipment. If similar open tickets exist from the last 24 hours, they are returned instead and the caller must resubmit with confirm=true.
// @Tags tickets
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param equipmentCode formData string true "Equipment code"
// @Param description formData string true "Problem description"
// @Param category formData string true "Problem category" Enums(HARDWARE, SOFTWARE)
// @Param confirm formData bool false "Acknowledge the similar-ticket warning"
// @Param photo formData file false "Optional photo of the problem"
// @Success 201 {object} dto.APIResponse{data=models.Ticket} "Ticket created"
// @Success 409 {object} dto.APIResponse{data=dto.SimilarTicketsResponse} "Similar open tickets exist"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Equipment not found"
// @Router /tickets [post]
func (c *TicketController) CreateTicket(ctx *gin.Context) {
	var req dto.CreateTicketRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// Photo is optional; only a broken multipart part is an error
	photo, err := ctx.FormFile("photo")
	if err != nil && err != http.ErrMissingFile {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid photo upload")))
		return
	}

	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ticket, similar, err := c.ticketService.Create(ctx.Request.Context(), caller, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if similar != nil {
		ctx.JSON(http.StatusConflict, dto.APIResponse{
			Data: dto.SimilarTicketsResponse{
				Similar: similar,
				Message: "These tickets may already cover this problem; resubmit with confirm=true to proceed",
			},
			Error:     dto.NewErrorDetail(dto.ErrorCodeSimilarTickets, "Similar open tickets exist"),
			Timestamp: time.Now(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      ticket,
		Timestamp: time.Now(),
	})
}

// GetTicket retrieves one ticket
// @Summary Get ticket by ID
// @Description Reporters see only their own reports; assistants additionally see unassigned pending tickets and their own assignments
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse{data=models.Ticket} "Ticket"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /tickets/{id} [get]
func (c *TicketController) GetTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	callerID, _ := middleware.CallerID(ctx)
	callerRole, _ := middleware.CallerRole(ctx)

	ticket, err := c.ticketService.GetByID(ctx.Request.Context(), callerID, callerRole, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      ticket,
		Timestamp: time.Now(),
	})
}

// ListTickets retrieves tickets visible to the caller
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param statusId query int false "Filter by status ID"
// @Param category query string false "Filter by category" Enums(HARDWARE, SOFTWARE)
// @Param room query string false "Filter by room"
// @Param equipmentId query int false "Filter by equipment ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Tickets"
// @Router /tickets [get]
func (c *TicketController) ListTickets(ctx *gin.Context) {
	var filter dto.TicketFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	callerID, _ := middleware.CallerID(ctx)
	callerRole, _ := middleware.CallerRole(ctx)

	tickets, total, err := c.ticketService.List(ctx.Request.Context(), callerID, callerRole, &filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      tickets,
			Pagination: helpers.NewPaginationInfo(page, limit, total),
		},
		Timestamp: time.Now(),
	})
}

// AssignTicket claims a pending ticket for the caller
// @Summary Assign ticket to self
// @Description Claims a pending, unassigned ticket and moves it to IN_PROGRESS. Exactly one of two racing staff members wins.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse{data=models.Ticket} "Ticket assigned"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Ticket is already assigned"
// @Router /tickets/{id}/assign [post]
func (c *TicketController) AssignTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ticket, err := c.ticketService.Assign(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      ticket,
		Timestamp: time.Now(),
	})
}

// TransitionTicket applies a workflow transition
// @Summary Transition ticket status
// @Description Applies one edge of the ticket workflow. Ticket and equipment status change together or not at all.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.TransitionRequest true "Target status and optional comment"
// @Success 200 {object} dto.APIResponse{data=models.Ticket} "Ticket transitioned"
// @Failure 400 {object} dto.ErrorResponse "Comment required"
// @Failure 403 {object} dto.ErrorResponse "Role may not perform this transition"
// @Failure 422 {object} dto.ErrorResponse "Transition not allowed from current state"
// @Router /tickets/{id}/transition [post]
func (c *TicketController) TransitionTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ticket, err := c.ticketService.Transition(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      ticket,
		Timestamp: time.Now(),
	})
}

// BulkTransitionTickets applies one transition to several referred tickets
// @Summary Bulk transition referred tickets
// @Description Moves several REFERRED tickets to DAMAGED or RESOLVED atomically. One invalid member rolls the whole batch back.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkTransitionRequest true "Ticket IDs, target status and comment"
// @Success 200 {object} dto.APIResponse{data=[]models.Ticket} "Tickets transitioned"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 422 {object} dto.ErrorResponse "A member cannot take this transition"
// @Router /tickets/bulk-transition [post]
func (c *TicketController) BulkTransitionTickets(ctx *gin.Context) {
	var req dto.BulkTransitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	tickets, err := c.ticketService.BulkTransition(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      tickets,
		Timestamp: time.Now(),
	})
}

// ExportReferrals finalizes the referral batch and returns it as CSV
// @Summary Finalize and export referrals
// @Description Moves every CANNOT_FIX ticket to REFERRED and returns the batch as a CSV handover document. This endpoint mutates state; repeating it with nothing to refer yields an empty document.
// @Tags tickets
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV handover document"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /tickets/referrals/export [post]
func (c *TicketController) ExportReferrals(ctx *gin.Context) {
	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	batch, err := c.ticketService.FinalizeReferrals(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("referrals-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Status(http.StatusOK)

	w := csv.NewWriter(ctx.Writer)
	header := []string{"ticket_id", "equipment_code", "equipment_name", "room", "category", "description", "comment", "reported_at"}
	if err := w.Write(header); err != nil {
		logger.Error().Err(err).Msg("Failed to write referral export header")
		return
	}
	for _, t := range batch {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.EquipmentCode,
			t.EquipmentName,
			t.Room,
			string(t.Category),
			t.Description,
			t.Comment,
			t.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			logger.Error().Err(err).Int64("ticketID", t.ID).Msg("Failed to write referral export row")
			return
		}
	}
	w.Flush()
}

// DeleteTicket removes a mistaken report
// @Summary Delete ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse "Ticket deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Router /tickets/{id} [delete]
func (c *TicketController) DeleteTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	caller, err := c.authMiddleware.Caller(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.ticketService.Delete(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Timestamp: time.Now(),
	})
}
