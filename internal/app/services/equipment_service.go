package services

import (
	"context"

	"github.com/kittipos/equiptrack/internal/app/auth"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/repositories"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
	"github.com/kittipos/equiptrack/internal/pkg/validation"
)

// EquipmentService handles the inventory registry
type EquipmentService struct {
	equipmentRepo *repositories.EquipmentRepository
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(equipmentRepo *repositories.EquipmentRepository) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
	}
}

// openTicketStatusIDs are the persisted identifiers counted as "open" by the
// activation guard
var openTicketStatusIDs = []int64{
	models.StatusPending.ID(),
	models.StatusInProgress.ID(),
	models.StatusReferred.ID(),
}

// Create registers a new inventory item. Codes are normalized to upper case
// before the uniqueness check so EQ-1 and eq-1 cannot coexist.
func (s *EquipmentService) Create(ctx context.Context, callerRole models.Role, req *dto.CreateEquipmentRequest) (*models.Equipment, error) {
	if !auth.CanPerform(callerRole, auth.OpEquipmentCreate) {
		return nil, apperrors.ErrPermissionDenied
	}

	code := validation.NormalizeEquipmentCode(req.Code)
	if !validation.ValidEquipmentCode(code) {
		return nil, apperrors.NewValidationError("equipment code may contain letters, digits and dashes only")
	}

	exists, err := s.equipmentRepo.CodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEquipmentCodeExists
	}

	status := models.EquipmentActive
	if req.Status != "" {
		status = models.EquipmentStatus(req.Status)
	}

	equipment := &models.Equipment{
		Code:   code,
		Name:   req.Name,
		Type:   models.EquipmentType(req.Type),
		Room:   req.Room,
		Status: status,
	}

	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		return nil, err
	}

	logger.Info().Int64("equipmentID", equipment.ID).Str("code", equipment.Code).Msg("Equipment registered")
	return equipment, nil
}

// GetByID returns one inventory item
func (s *EquipmentService) GetByID(ctx context.Context, id int64) (*models.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

// List returns equipment matching the optional room and status filters
func (s *EquipmentService) List(ctx context.Context, room string, status string) ([]*models.Equipment, error) {
	equipmentStatus := models.EquipmentStatus(status)
	if status != "" && !equipmentStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown equipment status filter")
	}
	return s.equipmentRepo.GetAll(ctx, room, equipmentStatus)
}

// Update edits an item's descriptive fields. Operational status is changed
// only through SetStatus so the activation guard cannot be bypassed.
func (s *EquipmentService) Update(ctx context.Context, callerRole models.Role, id int64, req *dto.UpdateEquipmentRequest) (*models.Equipment, error) {
	if !auth.CanPerform(callerRole, auth.OpEquipmentUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}

	code := validation.NormalizeEquipmentCode(req.Code)
	if !validation.ValidEquipmentCode(code) {
		return nil, apperrors.NewValidationError("equipment code may contain letters, digits and dashes only")
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	equipment.Code = code
	equipment.Name = req.Name
	equipment.Type = models.EquipmentType(req.Type)
	equipment.Room = req.Room

	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

// SetStatus changes an item's operational state. Activation is refused while
// any open ticket references the item; the check and the update happen in a
// single guarded statement.
func (s *EquipmentService) SetStatus(ctx context.Context, callerRole models.Role, id int64, status models.EquipmentStatus) (*models.Equipment, error) {
	if !auth.CanPerform(callerRole, auth.OpEquipmentSetStatus) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown equipment status")
	}

	if err := s.equipmentRepo.SetStatusGuarded(ctx, id, status, openTicketStatusIDs); err != nil {
		return nil, err
	}

	logger.Info().Int64("equipmentID", id).Str("status", string(status)).Msg("Equipment status changed")
	return s.equipmentRepo.GetByID(ctx, id)
}

// Delete removes an inventory item. Items referenced by any ticket, in any
// status, are refused to keep ticket history intact.
func (s *EquipmentService) Delete(ctx context.Context, callerRole models.Role, id int64) error {
	if !auth.CanPerform(callerRole, auth.OpEquipmentDelete) {
		return apperrors.ErrPermissionDenied
	}

	hasTickets, err := s.equipmentRepo.HasTickets(ctx, id)
	if err != nil {
		return err
	}
	if hasTickets {
		return apperrors.ErrHasReferencingTickets
	}

	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("equipmentID", id).Msg("Equipment deleted")
	return nil
}
