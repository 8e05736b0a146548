package services

import (
	"context"

	"github.com/kittipos/equiptrack/internal/app/auth"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/repositories"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// StatusService handles the status taxonomy. The six canonical entries are
// locked: they can change color but never name, meaning, or existence.
// Custom entries are informational and never participate in the workflow.
type StatusService struct {
	statusRepo *repositories.StatusRepository
	ticketRepo *repositories.TicketRepository
}

// NewStatusService creates a new status service
func NewStatusService(statusRepo *repositories.StatusRepository, ticketRepo *repositories.TicketRepository) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		ticketRepo: ticketRepo,
	}
}

// List returns the whole taxonomy
func (s *StatusService) List(ctx context.Context) ([]*models.Status, error) {
	return s.statusRepo.GetAll(ctx)
}

// GetByID returns one taxonomy entry
func (s *StatusService) GetByID(ctx context.Context, id int64) (*models.Status, error) {
	return s.statusRepo.GetByID(ctx, id)
}

// Create adds a custom taxonomy entry
func (s *StatusService) Create(ctx context.Context, callerRole models.Role, req *dto.CreateStatusRequest) (*models.Status, error) {
	if !auth.CanPerform(callerRole, auth.OpStatusCreate) {
		return nil, apperrors.ErrPermissionDenied
	}

	status := &models.Status{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}

	logger.Info().Int64("statusID", status.ID).Str("name", status.Name).Msg("Status created")
	return status, nil
}

// Update edits a taxonomy entry. On locked entries only the color may
// change; a different name or description is refused.
func (s *StatusService) Update(ctx context.Context, callerRole models.Role, id int64, req *dto.UpdateStatusRequest) (*models.Status, error) {
	if !auth.CanPerform(callerRole, auth.OpStatusUpdate) {
		return nil, apperrors.ErrPermissionDenied
	}

	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status.Locked() {
		if req.Name != status.Name || req.Description != status.Description {
			return nil, apperrors.ErrStatusLocked
		}
		if err := s.statusRepo.UpdateColor(ctx, id, req.Color); err != nil {
			return nil, err
		}
		status.Color = req.Color
		return status, nil
	}

	status.Name = req.Name
	status.Description = req.Description
	status.Color = req.Color
	if err := s.statusRepo.Update(ctx, status); err != nil {
		return nil, err
	}

	return status, nil
}

// Delete removes a custom taxonomy entry. Locked entries and entries still
// referenced by tickets are refused.
func (s *StatusService) Delete(ctx context.Context, callerRole models.Role, id int64) error {
	if !auth.CanPerform(callerRole, auth.OpStatusDelete) {
		return apperrors.ErrPermissionDenied
	}

	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if status.Locked() {
		return apperrors.ErrStatusLocked
	}

	count, err := s.ticketRepo.CountByStatus(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrStatusInUse
	}

	if err := s.statusRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("statusID", id).Msg("Status deleted")
	return nil
}
