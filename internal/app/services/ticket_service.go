package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kittipos/equiptrack/internal/app/auth"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/app/models/dto"
	"github.com/kittipos/equiptrack/internal/app/repositories"
	"github.com/kittipos/equiptrack/internal/db"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/filestorage"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
	"github.com/kittipos/equiptrack/internal/pkg/notify"
	"github.com/kittipos/equiptrack/internal/pkg/validation"
)

// SimilarTicketWindow is how far back the duplicate soft check looks
const SimilarTicketWindow = 24 * time.Hour

// TicketService handles the problem report workflow
type TicketService struct {
	pool          *pgxpool.Pool
	ticketRepo    *repositories.TicketRepository
	equipmentRepo *repositories.EquipmentRepository
	storage       filestorage.PhotoStorage
	notifier      notify.Notifier
}

// NewTicketService creates a new ticket service
func NewTicketService(
	pool *pgxpool.Pool,
	ticketRepo *repositories.TicketRepository,
	equipmentRepo *repositories.EquipmentRepository,
	storage filestorage.PhotoStorage,
	notifier notify.Notifier,
) *TicketService {
	return &TicketService{
		pool:          pool,
		ticketRepo:    ticketRepo,
		equipmentRepo: equipmentRepo,
		storage:       storage,
		notifier:      notifier,
	}
}

// Create files a new problem report. When open tickets for the same
// equipment and category exist within the lookback window and the caller has
// not confirmed, the candidates are returned instead of a new ticket. The
// check is advisory only; a confirmed duplicate is accepted.
func (s *TicketService) Create(ctx context.Context, caller *models.User, req *dto.CreateTicketRequest, photo *multipart.FileHeader) (*models.Ticket, []*models.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.OpTicketCreate) {
		return nil, nil, apperrors.ErrPermissionDenied
	}

	if !validation.ValidDescription(req.Description) {
		return nil, nil, apperrors.NewValidationError("description is too short")
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, nil, apperrors.NewValidationError("unknown category")
	}

	code := validation.NormalizeEquipmentCode(req.EquipmentCode)
	equipment, err := s.equipmentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	if !req.Confirm {
		similar, err := s.ticketRepo.FindSimilarOpen(ctx, equipment.ID, category, time.Now().Add(-SimilarTicketWindow))
		if err != nil {
			return nil, nil, err
		}
		if len(similar) > 0 {
			return nil, similar, nil
		}
	}

	var photoPath *string
	if photo != nil {
		saved, err := s.storage.SavePhoto(photo)
		if err != nil {
			return nil, nil, err
		}
		photoPath = &saved
	}

	ticket := &models.Ticket{
		EquipmentID: equipment.ID,
		Status:      models.StatusPending,
		Description: req.Description,
		Category:    category,
		Room:        equipment.Room,
		ReporterID:  caller.ID,
		PhotoPath:   photoPath,
	}

	// The new report and the equipment going into maintenance commit together
	err = db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.ticketRepo.CreateTx(ctx, tx, ticket); err != nil {
			return err
		}
		return s.equipmentRepo.SetStatusTx(ctx, tx, equipment.ID, models.EquipmentMaintenance)
	})
	if err != nil {
		if photoPath != nil {
			_ = s.storage.DeletePhoto(*photoPath)
		}
		return nil, nil, err
	}

	ticket.EquipmentCode = equipment.Code
	ticket.EquipmentName = equipment.Name
	ticket.ReporterName = caller.DisplayName
	ticket.ReporterRole = caller.Role

	s.notifier.Notify(ticketEvent("ticket.created", ticket, caller.DisplayName, req.Description))

	logger.Info().Int64("ticketID", ticket.ID).Str("equipment", equipment.Code).Msg("Ticket created")
	return ticket, nil, nil
}

// GetByID returns one ticket, subject to the caller's visibility: reporters
// see only their own reports, assistants additionally see unassigned pending
// tickets and their own assignments.
func (s *TicketService) GetByID(ctx context.Context, callerID int64, callerRole models.Role, id int64) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.visible(ticket, callerID, callerRole) {
		// Invisible tickets are indistinguishable from missing ones
		return nil, apperrors.ErrTicketNotFound
	}

	return ticket, nil
}

func (s *TicketService) visible(ticket *models.Ticket, callerID int64, callerRole models.Role) bool {
	switch callerRole {
	case models.RoleAdmin, models.RoleEquipmentManager:
		return true
	case models.RoleEquipmentAssistant:
		if ticket.ReporterID == callerID {
			return true
		}
		if ticket.AssigneeID != nil && *ticket.AssigneeID == callerID {
			return true
		}
		return ticket.Status == models.StatusPending && ticket.AssigneeID == nil
	default:
		return ticket.ReporterID == callerID
	}
}

// List returns tickets scoped to the caller's role, newest first
func (s *TicketService) List(ctx context.Context, callerID int64, callerRole models.Role, filter *dto.TicketFilter, offset uint64, limit int) ([]*models.Ticket, int64, error) {
	repoFilter := repositories.TicketFilter{
		StatusID:    filter.StatusID,
		Category:    models.Category(filter.Category),
		Room:        filter.Room,
		EquipmentID: filter.EquipmentID,
	}

	var scope repositories.TicketScope
	switch callerRole {
	case models.RoleAdmin, models.RoleEquipmentManager:
	case models.RoleEquipmentAssistant:
		scope.AssistantID = callerID
	default:
		scope.ReporterID = callerID
	}

	return s.ticketRepo.List(ctx, repoFilter, scope, offset, limit)
}

// Assign claims a pending ticket for a staff member and moves it to
// InProgress in one conditional update. Losing a race for the same ticket
// yields ErrAlreadyAssigned, never a double assignment.
func (s *TicketService) Assign(ctx context.Context, caller *models.User, ticketID int64) (*models.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.OpTicketAssign) {
		return nil, apperrors.ErrPermissionDenied
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		equipmentID, err := s.ticketRepo.AssignTx(ctx, tx, ticketID, caller.ID)
		if err != nil {
			return err
		}
		// The item stays out of service while someone works on it
		return s.equipmentRepo.SetStatusTx(ctx, tx, equipmentID, models.EquipmentMaintenance)
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ticketEvent("ticket.assigned", ticket, caller.DisplayName, ""))

	logger.Info().Int64("ticketID", ticketID).Int64("assigneeID", caller.ID).Msg("Ticket assigned")
	return ticket, nil
}

// Transition applies one workflow edge to a ticket. The ticket row is
// locked, the edge validated against the table, and the ticket and
// equipment updates commit together or not at all.
func (s *TicketService) Transition(ctx context.Context, caller *models.User, ticketID int64, req *dto.TransitionRequest) (*models.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.OpTicketTransition) {
		return nil, apperrors.ErrPermissionDenied
	}

	target := models.TicketStatus(req.Target)
	if target.ID() == 0 {
		return nil, apperrors.NewValidationError("unknown target status")
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		ticket, err := s.ticketRepo.GetForUpdateTx(ctx, tx, ticketID)
		if err != nil {
			return err
		}

		tr, err := resolveTransition(ticket, caller.Role, target, req.Comment, req.Confirm)
		if err != nil {
			return err
		}

		comment := transitionComment(ticket, target, req.Comment)

		if err := s.ticketRepo.UpdateStatusTx(ctx, tx, ticketID, target, comment); err != nil {
			return err
		}
		return s.equipmentRepo.SetStatusTx(ctx, tx, ticket.EquipmentID, tr.EquipmentStatus)
	})
	if err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ticketEvent("ticket.transitioned", ticket, caller.DisplayName, ticket.Comment))

	logger.Info().Int64("ticketID", ticketID).Str("target", string(target)).Msg("Ticket transitioned")
	return ticket, nil
}

// transitionComment decides what ends up in the ticket's comment field.
// An explicit comment always wins. Without one, a referral gets the default
// referral text unless the ticket already carries a reason (the cannot-fix
// case), and every other edge keeps whatever was there.
func transitionComment(ticket *models.Ticket, target models.TicketStatus, comment string) string {
	if !validation.BlankComment(comment) {
		return comment
	}
	if target == models.StatusReferred && validation.BlankComment(ticket.Comment) {
		return ReferralComment
	}
	return ticket.Comment
}

// ticketEvent builds the webhook payload for one ticket. The reporter is the
// recipient; every status change on a ticket is news for whoever filed it.
func ticketEvent(kind string, ticket *models.Ticket, actor, message string) notify.Event {
	return notify.Event{
		Kind:          kind,
		TicketID:      ticket.ID,
		EquipmentCode: ticket.EquipmentCode,
		EquipmentName: ticket.EquipmentName,
		Room:          ticket.Room,
		Status:        ticket.Status.Label(),
		Actor:         actor,
		Recipient:     ticket.ReporterName,
		RecipientRole: string(ticket.ReporterRole),
		Message:       message,
		OccurredAt:    time.Now(),
	}
}

// BulkTransition applies one Referred-outgoing edge to several tickets
// atomically. Any invalid member rolls the whole batch back.
func (s *TicketService) BulkTransition(ctx context.Context, caller *models.User, req *dto.BulkTransitionRequest) ([]*models.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.OpTicketBulkTransition) {
		return nil, apperrors.ErrPermissionDenied
	}

	target := models.TicketStatus(req.Target)

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		for _, id := range req.TicketIDs {
			ticket, err := s.ticketRepo.GetForUpdateTx(ctx, tx, id)
			if err != nil {
				if errors.Is(err, apperrors.ErrTicketNotFound) {
					return apperrors.NewCustomError(apperrors.ErrTicketNotFound, "").
						WithDetails(map[string]interface{}{"ticketId": id})
				}
				return err
			}

			tr, err := resolveTransition(ticket, caller.Role, target, req.Comment, true)
			if err != nil {
				var custom *apperrors.CustomError
				if errors.As(err, &custom) {
					return custom.WithDetails(map[string]interface{}{"ticketId": id})
				}
				return err
			}

			if err := s.ticketRepo.UpdateStatusTx(ctx, tx, id, target, req.Comment); err != nil {
				return err
			}
			if err := s.equipmentRepo.SetStatusTx(ctx, tx, ticket.EquipmentID, tr.EquipmentStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tickets := make([]*models.Ticket, 0, len(req.TicketIDs))
	for _, id := range req.TicketIDs {
		ticket, err := s.ticketRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
		s.notifier.Notify(ticketEvent("ticket.transitioned", ticket, caller.DisplayName, ticket.Comment))
	}

	logger.Info().Int("count", len(tickets)).Str("target", string(target)).Msg("Bulk transition applied")
	return tickets, nil
}

// FinalizeReferrals moves every CannotFix ticket to Referred and returns the
// batch for the handover document. Reading the batch and transitioning it
// happen in one transaction, so the returned rows are exactly the rows that
// changed. Running it with nothing to refer returns an empty batch.
func (s *TicketService) FinalizeReferrals(ctx context.Context, caller *models.User) ([]*models.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.OpTicketExport) {
		return nil, apperrors.ErrPermissionDenied
	}

	var batch []*models.Ticket
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		tickets, err := s.ticketRepo.ListByStatusForUpdateTx(ctx, tx, models.StatusCannotFix)
		if err != nil {
			return err
		}

		for _, ticket := range tickets {
			comment := ticket.Comment
			if validation.BlankComment(comment) {
				comment = ReferralComment
			}
			if err := s.ticketRepo.UpdateStatusTx(ctx, tx, ticket.ID, models.StatusReferred, comment); err != nil {
				return err
			}
			if err := s.equipmentRepo.SetStatusTx(ctx, tx, ticket.EquipmentID, models.EquipmentMaintenance); err != nil {
				return err
			}
			ticket.Status = models.StatusReferred
			ticket.Comment = comment
		}

		batch = tickets
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ticket := range batch {
		s.notifier.Notify(ticketEvent("ticket.transitioned", ticket, caller.DisplayName, ticket.Comment))
	}

	logger.Info().Int("count", len(batch)).Int64("byUserID", caller.ID).Msg("Referral batch finalized")
	return batch, nil
}

// Delete removes a ticket and, best effort, its photo. Reserved for admins
// and managers; it exists for mistaken reports, not as part of the workflow.
func (s *TicketService) Delete(ctx context.Context, caller *models.User, ticketID int64) error {
	if !auth.CanPerform(caller.Role, auth.OpTicketDelete) {
		return apperrors.ErrPermissionDenied
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return err
	}

	if ticket.PhotoPath != nil {
		if err := s.storage.DeletePhoto(*ticket.PhotoPath); err != nil {
			logger.Warn().Err(err).Int64("ticketID", ticketID).Msg("Failed to delete ticket photo")
		}
	}

	logger.Info().Int64("ticketID", ticketID).Int64("byUserID", caller.ID).Msg("Ticket deleted")
	return nil
}
