package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// TicketScope narrows List results to what the caller's role may see.
// Zero values mean "no restriction".
type TicketScope struct {
	// ReporterID limits results to tickets reported by this principal
	ReporterID int64
	// AssistantID limits results to unassigned pending tickets, tickets
	// assigned to this principal, and tickets this principal reported
	AssistantID int64
}

// TicketFilter captures caller-supplied list filters
type TicketFilter struct {
	StatusID    int64
	Category    models.Category
	Room        string
	EquipmentID int64
}

// TicketRepository handles database operations for tickets
type TicketRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const ticketSelectColumns = `t.id, t.equipment_id, t.status_id, t.description, t.category,
	t.comment, t.room, t.reporter_id, t.assignee_id, t.photo_path, t.created_at, t.updated_at,
	e.code, e.name, reporter.display_name, reporter.role, COALESCE(assignee.display_name, '')`

const ticketJoins = ` FROM tickets t
	JOIN equipment e ON e.id = t.equipment_id
	JOIN users reporter ON reporter.id = t.reporter_id
	LEFT JOIN users assignee ON assignee.id = t.assignee_id`

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	var statusID int64
	err := row.Scan(
		&t.ID,
		&t.EquipmentID,
		&statusID,
		&t.Description,
		&t.Category,
		&t.Comment,
		&t.Room,
		&t.ReporterID,
		&t.AssigneeID,
		&t.PhotoPath,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.EquipmentCode,
		&t.EquipmentName,
		&t.ReporterName,
		&t.ReporterRole,
		&t.AssigneeName,
	)
	if err != nil {
		return nil, err
	}
	if status, ok := models.TicketStatusFromID(statusID); ok {
		t.Status = status
	}
	return &t, nil
}

// CreateTx inserts a new ticket within a workflow transaction and sets its ID
func (r *TicketRepository) CreateTx(ctx context.Context, tx pgx.Tx, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (equipment_id, status_id, description, category, comment, room,
			reporter_id, assignee_id, photo_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	now := time.Now()
	err := tx.QueryRow(ctx, query,
		ticket.EquipmentID, ticket.Status.ID(), ticket.Description, ticket.Category,
		ticket.Comment, ticket.Room, ticket.ReporterID, ticket.AssigneeID, ticket.PhotoPath,
		now, now,
	).Scan(&ticket.ID)
	if err != nil {
		logger.Error().Err(err).Int64("equipmentID", ticket.EquipmentID).Msg("Error executing create ticket query")
		return fmt.Errorf("error creating ticket: %w", err)
	}

	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	return nil
}

// GetByID retrieves a ticket with its joined equipment and principal names
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	query := `SELECT ` + ticketSelectColumns + ticketJoins + ` WHERE t.id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("error retrieving ticket: %w", err)
	}

	return ticket, nil
}

// GetForUpdateTx loads a ticket's workflow-relevant fields with a row lock,
// so concurrent transitions against the same ticket serialize at the store.
func (r *TicketRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int64) (*models.Ticket, error) {
	query := `
		SELECT id, equipment_id, status_id, comment, assignee_id
		FROM tickets
		WHERE id = $1
		FOR UPDATE
	`

	var t models.Ticket
	var statusID int64
	err := tx.QueryRow(ctx, query, id).Scan(&t.ID, &t.EquipmentID, &statusID, &t.Comment, &t.AssigneeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("error locking ticket row: %w", err)
	}
	if status, ok := models.TicketStatusFromID(statusID); ok {
		t.Status = status
	}

	return &t, nil
}

// AssignTx claims a pending, unassigned ticket for the given staff member in
// one conditional update and returns the ticket's equipment ID. Zero rows
// affected means the ticket is gone, is past Pending, or already has an
// assignee; the caller gets the matching sentinel after a follow-up read.
func (r *TicketRepository) AssignTx(ctx context.Context, tx pgx.Tx, id, assigneeID int64) (int64, error) {
	query := `
		UPDATE tickets
		SET assignee_id = $1, status_id = $2, updated_at = $3
		WHERE id = $4 AND assignee_id IS NULL AND status_id = $5
		RETURNING equipment_id
	`

	var equipmentID int64
	err := tx.QueryRow(ctx, query,
		assigneeID, models.StatusInProgress.ID(), time.Now(), id, models.StatusPending.ID()).
		Scan(&equipmentID)
	if err == nil {
		return equipmentID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("error assigning ticket: %w", err)
	}

	// Classify the refusal
	var statusID int64
	var currentAssignee *int64
	err = tx.QueryRow(ctx, `SELECT status_id, assignee_id FROM tickets WHERE id = $1`, id).
		Scan(&statusID, &currentAssignee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTicketNotFound
		}
		return 0, fmt.Errorf("error checking ticket after assignment attempt: %w", err)
	}
	if currentAssignee != nil {
		return 0, apperrors.ErrAlreadyAssigned
	}
	return 0, apperrors.ErrInvalidTransition
}

// UpdateStatusTx changes a ticket's status and comment within a workflow transaction
func (r *TicketRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.TicketStatus, comment string) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE tickets SET status_id = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		status.ID(), comment, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating ticket status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

// FindSimilarOpen returns open tickets for the same equipment and category
// created within the lookback window. Used by the duplicate soft check.
func (r *TicketRepository) FindSimilarOpen(ctx context.Context, equipmentID int64, category models.Category, since time.Time) ([]*models.Ticket, error) {
	openIDs := []int64{
		models.StatusPending.ID(),
		models.StatusInProgress.ID(),
		models.StatusReferred.ID(),
	}

	query := `SELECT ` + ticketSelectColumns + ticketJoins + `
		WHERE t.equipment_id = $1 AND t.category = $2 AND t.status_id = ANY($3) AND t.created_at >= $4
		ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, query, equipmentID, category, openIDs, since)
	if err != nil {
		return nil, fmt.Errorf("error finding similar tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// List returns tickets matching the filter, narrowed by the role scope,
// newest first, with a total count for pagination.
func (r *TicketRepository) List(ctx context.Context, filter TicketFilter, scope TicketScope, offset uint64, limit int) ([]*models.Ticket, int64, error) {
	conds := squirrel.And{}

	if filter.StatusID > 0 {
		conds = append(conds, squirrel.Eq{"t.status_id": filter.StatusID})
	}
	if filter.Category != "" {
		conds = append(conds, squirrel.Eq{"t.category": filter.Category})
	}
	if filter.Room != "" {
		conds = append(conds, squirrel.Eq{"t.room": filter.Room})
	}
	if filter.EquipmentID > 0 {
		conds = append(conds, squirrel.Eq{"t.equipment_id": filter.EquipmentID})
	}

	if scope.ReporterID > 0 {
		conds = append(conds, squirrel.Eq{"t.reporter_id": scope.ReporterID})
	}
	if scope.AssistantID > 0 {
		conds = append(conds, squirrel.Or{
			squirrel.And{
				squirrel.Eq{"t.status_id": models.StatusPending.ID()},
				squirrel.Eq{"t.assignee_id": nil},
			},
			squirrel.Eq{"t.assignee_id": scope.AssistantID},
			squirrel.Eq{"t.reporter_id": scope.AssistantID},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("tickets t").
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build ticket count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting tickets: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(
		"t.id", "t.equipment_id", "t.status_id", "t.description", "t.category",
		"t.comment", "t.room", "t.reporter_id", "t.assignee_id", "t.photo_path",
		"t.created_at", "t.updated_at",
		"e.code", "e.name", "reporter.display_name", "reporter.role", "COALESCE(assignee.display_name, '')").
		From("tickets t").
		Join("equipment e ON e.id = t.equipment_id").
		Join("users reporter ON reporter.id = t.reporter_id").
		LeftJoin("users assignee ON assignee.id = t.assignee_id").
		Where(conds).
		OrderBy("t.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build ticket list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// ListByStatusForUpdateTx loads all tickets in one status with their joined
// rows, locking the ticket rows. The referral export uses this so the batch
// it reads is exactly the batch it transitions.
func (r *TicketRepository) ListByStatusForUpdateTx(ctx context.Context, tx pgx.Tx, status models.TicketStatus) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketSelectColumns + ticketJoins + `
		WHERE t.status_id = $1
		ORDER BY t.created_at
		FOR UPDATE OF t`

	rows, err := tx.Query(ctx, query, status.ID())
	if err != nil {
		return nil, fmt.Errorf("error listing tickets for update: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// Delete deletes a ticket by ID
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting ticket: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

// CountByStatus counts tickets referencing a taxonomy entry
func (r *TicketRepository) CountByStatus(ctx context.Context, statusID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status_id = $1`, statusID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting tickets by status: %w", err)
	}
	return count, nil
}
