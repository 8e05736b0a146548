package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/dberrors"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
)

// EquipmentRepository handles database operations for equipment
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{
		db: db,
	}
}

const equipmentColumns = `id, code, name, type, room, status, created_at, updated_at`

func scanEquipment(row pgx.Row) (*models.Equipment, error) {
	var e models.Equipment
	err := row.Scan(
		&e.ID,
		&e.Code,
		&e.Name,
		&e.Type,
		&e.Room,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new equipment item. The unique index on code is the
// authoritative uniqueness check; the service's pre-check is only a
// friendlier error for the common case.
func (r *EquipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	query := `
		INSERT INTO equipment (code, name, type, room, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		equipment.Code, equipment.Name, equipment.Type, equipment.Room, equipment.Status, now, now,
	).Scan(&equipment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "equipment_code_key") {
			return apperrors.ErrEquipmentCodeExists
		}
		logger.Error().Err(err).Str("code", equipment.Code).Msg("Error executing create equipment query")
		return fmt.Errorf("error creating equipment: %w", err)
	}

	equipment.CreatedAt = now
	equipment.UpdatedAt = now
	return nil
}

// GetByID retrieves an equipment item by ID
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`

	equipment, err := scanEquipment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("error retrieving equipment: %w", err)
	}

	return equipment, nil
}

// GetByCode retrieves an equipment item by its business identifier
func (r *EquipmentRepository) GetByCode(ctx context.Context, code string) (*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE code = $1`

	equipment, err := scanEquipment(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("error retrieving equipment by code: %w", err)
	}

	return equipment, nil
}

// GetAll retrieves all equipment, optionally filtered by room and status
func (r *EquipmentRepository) GetAll(ctx context.Context, room string, status models.EquipmentStatus) ([]*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE ($1 = '' OR room = $1) AND ($2 = '' OR status = $2) ORDER BY code`

	rows, err := r.db.Query(ctx, query, room, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Equipment
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// CodeExists checks if a business identifier is already registered
func (r *EquipmentRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM equipment WHERE code = $1)`,
		code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking equipment code existence: %w", err)
	}
	return exists, nil
}

// Update updates an existing equipment item's descriptive fields
func (r *EquipmentRepository) Update(ctx context.Context, equipment *models.Equipment) error {
	query := `
		UPDATE equipment
		SET code = $1, name = $2, type = $3, room = $4, updated_at = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		equipment.Code, equipment.Name, equipment.Type, equipment.Room, time.Now(), equipment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "equipment_code_key") {
			return apperrors.ErrEquipmentCodeExists
		}
		return fmt.Errorf("error updating equipment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}

	return nil
}

// SetStatusGuarded sets equipment status to ACTIVE only when no open
// tickets reference it, all in one statement so concurrent ticket writes
// cannot slip between check and update. Returns ErrHasOpenTickets when the
// guard refuses the change.
func (r *EquipmentRepository) SetStatusGuarded(ctx context.Context, id int64, status models.EquipmentStatus, openStatusIDs []int64) error {
	if status != models.EquipmentActive {
		return r.setStatus(ctx, id, status)
	}

	query := `
		UPDATE equipment
		SET status = $1, updated_at = $2
		WHERE id = $3
		  AND NOT EXISTS (
			SELECT 1 FROM tickets
			WHERE equipment_id = $3 AND status_id = ANY($4)
		  )
	`

	cmdTag, err := r.db.Exec(ctx, query, status, time.Now(), id, openStatusIDs)
	if err != nil {
		return fmt.Errorf("error updating equipment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing row from the open-ticket guard
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return apperrors.ErrEquipmentNotFound
		}
		return apperrors.ErrHasOpenTickets
	}

	return nil
}

func (r *EquipmentRepository) setStatus(ctx context.Context, id int64, status models.EquipmentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE equipment SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating equipment status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM equipment WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking equipment existence: %w", err)
	}
	return exists, nil
}

// SetStatusTx sets equipment status inside a workflow transaction
func (r *EquipmentRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.EquipmentStatus) error {
	cmdTag, err := tx.Exec(ctx,
		`UPDATE equipment SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating equipment status in transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}

// HasTickets checks if any ticket, in any status, references the equipment
func (r *EquipmentRepository) HasTickets(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM tickets WHERE equipment_id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking referencing tickets: %w", err)
	}
	return exists, nil
}

// Delete deletes an equipment item by ID. The service checks for
// referencing tickets first; the foreign key constraint backstops it.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrHasReferencingTickets
		}
		return fmt.Errorf("error deleting equipment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}
