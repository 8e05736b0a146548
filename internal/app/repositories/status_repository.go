package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kittipos/equiptrack/internal/app/models"
	"github.com/kittipos/equiptrack/internal/pkg/apperrors"
	"github.com/kittipos/equiptrack/internal/pkg/dberrors"
)

// StatusRepository handles database operations for the status taxonomy
type StatusRepository struct {
	db *pgxpool.Pool
}

// NewStatusRepository creates a new status repository
func NewStatusRepository(db *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{
		db: db,
	}
}

// Create inserts a custom taxonomy entry. Custom rows get identifiers above
// 100 so they can never collide with the seeded canonical rows.
func (r *StatusRepository) Create(ctx context.Context, status *models.Status) error {
	query := `
		INSERT INTO statuses (id, name, description, color)
		VALUES ((SELECT GREATEST(COALESCE(MAX(id), 0) + 1, 101) FROM statuses), $1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, status.Name, status.Description, status.Color).Scan(&status.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "statuses_name_key") {
			return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("status name '%s' already exists", status.Name))
		}
		// Two concurrent creates can compute the same next identifier
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewCustomError(apperrors.ErrConflict, "status was created concurrently, please retry")
		}
		return fmt.Errorf("error creating status: %w", err)
	}

	return nil
}

// GetByID retrieves a taxonomy entry by ID
func (r *StatusRepository) GetByID(ctx context.Context, id int64) (*models.Status, error) {
	var status models.Status
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, color FROM statuses WHERE id = $1`, id).
		Scan(&status.ID, &status.Name, &status.Description, &status.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStatusNotFound
		}
		return nil, fmt.Errorf("error retrieving status: %w", err)
	}

	return &status, nil
}

// GetAll retrieves the whole taxonomy, canonical entries first
func (r *StatusRepository) GetAll(ctx context.Context) ([]*models.Status, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, color FROM statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		var status models.Status
		if err := rows.Scan(&status.ID, &status.Name, &status.Description, &status.Color); err != nil {
			return nil, err
		}
		statuses = append(statuses, &status)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// Update updates a taxonomy entry's descriptive fields. Locked entries are
// refused by the service before it gets here.
func (r *StatusRepository) Update(ctx context.Context, status *models.Status) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE statuses SET name = $1, description = $2, color = $3 WHERE id = $4`,
		status.Name, status.Description, status.Color, status.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "statuses_name_key") {
			return apperrors.NewCustomError(apperrors.ErrConflict, fmt.Sprintf("status name '%s' already exists", status.Name))
		}
		return fmt.Errorf("error updating status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStatusNotFound
	}

	return nil
}

// UpdateColor changes only the display color, which is allowed even on
// locked entries
func (r *StatusRepository) UpdateColor(ctx context.Context, id int64, color string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE statuses SET color = $1 WHERE id = $2`, color, id)
	if err != nil {
		return fmt.Errorf("error updating status color: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStatusNotFound
	}
	return nil
}

// Delete deletes a taxonomy entry by ID. The foreign key from tickets
// backstops the service's in-use check.
func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStatusInUse
		}
		return fmt.Errorf("error deleting status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStatusNotFound
	}
	return nil
}

// UpsertLocked inserts or refreshes one seeded canonical entry, keeping any
// operator-chosen color on conflict
func (r *StatusRepository) UpsertLocked(ctx context.Context, status *models.Status) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO statuses (id, name, description, color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`,
		status.ID, status.Name, status.Description, status.Color)
	if err != nil {
		return fmt.Errorf("error seeding status %d: %w", status.ID, err)
	}
	return nil
}
