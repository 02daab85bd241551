package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusplan/planner-api/internal/models"
)

// ConstraintRepository provides persistence for availability constraints.
type ConstraintRepository struct {
	db *sqlx.DB
}

// NewConstraintRepository creates the repository.
func NewConstraintRepository(db *sqlx.DB) *ConstraintRepository {
	return &ConstraintRepository{db: db}
}

const constraintColumns = `id, user_id, type, day_of_week, start_time, end_time, created_at, updated_at`

// List returns the user's constraints with a total count.
func (r *ConstraintRepository) List(ctx context.Context, userID string, filter models.ConstraintFilter) ([]models.Constraint, int, error) {
	base := `FROM constraints WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Type != "" {
		base += fmt.Sprintf(" AND type = $%d", len(args)+1)
		args = append(args, filter.Type)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at ASC LIMIT %d OFFSET %d", constraintColumns, base, pageSize, offset)
	var constraints []models.Constraint
	if err := r.db.SelectContext(ctx, &constraints, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list constraints: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count constraints: %w", err)
	}
	return constraints, total, nil
}

// ListAll returns every constraint of the user without paging.
func (r *ConstraintRepository) ListAll(ctx context.Context, userID string) ([]models.Constraint, error) {
	query := fmt.Sprintf("SELECT %s FROM constraints WHERE user_id = $1 ORDER BY created_at ASC", constraintColumns)
	var constraints []models.Constraint
	if err := r.db.SelectContext(ctx, &constraints, query, userID); err != nil {
		return nil, fmt.Errorf("list all constraints: %w", err)
	}
	return constraints, nil
}

// GetByID returns a constraint owned by the user.
func (r *ConstraintRepository) GetByID(ctx context.Context, userID, id string) (*models.Constraint, error) {
	query := fmt.Sprintf("SELECT %s FROM constraints WHERE id = $1 AND user_id = $2", constraintColumns)
	var constraint models.Constraint
	if err := r.db.GetContext(ctx, &constraint, query, id, userID); err != nil {
		return nil, err
	}
	return &constraint, nil
}

// Create inserts a new constraint.
func (r *ConstraintRepository) Create(ctx context.Context, constraint *models.Constraint) error {
	if constraint.ID == "" {
		constraint.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if constraint.CreatedAt.IsZero() {
		constraint.CreatedAt = now
	}
	constraint.UpdatedAt = now

	const query = `INSERT INTO constraints (id, user_id, type, day_of_week, start_time, end_time, created_at, updated_at)
VALUES (:id, :user_id, :type, :day_of_week, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, constraint); err != nil {
		return fmt.Errorf("create constraint: %w", err)
	}
	return nil
}

// Update modifies mutable fields of a constraint owned by the user.
func (r *ConstraintRepository) Update(ctx context.Context, constraint *models.Constraint) error {
	constraint.UpdatedAt = time.Now().UTC()
	const query = `UPDATE constraints SET type = :type, day_of_week = :day_of_week, start_time = :start_time,
end_time = :end_time, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, constraint)
	if err != nil {
		return fmt.Errorf("update constraint: %w", err)
	}
	return requireRowAffected(result, "update constraint")
}

// Delete removes a constraint owned by the user.
func (r *ConstraintRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM constraints WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete constraint: %w", err)
	}
	return requireRowAffected(result, "delete constraint")
}
