package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusplan/planner-api/internal/models"
)

// SessionRepository provides persistence for weekly sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, course_id, type, day_of_week, start_time, end_time, location, instructor, created_at, updated_at`

// List returns the user's sessions with a total count.
func (r *SessionRepository) List(ctx context.Context, userID string, filter models.SessionFilter) ([]models.Session, int, error) {
	base := `FROM sessions WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.CourseID != "" {
		base += fmt.Sprintf(" AND course_id = $%d", len(args)+1)
		args = append(args, filter.CourseID)
	}
	if filter.DayOfWeek != nil {
		base += fmt.Sprintf(" AND day_of_week = $%d", len(args)+1)
		args = append(args, *filter.DayOfWeek)
	}
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY day_of_week ASC, start_time ASC LIMIT %d OFFSET %d", sessionColumns, base, pageSize, offset)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}
	return sessions, total, nil
}

// ListAll returns every session of the user in a stable order. Generation
// depends on this order for deterministic results.
func (r *SessionRepository) ListAll(ctx context.Context, userID string) ([]models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM sessions WHERE user_id = $1 ORDER BY day_of_week ASC, start_time ASC, id ASC", sessionColumns)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("list all sessions: %w", err)
	}
	return sessions, nil
}

// GetByID returns a session owned by the user.
func (r *SessionRepository) GetByID(ctx context.Context, userID, id string) (*models.Session, error) {
	query := fmt.Sprintf("SELECT %s FROM sessions WHERE id = $1 AND user_id = $2", sessionColumns)
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id, userID); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create inserts a new session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	const query = `INSERT INTO sessions (id, user_id, course_id, type, day_of_week, start_time, end_time, location, instructor, created_at, updated_at)
VALUES (:id, :user_id, :course_id, :type, :day_of_week, :start_time, :end_time, :location, :instructor, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update modifies mutable fields of a session owned by the user.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sessions SET course_id = :course_id, type = :type, day_of_week = :day_of_week,
start_time = :start_time, end_time = :end_time, location = :location, instructor = :instructor, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireRowAffected(result, "update session")
}

// Delete removes a session owned by the user.
func (r *SessionRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return requireRowAffected(result, "delete session")
}
