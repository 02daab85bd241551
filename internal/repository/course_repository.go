package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusplan/planner-api/internal/models"
)

// CourseRepository provides persistence for courses. Every read and write is
// scoped to the owning user.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns the user's courses with a total count.
func (r *CourseRepository) List(ctx context.Context, userID string, filter models.CourseFilter) ([]models.Course, int, error) {
	base := `FROM courses WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Priority != nil {
		base += fmt.Sprintf(" AND priority = $%d", len(args)+1)
		args = append(args, *filter.Priority)
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(code) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
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

	query := fmt.Sprintf("SELECT id, user_id, name, code, priority, created_at, updated_at %s ORDER BY priority ASC, name ASC LIMIT %d OFFSET %d", base, pageSize, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// ListAll returns every course of the user without paging. The plan
// generator works from the complete set.
func (r *CourseRepository) ListAll(ctx context.Context, userID string) ([]models.Course, error) {
	const query = `SELECT id, user_id, name, code, priority, created_at, updated_at FROM courses WHERE user_id = $1 ORDER BY priority ASC, name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, userID); err != nil {
		return nil, fmt.Errorf("list all courses: %w", err)
	}
	return courses, nil
}

// GetByID returns a course owned by the user.
func (r *CourseRepository) GetByID(ctx context.Context, userID, id string) (*models.Course, error) {
	const query = `SELECT id, user_id, name, code, priority, created_at, updated_at FROM courses WHERE id = $1 AND user_id = $2`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id, userID); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, user_id, name, code, priority, created_at, updated_at)
VALUES (:id, :user_id, :name, :code, :priority, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies mutable fields of a course owned by the user.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, code = :code, priority = :priority, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireRowAffected(result, "update course")
}

// Delete removes a course and, through the schema cascade, its sessions.
func (r *CourseRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireRowAffected(result, "delete course")
}
