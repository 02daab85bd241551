package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/models"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, userID string, filter models.CourseFilter) ([]models.Course, int, error)
	GetByID(ctx context.Context, userID, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, userID, id string) error
}

type planCacheInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type planWarmer interface {
	Schedule(userID string)
}

// CourseService provides course management use cases.
type CourseService struct {
	repo      courseRepository
	plans     planCacheInvalidator
	warmer    planWarmer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, plans planCacheInvalidator, warmer planWarmer, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, plans: plans, warmer: warmer, validator: validate, logger: logger}
}

// List returns the user's courses with pagination metadata.
func (s *CourseService) List(ctx context.Context, userID string, filter models.CourseFilter) ([]models.Course, int, error) {
	courses, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, total, nil
}

// Get returns a single course owned by the user.
func (s *CourseService) Get(ctx context.Context, userID, id string) (*models.Course, error) {
	course, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// Create validates and persists a new course, then invalidates the plan.
func (s *CourseService) Create(ctx context.Context, userID string, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := req.ToModel(userID)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.afterMutation(ctx, userID)
	return course, nil
}

// Update validates and persists course changes, then invalidates the plan.
func (s *CourseService) Update(ctx context.Context, userID, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{ID: id, UserID: userID, Name: req.Name, Code: req.Code, Priority: req.Priority}
	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.afterMutation(ctx, userID)
	return course, nil
}

// Delete removes the course and its sessions, then invalidates the plan.
func (s *CourseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	s.afterMutation(ctx, userID)
	return nil
}

func (s *CourseService) afterMutation(ctx context.Context, userID string) {
	if s.plans != nil {
		if err := s.plans.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate plan cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.warmer != nil {
		s.warmer.Schedule(userID)
	}
}
