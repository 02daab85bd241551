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

type constraintRepository interface {
	List(ctx context.Context, userID string, filter models.ConstraintFilter) ([]models.Constraint, int, error)
	GetByID(ctx context.Context, userID, id string) (*models.Constraint, error)
	Create(ctx context.Context, constraint *models.Constraint) error
	Update(ctx context.Context, constraint *models.Constraint) error
	Delete(ctx context.Context, userID, id string) error
}

// ConstraintService provides availability constraint management.
type ConstraintService struct {
	repo      constraintRepository
	plans     planCacheInvalidator
	warmer    planWarmer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConstraintService constructs a ConstraintService.
func NewConstraintService(repo constraintRepository, plans planCacheInvalidator, warmer planWarmer, validate *validator.Validate, logger *zap.Logger) *ConstraintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConstraintService{repo: repo, plans: plans, warmer: warmer, validator: validate, logger: logger}
}

// List returns the user's constraints with pagination metadata.
func (s *ConstraintService) List(ctx context.Context, userID string, filter models.ConstraintFilter) ([]models.Constraint, int, error) {
	constraints, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list constraints")
	}
	return constraints, total, nil
}

// Get returns a single constraint owned by the user.
func (s *ConstraintService) Get(ctx context.Context, userID, id string) (*models.Constraint, error) {
	constraint, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "constraint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraint")
	}
	return constraint, nil
}

// Create validates and persists a new constraint.
func (s *ConstraintService) Create(ctx context.Context, userID string, req dto.CreateConstraintRequest) (*models.Constraint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraint payload")
	}
	if err := s.validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	constraint := req.ToModel(userID)
	if err := s.repo.Create(ctx, constraint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create constraint")
	}

	s.afterMutation(ctx, userID)
	return constraint, nil
}

// Update validates and persists constraint changes.
func (s *ConstraintService) Update(ctx context.Context, userID, id string, req dto.UpdateConstraintRequest) (*models.Constraint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid constraint payload")
	}
	if err := s.validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	constraint := &models.Constraint{
		ID:        id,
		UserID:    userID,
		Type:      req.Type,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Update(ctx, constraint); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "constraint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update constraint")
	}

	s.afterMutation(ctx, userID)
	return constraint, nil
}

// Delete removes the constraint.
func (s *ConstraintService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "constraint not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete constraint")
	}

	s.afterMutation(ctx, userID)
	return nil
}

// validateWindow checks that provided times parse and are ordered. Both nil
// is a valid all-day window; a single nil side is rejected.
func (s *ConstraintService) validateWindow(start, end *string) error {
	if start == nil && end == nil {
		return nil
	}
	if start == nil || end == nil {
		return appErrors.Clone(appErrors.ErrValidation, "start and end times must be provided together")
	}
	startMin, okStart := models.ParseClockTime(*start)
	endMin, okEnd := models.ParseClockTime(*end)
	if !okStart || !okEnd {
		return appErrors.Clone(appErrors.ErrValidation, "times must use HH:MM")
	}
	if startMin >= endMin {
		return appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	return nil
}

func (s *ConstraintService) afterMutation(ctx context.Context, userID string) {
	if s.plans != nil {
		if err := s.plans.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate plan cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.warmer != nil {
		s.warmer.Schedule(userID)
	}
}
