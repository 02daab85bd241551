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

type sessionRepository interface {
	List(ctx context.Context, userID string, filter models.SessionFilter) ([]models.Session, int, error)
	GetByID(ctx context.Context, userID, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, userID, id string) error
}

type sessionCourseChecker interface {
	GetByID(ctx context.Context, userID, id string) (*models.Course, error)
}

// SessionService provides session management use cases.
type SessionService struct {
	repo      sessionRepository
	courses   sessionCourseChecker
	plans     planCacheInvalidator
	warmer    planWarmer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, courses sessionCourseChecker, plans planCacheInvalidator, warmer planWarmer, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, courses: courses, plans: plans, warmer: warmer, validator: validate, logger: logger}
}

// List returns the user's sessions with pagination metadata.
func (s *SessionService) List(ctx context.Context, userID string, filter models.SessionFilter) ([]models.Session, int, error) {
	sessions, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, total, nil
}

// Get returns a single session owned by the user.
func (s *SessionService) Get(ctx context.Context, userID, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

// Create validates the payload, checks the course belongs to the user and
// persists the session.
func (s *SessionService) Create(ctx context.Context, userID string, req dto.CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.validateTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, userID, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify course")
	}

	session := req.ToModel(userID)
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.afterMutation(ctx, userID)
	return session, nil
}

// Update validates and persists session changes.
func (s *SessionService) Update(ctx context.Context, userID, id string, req dto.UpdateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.validateTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:         id,
		UserID:     userID,
		CourseID:   req.CourseID,
		Type:       req.Type,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Instructor: req.Instructor,
	}
	if err := s.repo.Update(ctx, session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}

	s.afterMutation(ctx, userID)
	return session, nil
}

// Delete removes the session.
func (s *SessionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}

	s.afterMutation(ctx, userID)
	return nil
}

func (s *SessionService) validateTimes(start, end string) error {
	startMin, okStart := models.ParseClockTime(start)
	endMin, okEnd := models.ParseClockTime(end)
	if !okStart || !okEnd {
		return appErrors.Clone(appErrors.ErrValidation, "times must use HH:MM")
	}
	if startMin >= endMin {
		return appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}
	return nil
}

func (s *SessionService) afterMutation(ctx context.Context, userID string) {
	if s.plans != nil {
		if err := s.plans.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("failed to invalidate plan cache", zap.String("user_id", userID), zap.Error(err))
		}
	}
	if s.warmer != nil {
		s.warmer.Schedule(userID)
	}
}
