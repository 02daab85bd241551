package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/models"
	"github.com/campusplan/planner-api/internal/planner"
	"github.com/campusplan/planner-api/internal/repository"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

type plannerCourseRepository interface {
	ListAll(ctx context.Context, userID string) ([]models.Course, error)
}

type plannerSessionRepository interface {
	ListAll(ctx context.Context, userID string) ([]models.Session, error)
}

type plannerConstraintRepository interface {
	ListAll(ctx context.Context, userID string) ([]models.Constraint, error)
}

// PlannerService orchestrates plan generation: it assembles the engine input
// from storage, runs the engine and maintains the per-user result cache.
type PlannerService struct {
	courses     plannerCourseRepository
	sessions    plannerSessionRepository
	constraints plannerConstraintRepository
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(
	courses plannerCourseRepository,
	sessions plannerSessionRepository,
	constraints plannerConstraintRepository,
	cache *CacheService,
	metrics *MetricsService,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *PlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		courses:     courses,
		sessions:    sessions,
		constraints: constraints,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// Generate returns the user's weekly plan, serving a cached result unless
// force is set. The boolean reports whether the cache was hit. A cache
// failure falls through to regeneration.
func (s *PlannerService) Generate(ctx context.Context, userID string, force bool) (*planner.Result, bool, error) {
	key := repository.PlanCacheKey(userID)
	if !force {
		var cached planner.Result
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}
	result, err := s.regenerate(ctx, userID)
	return result, false, err
}

// Optimize re-sorts the current plan per day and refreshes the cached copy.
// When no plan exists yet, one is generated first.
func (s *PlannerService) Optimize(ctx context.Context, userID string) (*planner.Result, error) {
	current, _, err := s.Generate(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	optimized := planner.Optimize(*current)
	if err := s.cache.Set(ctx, repository.PlanCacheKey(userID), optimized, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache optimized plan", zap.String("user_id", userID), zap.Error(err))
	}
	return &optimized, nil
}

// Invalidate drops every cached plan artifact of the user. Called on every
// mutation of courses, sessions or constraints.
func (s *PlannerService) Invalidate(ctx context.Context, userID string) error {
	return s.cache.Invalidate(ctx, repository.PlanCachePattern(userID))
}

// Refresh regenerates and re-caches the plan, bypassing any cached copy.
// Used by the warm-up queue after mutations.
func (s *PlannerService) Refresh(ctx context.Context, userID string) error {
	_, err := s.regenerate(ctx, userID)
	return err
}

func (s *PlannerService) regenerate(ctx context.Context, userID string) (*planner.Result, error) {
	courses, err := s.courses.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	sessions, err := s.sessions.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions")
	}
	constraints, err := s.constraints.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load constraints")
	}

	start := time.Now()
	result := planner.Build(planner.Input{
		Sessions:    sessions,
		Courses:     courses,
		Constraints: constraints,
	})
	s.metrics.ObservePlanGeneration(time.Since(start), result.Score, len(result.Conflicts))

	if err := s.cache.Set(ctx, repository.PlanCacheKey(userID), result, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache generated plan", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("plan generated",
		zap.String("user_id", userID),
		zap.Int("sessions", len(sessions)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Float64("score", result.Score),
	)
	return &result, nil
}
