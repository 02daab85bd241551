package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/pkg/jobs"
)

type planRefresher interface {
	Refresh(ctx context.Context, userID string) error
}

// WarmupService regenerates plans in the background after mutations so the
// next read hits a warm cache.
type WarmupService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewWarmupService constructs the service and its queue.
func NewWarmupService(refresher planRefresher, cfg jobs.QueueConfig) *WarmupService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, job jobs.Job) error {
		userID, ok := job.Payload.(string)
		if !ok {
			return fmt.Errorf("unexpected warmup payload %T", job.Payload)
		}
		return refresher.Refresh(ctx, userID)
	}
	return &WarmupService{
		queue:  jobs.NewQueue("plan-warmup", handler, cfg),
		logger: logger,
	}
}

// Start launches the queue workers.
func (s *WarmupService) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *WarmupService) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// Schedule enqueues a plan regeneration for the user. Failures are logged,
// not propagated: warm-up is best effort and the read path regenerates on
// miss anyway.
func (s *WarmupService) Schedule(userID string) {
	if s == nil {
		return
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "plan_warmup",
		Payload: userID,
	})
	if err != nil {
		s.logger.Warn("failed to enqueue plan warmup", zap.String("user_id", userID), zap.Error(err))
	}
}
