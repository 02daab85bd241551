package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/models"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

func newTestSessionService(repo *sessionRepoStub, courses *courseRepoStub, warmer *warmerStub) *SessionService {
	plans := newTestPlannerService(courses, repo, &constraintRepoStub{}, newCacheRepoStub())
	return NewSessionService(repo, courses, plans, warmer, validator.New(), zap.NewNop())
}

func validSessionRequest() dto.CreateSessionRequest {
	return dto.CreateSessionRequest{
		CourseID:  "course-1",
		Type:      models.SessionLecture,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "10:30",
	}
}

func TestSessionServiceCreate(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "user-1", Priority: models.PriorityHigh},
	}}
	warmer := &warmerStub{}
	svc := newTestSessionService(&sessionRepoStub{}, courses, warmer)

	session, err := svc.Create(context.Background(), "user-1", validSessionRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, []string{"user-1"}, warmer.scheduled)
}

func TestSessionServiceCreateRejectsUnknownCourse(t *testing.T) {
	svc := newTestSessionService(&sessionRepoStub{}, &courseRepoStub{items: map[string]*models.Course{}}, &warmerStub{})

	_, err := svc.Create(context.Background(), "user-1", validSessionRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceCreateRejectsForeignCourse(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "someone-else", Priority: 1},
	}}
	svc := newTestSessionService(&sessionRepoStub{}, courses, &warmerStub{})

	_, err := svc.Create(context.Background(), "user-1", validSessionRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceCreateRejectsBadTimes(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "user-1", Priority: 1},
	}}
	svc := newTestSessionService(&sessionRepoStub{}, courses, &warmerStub{})

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"unparseable", "9am00", "10:00"},
		{"out of range", "25:00", "26:00"},
		{"inverted", "11:00", "09:00"},
		{"zero length", "09:00", "09:00"},
	}
	for _, tc := range cases {
		req := validSessionRequest()
		req.StartTime = tc.start
		req.EndTime = tc.end
		_, err := svc.Create(context.Background(), "user-1", req)
		require.Error(t, err, tc.name)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, tc.name)
	}
}

func TestSessionServiceUpdateAndDelete(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "user-1", Priority: 1},
	}}
	repo := &sessionRepoStub{items: []models.Session{
		{ID: "session-1", UserID: "user-1", CourseID: "course-1", Type: models.SessionLecture, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}}
	svc := newTestSessionService(repo, courses, &warmerStub{})

	req := dto.UpdateSessionRequest{
		CourseID:  "course-1",
		Type:      models.SessionLab,
		DayOfWeek: 2,
		StartTime: "13:00",
		EndTime:   "15:00",
	}
	updated, err := svc.Update(context.Background(), "user-1", "session-1", req)
	require.NoError(t, err)
	assert.Equal(t, models.SessionLab, updated.Type)

	require.NoError(t, svc.Delete(context.Background(), "user-1", "session-1"))
	err = svc.Delete(context.Background(), "user-1", "session-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
