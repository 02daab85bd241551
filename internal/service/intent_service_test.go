package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/dto"
	"github.com/campusplan/planner-api/internal/models"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

func newTestIntentService() *IntentService {
	return NewIntentService(validator.New(), zap.NewNop())
}

func TestIntentServiceParsesUnavailableWindow(t *testing.T) {
	svc := newTestIntentService()

	resp, err := svc.Parse(dto.ParseIntentRequest{Text: "I am unavailable on Friday from 12:00 to 18:00"})
	require.NoError(t, err)
	assert.Equal(t, dto.IntentCreateConstraint, resp.Intent)
	require.NotNil(t, resp.Constraint)
	assert.Equal(t, models.ConstraintUnavailable, resp.Constraint.Type)
	require.NotNil(t, resp.Constraint.DayOfWeek)
	assert.Equal(t, 5, *resp.Constraint.DayOfWeek)
	require.NotNil(t, resp.Constraint.StartTime)
	assert.Equal(t, "12:00", *resp.Constraint.StartTime)
	assert.Equal(t, "18:00", *resp.Constraint.EndTime)
	assert.Empty(t, resp.Missing)
}

func TestIntentServiceParsesSessionDraft(t *testing.T) {
	svc := newTestIntentService()

	resp, err := svc.Parse(dto.ParseIntentRequest{Text: `Add a lab for "Physics" on Monday 9:00-11:00`})
	require.NoError(t, err)
	assert.Equal(t, dto.IntentCreateSession, resp.Intent)
	require.NotNil(t, resp.Session)
	assert.Equal(t, models.SessionLab, resp.Session.Type)
	assert.Equal(t, "Physics", resp.Session.CourseName)
	require.NotNil(t, resp.Session.DayOfWeek)
	assert.Equal(t, 1, *resp.Session.DayOfWeek)
	assert.Equal(t, "09:00", resp.Session.StartTime)
	assert.Equal(t, "11:00", resp.Session.EndTime)
	assert.Empty(t, resp.Missing)
}

func TestIntentServiceBareAfternoonHours(t *testing.T) {
	svc := newTestIntentService()

	resp, err := svc.Parse(dto.ParseIntentRequest{Text: "block wednesday 2 to 4"})
	require.NoError(t, err)
	require.NotNil(t, resp.Constraint)
	require.NotNil(t, resp.Constraint.StartTime)
	assert.Equal(t, "14:00", *resp.Constraint.StartTime)
	assert.Equal(t, "16:00", *resp.Constraint.EndTime)
}

func TestIntentServiceReportsMissingFields(t *testing.T) {
	svc := newTestIntentService()

	resp, err := svc.Parse(dto.ParseIntentRequest{Text: "schedule a lecture sometime"})
	require.NoError(t, err)
	assert.Equal(t, dto.IntentCreateSession, resp.Intent)
	assert.Contains(t, resp.Missing, "time_range")
	assert.Contains(t, resp.Missing, "day_of_week")
	assert.Contains(t, resp.Missing, "course_name")
}

func TestIntentServiceUnknownText(t *testing.T) {
	svc := newTestIntentService()

	resp, err := svc.Parse(dto.ParseIntentRequest{Text: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, dto.IntentUnknown, resp.Intent)
}

func TestIntentServiceRejectsEmptyText(t *testing.T) {
	svc := newTestIntentService()

	_, err := svc.Parse(dto.ParseIntentRequest{Text: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
