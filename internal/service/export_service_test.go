package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/models"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

func newTestExportService(courses *courseRepoStub, sessions *sessionRepoStub) *ExportService {
	plans := newTestPlannerService(courses, sessions, &constraintRepoStub{}, newCacheRepoStub())
	return NewExportService(plans, courses, nil, nil, zap.NewNop())
}

func TestExportServiceCSV(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "user-1", Name: "Algorithms", Priority: models.PriorityHigh},
	}}
	sessions := &sessionRepoStub{items: []models.Session{
		{ID: "s1", UserID: "user-1", CourseID: "course-1", Type: models.SessionLecture, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30", Location: "Hall B"},
	}}
	svc := newTestExportService(courses, sessions)

	file, err := svc.Export(context.Background(), "user-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Payload)
	assert.Contains(t, body, "Day,Start,End,Course,Type,Location,Moved")
	assert.Contains(t, body, "Monday,09:00,10:30,Algorithms,lecture,Hall B,")
}

func TestExportServicePDF(t *testing.T) {
	courses := &courseRepoStub{items: map[string]*models.Course{
		"course-1": {ID: "course-1", UserID: "user-1", Name: "Algorithms", Priority: models.PriorityHigh},
	}}
	sessions := &sessionRepoStub{items: []models.Session{
		{ID: "s1", UserID: "user-1", CourseID: "course-1", Type: models.SessionLecture, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"},
	}}
	svc := newTestExportService(courses, sessions)

	file, err := svc.Export(context.Background(), "user-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newTestExportService(&courseRepoStub{}, &sessionRepoStub{})

	_, err := svc.Export(context.Background(), "user-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
