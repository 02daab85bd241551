package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplan/planner-api/internal/models"
	"github.com/campusplan/planner-api/internal/planner"
	"github.com/campusplan/planner-api/internal/service"
)

type planCourseSource struct {
	courses []models.Course
}

func (s *planCourseSource) ListAll(context.Context, string) ([]models.Course, error) {
	return s.courses, nil
}

type planSessionSource struct {
	sessions []models.Session
}

func (s *planSessionSource) ListAll(context.Context, string) ([]models.Session, error) {
	return s.sessions, nil
}

type planConstraintSource struct{}

func (planConstraintSource) ListAll(context.Context, string) ([]models.Constraint, error) {
	return nil, nil
}

func newPlanTestHandler() *PlanHandler {
	courses := &planCourseSource{courses: []models.Course{
		{ID: "c1", UserID: "user-1", Name: "Algorithms", Priority: 1},
	}}
	sessions := &planSessionSource{sessions: []models.Session{
		{
			ID:        "s1",
			UserID:    "user-1",
			CourseID:  "c1",
			Type:      models.SessionLecture,
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "10:30",
			Location:  "Hall B",
		},
	}}

	plannerSvc := service.NewPlannerService(courses, sessions, planConstraintSource{}, nil, nil, nil, 0)
	exportSvc := service.NewExportService(plannerSvc, courses, nil, nil, nil)
	return NewPlanHandler(plannerSvc, exportSvc)
}

func TestPlanHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlanTestHandler()

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, httptest.NewRequest(http.MethodPost, "/plan/generate", nil), "user-1")

	handler.Generate(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data planner.Result         `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Conflicts)
	assert.Equal(t, 1, envelope.Data.Stats.TotalSessions)
	assert.Greater(t, envelope.Data.Score, 0.0)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestPlanHandlerOptimize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlanTestHandler()

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, httptest.NewRequest(http.MethodPost, "/plan/optimize", nil), "user-1")

	handler.Optimize(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlanHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlanTestHandler()

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, httptest.NewRequest(http.MethodGet, "/plan/export?format=csv", nil), "user-1")

	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.Contains(rec.Body.String(), "Algorithms"))
}

func TestPlanHandlerExportMissingFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlanTestHandler()

	rec := httptest.NewRecorder()
	c := authedContext(t, rec, httptest.NewRequest(http.MethodGet, "/plan/export", nil), "user-1")

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanHandlerGenerateRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newPlanTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/plan/generate", nil)

	handler.Generate(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
